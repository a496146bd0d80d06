package content

// Long-form copy for the about page and the browse hero.
var (
	FullName = "Arul Jothi"

	Tagline = `Founder, technologist and community builder based in Singapore.`

	AboutMe = `I build companies at the intersection of technology and people. What started as a
	curiosity for how systems break turned into a degree in cyber security and, soon after, a string
	of ventures: a digital marketing agency, two e-commerce labels for South Indian ethnic wear, a
	startup community and an AI voice platform.
	Today VELANTEC ties those threads together as the parent company, and most of my week is spent
	between product reviews, client work and hosting founders at GrowthLab events.`

	StoryVentures = `Every venture began with a problem I ran into myself. ONESTOPSG came out of
	watching small businesses overpay for ads that did not convert. Aval.sg and Avan.sg came from
	family asking where to buy a proper veshti in Singapore. GrowthLab came from realising how lonely
	early-stage founding can be.`

	StoryNow = `Right now I am focused on Mrassistant.ai, replacing rigid IVR trees with voice agents
	that actually listen, and on growing VELANTEC's security practice for regional SMEs.`

	ContactBlurb = `Have a project in mind, want to partner on a venture, or just want to say hello?
	Drop a message and I will get back to you within two business days.`
)
