package preload

import (
	"context"
	"strings"
)

// CriticalImages lists the images each section needs before first paint,
// keyed by route prefix.
var CriticalImages = map[string][]string{
	"/": {"/images/logos/velantec-logo.png"},
	"/browse": {
		"/images/profiles/stalker.png",
		"/images/profiles/investor.png",
		"/images/profiles/recruiter.png",
		"/images/profiles/community.png",
		"/images/profiles/adventurer.png",
	},
	"/profile": {
		"/images/logos/velantec-logo.png",
		"/images/logos/onestopsg-logo.png",
		"/images/logos/growthlab-logo.png",
	},
	"/projects": {
		"/images/logos/velantec-logo.png",
		"/images/logos/onestopsg-logo.png",
		"/images/logos/growthlab-logo.png",
	},
	"/case-studies": {
		"/images/logos/velantec-logo.png",
		"/images/logos/onestopsg-logo.png",
	},
}

// CriticalFor returns the images for the longest route prefix matching path.
// Prefixes match whole segments, so /profiles does not match /profile.
func CriticalFor(path string) []string {
	best := ""
	for prefix := range CriticalImages {
		if !matchPrefix(path, prefix) {
			continue
		}
		if len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return nil
	}
	return CriticalImages[best]
}

func matchPrefix(path, prefix string) bool {
	if prefix == "/" {
		return path == "/"
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// PreloadForPath schedules the critical images for path.
func (c *Cache) PreloadForPath(ctx context.Context, path string) []string {
	return c.Preload(ctx, CriticalFor(path))
}
