package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/velantec/streamfolio/internal/content"
	"github.com/velantec/streamfolio/internal/preload"
	"github.com/velantec/streamfolio/internal/profile"
	"github.com/velantec/streamfolio/web"
)

// generated routes answer any query, so they always count as loaded.
var generatedPrefixes = []string{"/placeholder.svg", "/avatar/"}

var assetPrefixes = []string{"/images/", "/static/", "/sounds/"}

// AssetFetcher returns the fetcher the preload cache uses. With a base URL
// it issues HEAD requests against that site; otherwise it checks the
// embedded assets directly.
func AssetFetcher(baseURL string, client *http.Client) preload.Fetcher {
	if baseURL != "" {
		return &preload.HTTPFetcher{Client: client, BaseURL: baseURL}
	}
	embedded := &preload.FSFetcher{FS: web.Assets()}
	return preload.FetcherFunc(func(ctx context.Context, url string) error {
		for _, p := range generatedPrefixes {
			if strings.HasPrefix(url, p) {
				return nil
			}
		}
		for _, p := range assetPrefixes {
			if strings.HasPrefix(url, p) {
				return embedded.Fetch(ctx, url)
			}
		}
		return fmt.Errorf("%s is not a site asset", url)
	})
}

// knownAssets is the fixed set of URLs clients may ask the cache to warm:
// every catalog image, every critical image and the persona avatars.
func knownAssets(c *content.Catalog) map[string]struct{} {
	known := make(map[string]struct{})
	for _, u := range c.Images() {
		known[u] = struct{}{}
	}
	for _, list := range preload.CriticalImages {
		for _, u := range list {
			known[u] = struct{}{}
		}
	}
	for _, n := range profile.All {
		known["/avatar/"+string(n)+".svg"] = struct{}{}
	}
	return known
}
