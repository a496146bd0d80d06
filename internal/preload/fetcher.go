package preload

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
)

// Fetcher loads one asset. A nil error means the asset is usable.
type Fetcher interface {
	Fetch(ctx context.Context, url string) error
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) error

func (f FetcherFunc) Fetch(ctx context.Context, url string) error { return f(ctx, url) }

// HTTPFetcher checks assets on a running site with HEAD requests.
type HTTPFetcher struct {
	Client  *http.Client
	BaseURL string
}

func (h *HTTPFetcher) Fetch(ctx context.Context, raw string) error {
	target, err := h.resolve(raw)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("head %s: %w", target, err)
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("head %s: status %d", target, resp.StatusCode)
	}
	return nil
}

func (h *HTTPFetcher) resolve(raw string) (string, error) {
	ref, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", raw, err)
	}
	if h.BaseURL == "" {
		return ref.String(), nil
	}
	base, err := url.Parse(h.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base url: %w", err)
	}
	target := base.ResolveReference(ref)
	// only the configured site is ever contacted
	if target.Scheme != base.Scheme || target.Host != base.Host {
		return "", fmt.Errorf("%q is not on %s", raw, h.BaseURL)
	}
	return target.String(), nil
}

// FSFetcher checks that a site path such as /images/a.png exists in an
// asset filesystem rooted at the site root.
type FSFetcher struct {
	FS fs.FS
}

func (f *FSFetcher) Fetch(ctx context.Context, raw string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := raw
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimPrefix(name, "/")
	if !fs.ValidPath(name) || name == "." {
		return fmt.Errorf("invalid asset path %q", raw)
	}
	info, err := fs.Stat(f.FS, name)
	if err != nil {
		return fmt.Errorf("stat %s: %w", name, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", name)
	}
	return nil
}
