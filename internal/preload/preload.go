// Package preload warms image assets ahead of the pages that need them and
// remembers the outcome for the life of the process.
//
// A URL that is loading or loaded is never scheduled again. A failed fetch is
// not retried on its own, but a later Preload call that names the URL again
// schedules a fresh attempt.
package preload

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Status is the preload state of one URL.
type Status string

const (
	Idle    Status = "idle"
	Loading Status = "loading"
	Loaded  Status = "loaded"
	Error   Status = "error"
)

const defaultTimeout = 5 * time.Second

// Cache tracks preload status per URL.
type Cache struct {
	fetcher Fetcher
	timeout time.Duration
	logger  *slog.Logger
	tracer  trace.Tracer

	mu     sync.Mutex
	status map[string]Status
	wg     sync.WaitGroup
}

// Option configures a Cache.
type Option func(*Cache)

// WithTimeout bounds each fetch.
func WithTimeout(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for failed fetches.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

// New returns an empty cache backed by f.
func New(f Fetcher, opts ...Option) *Cache {
	c := &Cache{
		fetcher: f,
		timeout: defaultTimeout,
		logger:  slog.Default(),
		tracer:  otel.Tracer("streamfolio/preload"),
		status:  make(map[string]Status),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Preload schedules a fetch for every URL that is not empty, not repeated
// within urls and not already loading or loaded. It returns immediately with
// the URLs it scheduled. Fetches outlive ctx's cancellation but keep its
// values.
func (c *Cache) Preload(ctx context.Context, urls []string) []string {
	c.mu.Lock()
	var scheduled []string
	for _, u := range urls {
		if u == "" {
			continue
		}
		switch c.status[u] {
		case Loading, Loaded:
			continue
		}
		c.status[u] = Loading
		scheduled = append(scheduled, u)
	}
	c.mu.Unlock()

	base := context.WithoutCancel(ctx)
	for _, u := range scheduled {
		c.wg.Add(1)
		go c.fetch(base, u)
	}
	return scheduled
}

func (c *Cache) fetch(ctx context.Context, url string) {
	defer c.wg.Done()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	ctx, span := c.tracer.Start(ctx, "preload.fetch", trace.WithAttributes(attribute.String("url", url)))
	defer span.End()

	status := Loaded
	if err := c.fetcher.Fetch(ctx, url); err != nil {
		status = Error
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warn("failed to preload image", "url", url, "error", err)
	}

	c.mu.Lock()
	c.status[url] = status
	c.mu.Unlock()
}

// Status reports the state of url; unknown URLs are Idle.
func (c *Cache) Status(url string) Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.status[url]; ok {
		return s
	}
	return Idle
}

// Snapshot copies the full status map.
func (c *Cache) Snapshot() map[string]Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]Status, len(c.status))
	for u, s := range c.status {
		out[u] = s
	}
	return out
}

// Loaded returns the set of URLs confirmed loaded.
func (c *Cache) Loaded() map[string]struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]struct{})
	for u, s := range c.status {
		if s == Loaded {
			out[u] = struct{}{}
		}
	}
	return out
}

// IsLoading reports whether any fetch is in flight.
func (c *Cache) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.status {
		if s == Loading {
			return true
		}
	}
	return false
}

// Wait blocks until every scheduled fetch has finished or ctx is done.
func (c *Cache) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
