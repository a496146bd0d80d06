package store

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// PathStat is a page with its view count.
type PathStat struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

// HostInfo describes the machine serving the site.
type HostInfo struct {
	Hostname      string        `json:"hostname"`
	Platform      string        `json:"platform"`
	MemUsed       float64       `json:"mem_used_percent"`
	MemTotalBytes uint64        `json:"mem_total_bytes"`
	Uptime        time.Duration `json:"uptime"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalVisitors    int64      `json:"total_visitors"`
	UniqueVisitors   int64      `json:"unique_visitors"`
	VisitorsToday    int64      `json:"visitors_today"`
	VisitorsThisWeek int64      `json:"visitors_this_week"`
	TotalMessages    int64      `json:"total_messages"`
	Subscribers      int64      `json:"subscribers"`
	TopPaths         []PathStat `json:"top_paths"`
	RecentVisitors   []Visitor  `json:"recent_visitors"`
	Host             HostInfo   `json:"host"`
}

// Stats gathers the dashboard numbers.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	counts := []struct {
		query string
		dst   *int64
	}{
		{`SELECT COUNT(*) FROM visitors`, &stats.TotalVisitors},
		{`SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, &stats.UniqueVisitors},
		{`SELECT COUNT(*) FROM visitors WHERE DATE(timestamp) = DATE('now')`, &stats.VisitorsToday},
		{`SELECT COUNT(*) FROM visitors WHERE timestamp >= datetime('now', '-7 days')`, &stats.VisitorsThisWeek},
		{`SELECT COUNT(*) FROM contact_messages`, &stats.TotalMessages},
		{`SELECT COUNT(*) FROM newsletter_subscribers`, &stats.Subscribers},
	}
	for _, q := range counts {
		if err := s.db.QueryRowContext(ctx, q.query).Scan(q.dst); err != nil {
			return nil, fmt.Errorf("stats query %q: %w", q.query, err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS views
		FROM visitors
		GROUP BY path
		ORDER BY views DESC, path
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("top paths: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p PathStat
		if err := rows.Scan(&p.Path, &p.Views); err != nil {
			return nil, fmt.Errorf("scanning path stat: %w", err)
		}
		stats.TopPaths = append(stats.TopPaths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	stats.RecentVisitors, err = s.Visitors(ctx, 50)
	if err != nil {
		return nil, err
	}

	stats.Host = hostInfo(ctx)
	return stats, nil
}

// hostInfo is best effort; fields stay zero where the platform refuses.
func hostInfo(ctx context.Context) HostInfo {
	var hi HostInfo
	if h, err := os.Hostname(); err == nil {
		hi.Hostname = h
	}
	if info, err := host.InfoWithContext(ctx); err == nil {
		hi.Platform = info.Platform
		if info.PlatformVersion != "" {
			hi.Platform += " " + info.PlatformVersion
		}
		hi.Uptime = time.Duration(info.Uptime) * time.Second
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		hi.MemUsed = vm.UsedPercent
		hi.MemTotalBytes = vm.Total
	}
	return hi
}
