package stats

import (
	"sync/atomic"
	"time"
)

// Stats holds all bot statistics with atomic counters
type Stats struct {
	// Server info
	StartTime time.Time

	// Interaction counters
	SearchRequests atomic.Int64
	LinkFetches    atomic.Int64
	PagesServed    atomic.Int64
	CallbacksTotal atomic.Int64

	// Cache performance
	CacheHits       atomic.Int64
	CacheMisses     atomic.Int64
	SessionsExpired atomic.Int64

	// Downloads
	DownloadsStarted   atomic.Int64
	DownloadsSucceeded atomic.Int64
	DownloadsFailed    atomic.Int64

	// Errors
	InternalErrors   atomic.Int64
	RateLimitDropped atomic.Int64
}

// Global stats instance
var global = &Stats{
	StartTime: time.Now(),
}

// Get returns the global stats instance
func Get() *Stats {
	return global
}

func (s *Stats) RecordSearch()          { s.SearchRequests.Add(1) }
func (s *Stats) RecordLinkFetch()       { s.LinkFetches.Add(1) }
func (s *Stats) RecordPageServed()      { s.PagesServed.Add(1) }
func (s *Stats) RecordCallback()        { s.CallbacksTotal.Add(1) }
func (s *Stats) RecordCacheHit()        { s.CacheHits.Add(1) }
func (s *Stats) RecordCacheMiss()       { s.CacheMisses.Add(1) }
func (s *Stats) RecordSessionExpired()  { s.SessionsExpired.Add(1) }
func (s *Stats) RecordDownloadStart()   { s.DownloadsStarted.Add(1) }
func (s *Stats) RecordDownloadSuccess() { s.DownloadsSucceeded.Add(1) }
func (s *Stats) RecordDownloadFailure() { s.DownloadsFailed.Add(1) }
func (s *Stats) RecordInternalError()   { s.InternalErrors.Add(1) }
func (s *Stats) RecordRateLimitDrop()   { s.RateLimitDropped.Add(1) }

// Uptime returns the bot uptime
func (s *Stats) Uptime() time.Duration {
	return time.Since(s.StartTime)
}

// CacheHitRate returns the session cache hit rate as a percentage
func (s *Stats) CacheHitRate() float64 {
	hits := s.CacheHits.Load()
	misses := s.CacheMisses.Load()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

// Snapshot returns a point-in-time snapshot of all stats
func (s *Stats) Snapshot() map[string]interface{} {
	uptime := s.Uptime()

	return map[string]interface{}{
		"server": map[string]interface{}{
			"start_time":     s.StartTime.Format(time.RFC3339),
			"uptime":         uptime.String(),
			"uptime_seconds": int64(uptime.Seconds()),
		},
		"interactions": map[string]interface{}{
			"searches":     s.SearchRequests.Load(),
			"link_fetches": s.LinkFetches.Load(),
			"pages_served": s.PagesServed.Load(),
			"callbacks":    s.CallbacksTotal.Load(),
		},
		"cache": map[string]interface{}{
			"hits":             s.CacheHits.Load(),
			"misses":           s.CacheMisses.Load(),
			"sessions_expired": s.SessionsExpired.Load(),
			"hit_rate":         s.CacheHitRate(),
		},
		"downloads": map[string]interface{}{
			"started":   s.DownloadsStarted.Load(),
			"succeeded": s.DownloadsSucceeded.Load(),
			"failed":    s.DownloadsFailed.Load(),
		},
		"errors": map[string]interface{}{
			"internal":           s.InternalErrors.Load(),
			"rate_limit_dropped": s.RateLimitDropped.Load(),
		},
	}
}
