package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"music-bot-go/circuitbreaker"
	"music-bot-go/logcolors"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Extractor is the narrow surface consumed from the underlying
// search/download tool. Search takes a fully-formed query string (source
// prefix, count hint and query already combined), FetchMetadata resolves a
// single URL or id without downloading, Download writes a transcoded MP3
// into destDir and returns its path.
type Extractor interface {
	Search(ctx context.Context, queryString string) ([]map[string]interface{}, error)
	FetchMetadata(ctx context.Context, urlOrID string) (map[string]interface{}, error)
	Download(ctx context.Context, url, destDir string) (string, error)
}

// Options configures the orchestration layer.
type Options struct {
	Sources          []string // ordered source prefixes, e.g. "ytsearch"
	MaxResultsTotal  int
	BreakerThreshold int
	BreakerCooldown  time.Duration
	Extractor        Extractor
}

// Engine runs multi-source search with dedup and capping, single-item
// metadata fetches and downloads. Failing sources are skipped; a source
// that keeps failing trips its circuit breaker and is skipped without an
// extractor call until the cooldown passes.
type Engine struct {
	sources  []string
	maxTotal int
	ext      Extractor
	breakers map[string]*circuitbreaker.CircuitBreaker
	sf       singleflight.Group
}

// New creates an Engine with one circuit breaker per configured source.
func New(opts Options) *Engine {
	e := &Engine{
		sources:  opts.Sources,
		maxTotal: opts.MaxResultsTotal,
		ext:      opts.Extractor,
		breakers: make(map[string]*circuitbreaker.CircuitBreaker, len(opts.Sources)),
	}
	for _, src := range opts.Sources {
		e.breakers[src] = circuitbreaker.New(circuitbreaker.Config{
			Name:      src,
			Threshold: opts.BreakerThreshold,
			Cooldown:  opts.BreakerCooldown,
		})
	}
	return e
}

// SearchCombined searches every configured source for query and returns up
// to MaxResultsTotal unique entries in first-seen order. Identical queries
// already in flight share one underlying search. An empty result is a
// valid outcome, not an error.
func (e *Engine) SearchCombined(ctx context.Context, query string) []TrackEntry {
	key := strings.ToLower(strings.TrimSpace(query))
	v, _, _ := e.sf.Do(key, func() (interface{}, error) {
		return e.searchCombined(ctx, query), nil
	})
	return v.([]TrackEntry)
}

func (e *Engine) searchCombined(ctx context.Context, query string) []TrackEntry {
	if len(e.sources) == 0 {
		return nil
	}

	perSource := e.maxTotal/len(e.sources) + 2
	if perSource < 5 {
		perSource = 5
	}

	seen := make(map[string]struct{})
	var results []TrackEntry

	for _, prefix := range e.sources {
		if len(results) >= e.maxTotal {
			break
		}

		cb := e.breakers[prefix]
		if cb != nil && !cb.Allow() {
			log.Debugf("%s Skipping source %s, circuit open", logcolors.LogSearch, prefix)
			continue
		}

		queryString := fmt.Sprintf("%s%d:%s", prefix, perSource, query)
		raws, err := e.ext.Search(ctx, queryString)
		if err != nil {
			log.Warnf("%s Source %s failed: %v", logcolors.LogSearch, prefix, err)
			if cb != nil {
				cb.RecordFailure()
			}
			continue
		}
		if cb != nil {
			cb.RecordSuccess()
		}

		for _, raw := range raws {
			if raw == nil {
				continue
			}
			entry := Normalize(raw)
			key := entry.DedupKey()
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			results = append(results, entry)
		}
	}

	if len(results) > e.maxTotal {
		results = results[:e.maxTotal]
	}
	log.Infof("%s %d unique entries for %q", logcolors.LogSearch, len(results), query)
	return results
}

// FetchInfo resolves single-item metadata for a URL or id without
// downloading. A playlist collapses to its first entry. Every failure
// collapses to absent.
func (e *Engine) FetchInfo(ctx context.Context, urlOrID string) (TrackEntry, bool) {
	raw, err := e.ext.FetchMetadata(ctx, urlOrID)
	if err != nil {
		log.Warnf("%s Metadata fetch for %q failed: %v", logcolors.LogFetch, urlOrID, err)
		return TrackEntry{}, false
	}
	if raw == nil {
		return TrackEntry{}, false
	}

	if entries, ok := raw["entries"].([]interface{}); ok {
		if len(entries) == 0 {
			return TrackEntry{}, false
		}
		first, ok := entries[0].(map[string]interface{})
		if !ok || first == nil {
			return TrackEntry{}, false
		}
		return Normalize(first), true
	}
	return Normalize(raw), true
}

// Download fetches best-available audio for url, transcoded to MP3, into
// destDir. Returns the file path or an error; partial files are never
// surfaced.
func (e *Engine) Download(ctx context.Context, url, destDir string) (string, error) {
	return e.ext.Download(ctx, url, destDir)
}

// BreakerStates reports the current circuit state per source, for the
// status endpoint.
func (e *Engine) BreakerStates() map[string]string {
	states := make(map[string]string, len(e.breakers))
	for src, cb := range e.breakers {
		states[src] = cb.State().String()
	}
	return states
}
