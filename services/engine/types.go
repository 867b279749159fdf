package engine

import "encoding/json"

// TrackEntry is the normalized shape of one provider record. Extractors
// disagree about field names, so Normalize flattens them through ordered
// alias lists. Entries are never mutated after construction.
type TrackEntry struct {
	ID              string
	Title           string
	WebpageURL      string
	DurationSeconds int
	Uploader        string
	Source          string

	// Raw is the provider-native payload, retained verbatim for fallback
	// URL resolution at download time.
	Raw map[string]interface{}
}

// Normalize maps a loosely-typed provider record into a TrackEntry. Missing
// fields resolve to zero values, never to an error.
func Normalize(raw map[string]interface{}) TrackEntry {
	return TrackEntry{
		ID:              firstString(raw, "id"),
		Title:           firstString(raw, "title", "name"),
		WebpageURL:      firstString(raw, "webpage_url", "url", "original_url"),
		DurationSeconds: intField(raw, "duration"),
		Uploader:        firstString(raw, "uploader", "uploader_id", "channel"),
		Source:          firstString(raw, "extractor", "extractor_key"),
		Raw:             raw,
	}
}

// DedupKey identifies an entry across sources: provider id, falling back to
// URL, then title. Empty means the entry cannot be deduplicated and is
// dropped by the orchestrator.
func (t TrackEntry) DedupKey() string {
	if t.ID != "" {
		return t.ID
	}
	if t.WebpageURL != "" {
		return t.WebpageURL
	}
	return t.Title
}

// DisplayTitle returns the title or a placeholder when absent.
func (t TrackEntry) DisplayTitle() string {
	if t.Title == "" {
		return "Unknown"
	}
	return t.Title
}

// ResolveURL returns the best downloadable URL for the entry: the canonical
// webpage URL, else a url field inside the raw payload, else the bare id.
// Empty means nothing resolvable exists.
func (t TrackEntry) ResolveURL() string {
	if t.WebpageURL != "" {
		return t.WebpageURL
	}
	if u, ok := t.Raw["url"].(string); ok && u != "" {
		return u
	}
	return t.ID
}

// firstString returns the first non-empty string value among keys.
func firstString(raw map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := raw[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// intField reads a numeric field that may arrive as float64, int or
// json.Number depending on how the payload was decoded.
func intField(raw map[string]interface{}, key string) int {
	switch v := raw[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return 0
}
