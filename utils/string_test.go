package utils

import (
	"strings"
	"testing"
)

func TestCacheKeyDeterministic(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{
			name: "Identical strings",
			a:    "Billie Jean",
			b:    "Billie Jean",
		},
		{
			name: "Surrounding whitespace",
			a:    "  Billie Jean  ",
			b:    "Billie Jean",
		},
		{
			name: "Case differences",
			a:    "BILLIE JEAN",
			b:    "billie jean",
		},
		{
			name: "Whitespace and case combined",
			a:    "\tBillie Jean \n",
			b:    "billie JEAN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if CacheKey(tt.a) != CacheKey(tt.b) {
				t.Errorf("Expected equal keys for %q and %q", tt.a, tt.b)
			}
		})
	}
}

func TestCacheKeyDistinct(t *testing.T) {
	if CacheKey("billie jean") == CacheKey("beat it") {
		t.Error("Expected different keys for different queries")
	}
}

func TestCacheKeyShape(t *testing.T) {
	key := CacheKey("anything")
	if len(key) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(key))
	}
	if strings.ToLower(key) != key {
		t.Error("Expected lower-case hex encoding")
	}
}

func TestCacheKeyEmptyInput(t *testing.T) {
	// Digest of the empty string; callers reject empty queries upstream.
	if CacheKey("") != CacheKey("   ") {
		t.Error("Expected whitespace-only input to normalize to the empty digest")
	}
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Plain title",
			input: "Billie Jean",
			want:  "Billie Jean",
		},
		{
			name:  "Strips YouTube",
			input: "Billie Jean - YouTube",
			want:  "Billie Jean -",
		},
		{
			name:  "Escapes HTML",
			input: "Tom & Jerry <live>",
			want:  "Tom &amp; Jerry &lt;live&gt;",
		},
		{
			name:  "Empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTitle(tt.input); got != tt.want {
				t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{name: "Shorter than max", input: "abc", max: 10, want: "abc"},
		{name: "Exactly max", input: "abcde", max: 5, want: "abcde"},
		{name: "Longer than max", input: "abcdef", max: 3, want: "abc"},
		{name: "Multibyte runes", input: "héllo wörld", max: 4, want: "héll"},
		{name: "Zero max", input: "abc", max: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    string
	}{
		{name: "Zero", seconds: 0, want: ""},
		{name: "Negative", seconds: -5, want: ""},
		{name: "Under a minute", seconds: 42, want: "0:42"},
		{name: "Minutes", seconds: 294, want: "4:54"},
		{name: "Exactly one hour", seconds: 3600, want: "1:00:00"},
		{name: "Hours", seconds: 3725, want: "1:02:05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}
