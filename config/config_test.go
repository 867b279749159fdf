package config

import (
	"os"
	"testing"
)

func TestConfigDefaultValues(t *testing.T) {
	// Clear any existing env vars that might interfere
	envVars := []string{
		"BOT_TOKEN",
		"ADMIN_CHAT_ID",
		"SEARCH_SOURCES",
		"MAX_RESULTS_TOTAL",
		"PAGE_SIZE",
		"SEARCH_CACHE_TTL_SECONDS",
		"TEMP_DIR",
		"MAX_CONCURRENT_DOWNLOADS",
		"DOWNLOAD_TIMEOUT_SECONDS",
		"CHAT_RATE_LIMIT_PER_SECOND",
		"CHAT_RATE_LIMIT_BURST",
		"CIRCUIT_BREAKER_THRESHOLD",
		"CIRCUIT_BREAKER_COOLDOWN_SECS",
		"STATUS_PORT",
	}

	// Store original values
	originalValues := make(map[string]string)
	for _, key := range envVars {
		originalValues[key] = os.Getenv(key)
		os.Unsetenv(key)
	}
	defer func() {
		// Restore original values
		for key, value := range originalValues {
			if value != "" {
				os.Setenv(key, value)
			}
		}
	}()

	cfg, err := load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{
			name:     "MaxResultsTotal default",
			got:      cfg.Configuration.MaxResultsTotal,
			expected: 30,
		},
		{
			name:     "PageSize default",
			got:      cfg.Configuration.PageSize,
			expected: 10,
		},
		{
			name:     "SearchCacheTTLInSeconds default",
			got:      cfg.Configuration.SearchCacheTTLInSeconds,
			expected: 3600,
		},
		{
			name:     "TempDir default",
			got:      cfg.Configuration.TempDir,
			expected: "/tmp/music-bot",
		},
		{
			name:     "MaxConcurrentDownloads default",
			got:      cfg.Configuration.MaxConcurrentDownloads,
			expected: 2,
		},
		{
			name:     "DownloadTimeoutInSeconds default",
			got:      cfg.Configuration.DownloadTimeoutInSeconds,
			expected: 600,
		},
		{
			name:     "ChatRateLimitPerSecond default",
			got:      cfg.Configuration.ChatRateLimitPerSecond,
			expected: float64(1),
		},
		{
			name:     "ChatRateLimitBurst default",
			got:      cfg.Configuration.ChatRateLimitBurst,
			expected: 5,
		},
		{
			name:     "CircuitBreakerThreshold default",
			got:      cfg.Configuration.CircuitBreakerThreshold,
			expected: 5,
		},
		{
			name:     "CircuitBreakerCooldownSecs default",
			got:      cfg.Configuration.CircuitBreakerCooldownSecs,
			expected: 300,
		},
		{
			name:     "StatusPort default",
			got:      cfg.Configuration.StatusPort,
			expected: "",
		},
		{
			name:     "NtfyServer default",
			got:      cfg.Configuration.NtfyServer,
			expected: "https://ntfy.sh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	want := []string{"ytsearch", "ytmusicsearch", "scsearch", "spsearch", "bandcampsearch", "deezersearch"}
	if len(cfg.Configuration.SearchSources) != len(want) {
		t.Fatalf("Expected %d default sources, got %v", len(want), cfg.Configuration.SearchSources)
	}
	for i, src := range want {
		if cfg.Configuration.SearchSources[i] != src {
			t.Errorf("Source %d = %q, want %q", i, cfg.Configuration.SearchSources[i], src)
		}
	}
}

func TestConfigEnvironmentOverrides(t *testing.T) {
	os.Setenv("BOT_TOKEN", "123:abc")
	os.Setenv("ADMIN_CHAT_ID", "-1001234")
	os.Setenv("SEARCH_SOURCES", "ytsearch,scsearch")
	os.Setenv("MAX_RESULTS_TOTAL", "50")
	os.Setenv("PAGE_SIZE", "5")
	os.Setenv("SEARCH_CACHE_TTL_SECONDS", "7200")
	os.Setenv("MAX_CONCURRENT_DOWNLOADS", "4")
	os.Setenv("DOWNLOAD_TIMEOUT_SECONDS", "120")
	os.Setenv("STATUS_PORT", "8080")

	defer func() {
		os.Unsetenv("BOT_TOKEN")
		os.Unsetenv("ADMIN_CHAT_ID")
		os.Unsetenv("SEARCH_SOURCES")
		os.Unsetenv("MAX_RESULTS_TOTAL")
		os.Unsetenv("PAGE_SIZE")
		os.Unsetenv("SEARCH_CACHE_TTL_SECONDS")
		os.Unsetenv("MAX_CONCURRENT_DOWNLOADS")
		os.Unsetenv("DOWNLOAD_TIMEOUT_SECONDS")
		os.Unsetenv("STATUS_PORT")
	}()

	cfg, err := load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{
			name:     "BotToken override",
			got:      cfg.Configuration.BotToken,
			expected: "123:abc",
		},
		{
			name:     "AdminChatID override",
			got:      cfg.Configuration.AdminChatID,
			expected: int64(-1001234),
		},
		{
			name:     "MaxResultsTotal override",
			got:      cfg.Configuration.MaxResultsTotal,
			expected: 50,
		},
		{
			name:     "PageSize override",
			got:      cfg.Configuration.PageSize,
			expected: 5,
		},
		{
			name:     "SearchCacheTTLInSeconds override",
			got:      cfg.Configuration.SearchCacheTTLInSeconds,
			expected: 7200,
		},
		{
			name:     "MaxConcurrentDownloads override",
			got:      cfg.Configuration.MaxConcurrentDownloads,
			expected: 4,
		},
		{
			name:     "DownloadTimeoutInSeconds override",
			got:      cfg.Configuration.DownloadTimeoutInSeconds,
			expected: 120,
		},
		{
			name:     "StatusPort override",
			got:      cfg.Configuration.StatusPort,
			expected: "8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if len(cfg.Configuration.SearchSources) != 2 {
		t.Errorf("Expected 2 sources, got %v", cfg.Configuration.SearchSources)
	}
}

func TestConfigTrimsBotToken(t *testing.T) {
	os.Setenv("BOT_TOKEN", "  123:abc \n")
	defer os.Unsetenv("BOT_TOKEN")

	cfg, err := load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Configuration.BotToken != "123:abc" {
		t.Errorf("Expected trimmed token, got %q", cfg.Configuration.BotToken)
	}
}

func TestGet(t *testing.T) {
	cfg := Get()

	// Should return a valid config struct with defaults applied
	if cfg.Configuration.PageSize == 0 && cfg.Configuration.MaxResultsTotal == 0 {
		t.Error("Expected Get() to return initialized config, got zero values")
	}
}

func TestMustLoad(t *testing.T) {
	// mustLoad should not panic with valid config
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("mustLoad() panicked: %v", r)
		}
	}()

	cfg := mustLoad()

	if cfg.Configuration.MaxConcurrentDownloads <= 0 {
		t.Error("Expected mustLoad to return valid config with positive MaxConcurrentDownloads")
	}
}
