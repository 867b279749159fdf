package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

var conf = mustLoad()

type Config struct {
	Configuration struct {
		BotToken    string `envconfig:"BOT_TOKEN" default:""`
		AdminChatID int64  `envconfig:"ADMIN_CHAT_ID" default:"0"`

		SearchSources   []string `envconfig:"SEARCH_SOURCES" default:"ytsearch,ytmusicsearch,scsearch,spsearch,bandcampsearch,deezersearch"`
		MaxResultsTotal int      `envconfig:"MAX_RESULTS_TOTAL" default:"30"`
		PageSize        int      `envconfig:"PAGE_SIZE" default:"10"`

		SearchCacheTTLInSeconds int    `envconfig:"SEARCH_CACHE_TTL_SECONDS" default:"3600"`
		TempDir                 string `envconfig:"TEMP_DIR" default:"/tmp/music-bot"`

		MaxConcurrentDownloads   int `envconfig:"MAX_CONCURRENT_DOWNLOADS" default:"2"`
		DownloadTimeoutInSeconds int `envconfig:"DOWNLOAD_TIMEOUT_SECONDS" default:"600"`

		ChatRateLimitPerSecond float64 `envconfig:"CHAT_RATE_LIMIT_PER_SECOND" default:"1"`
		ChatRateLimitBurst     int     `envconfig:"CHAT_RATE_LIMIT_BURST" default:"5"`

		CircuitBreakerThreshold    int `envconfig:"CIRCUIT_BREAKER_THRESHOLD" default:"5"`
		CircuitBreakerCooldownSecs int `envconfig:"CIRCUIT_BREAKER_COOLDOWN_SECS" default:"300"`

		StatusPort                 string `envconfig:"STATUS_PORT" default:""`
		StatsDBPath                string `envconfig:"STATS_DB_PATH" default:"/tmp/music-bot-stats.db"`
		StatsSaveIntervalInSeconds int    `envconfig:"STATS_SAVE_INTERVAL_SECONDS" default:"300"`

		NtfyTopic  string `envconfig:"NOTIFIER_NTFY_TOPIC" default:""`
		NtfyServer string `envconfig:"NOTIFIER_NTFY_SERVER" default:"https://ntfy.sh"`
	}
}

// load loads the configuration from the environment.
func load() (Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Warnf("Error loading env config: %v", err)
	}

	cfg := Config{}
	err = envconfig.Process("", &cfg)
	cfg.Configuration.BotToken = strings.TrimSpace(cfg.Configuration.BotToken)
	return cfg, err
}

func mustLoad() Config {
	c, err := load()
	if err != nil {
		log.WithError(err).Warnf("Unable to load configuration")
	}

	return c
}

func Get() Config {
	return conf
}
