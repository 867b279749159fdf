package main

import (
	"context"
	"os"
	"time"

	"music-bot-go/cache"
	"music-bot-go/config"
	"music-bot-go/downloader"
	"music-bot-go/logcolors"
	"music-bot-go/middleware"
	"music-bot-go/services/engine"
	"music-bot-go/stats"

	ytdlp "github.com/lrstanley/go-ytdlp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v3"
)

var conf = config.Get()

func init() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel) // Set to InfoLevel (change to DebugLevel for detailed logs)
}

func main() {
	cfg := conf.Configuration

	if cfg.BotToken == "" {
		log.Fatalf("%s BOT_TOKEN not set. Put it into environment variables or .env", logcolors.LogConfig)
	}

	// Fetch the yt-dlp binary if it is not already present.
	ytdlp.MustInstall(context.Background(), nil)

	store, err := stats.NewStore(cfg.StatsDBPath)
	if err != nil {
		log.Warnf("%s Stats persistence disabled: %v", logcolors.LogStats, err)
	} else {
		if err := store.Load(); err != nil {
			log.Warnf("%s Failed to load persisted stats: %v", logcolors.LogStats, err)
		}
		store.StartPeriodicSave(time.Duration(cfg.StatsSaveIntervalInSeconds) * time.Second)
		defer store.Close()
	}

	eng := engine.New(engine.Options{
		Sources:          cfg.SearchSources,
		MaxResultsTotal:  cfg.MaxResultsTotal,
		BreakerThreshold: cfg.CircuitBreakerThreshold,
		BreakerCooldown:  time.Duration(cfg.CircuitBreakerCooldownSecs) * time.Second,
		Extractor:        engine.NewYtdlpExtractor(),
	})

	notifiers := setupNotifiers()

	bot, err := tele.NewBot(tele.Settings{
		Token:   cfg.BotToken,
		Poller:  &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: onErrorBoundary(notifiers),
	})
	if err != nil {
		log.Fatalf("%s Failed to create bot: %v", logcolors.LogBot, err)
	}

	app := &App{
		bot:      bot,
		sessions: cache.NewSessionCache(time.Duration(cfg.SearchCacheTTLInSeconds) * time.Second),
		engine:   eng,
		coordinator: downloader.New(
			cfg.TempDir,
			cfg.MaxConcurrentDownloads,
			time.Duration(cfg.DownloadTimeoutInSeconds)*time.Second,
			eng.Download,
		),
		limiter:   middleware.NewChatRateLimiter(rate.Limit(cfg.ChatRateLimitPerSecond), cfg.ChatRateLimitBurst),
		notifiers: notifiers,
		pageSize:  cfg.PageSize,
	}
	app.registerHandlers()

	if cfg.StatusPort != "" {
		go startStatusServer(app, cfg.StatusPort)
	}

	log.Infof("%s Bot is starting (sources: %v, cap: %d, page size: %d)",
		logcolors.LogBot, cfg.SearchSources, cfg.MaxResultsTotal, cfg.PageSize)
	bot.Start()
}
