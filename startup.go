package main

import (
	"net/http"

	"music-bot-go/logcolors"
	"music-bot-go/middleware"
	"music-bot-go/services/notifier"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

// setupNotifiers builds the configured notification channels. The admin
// Telegram chat is the primary one; ntfy.sh is an optional second channel.
func setupNotifiers() []notifier.Notifier {
	var notifiers []notifier.Notifier

	cfg := conf.Configuration
	if cfg.AdminChatID != 0 {
		notifiers = append(notifiers, &notifier.TelegramNotifier{
			BotToken: cfg.BotToken,
			ChatID:   cfg.AdminChatID,
		})
		log.Infof("%s Admin Telegram notifier enabled (chat %d)", logcolors.LogNotifier, cfg.AdminChatID)
	}

	if cfg.NtfyTopic != "" {
		notifiers = append(notifiers, &notifier.NtfyNotifier{
			Topic:  cfg.NtfyTopic,
			Server: cfg.NtfyServer,
		})
		log.Infof("%s Ntfy.sh notifier enabled", logcolors.LogNotifier)
	}

	if len(notifiers) == 0 {
		log.Infof("%s No notifiers configured, error relay disabled", logcolors.LogNotifier)
	}
	return notifiers
}

// startStatusServer serves the health/stats surface next to the bot.
// Blocking; run in a goroutine.
func startStatusServer(app *App, port string) {
	router := mux.NewRouter()
	setupRoutes(router, app)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
	})

	handler := c.Handler(middleware.LoggingMiddleware(router))

	log.Infof("%s Status server listening on port %s", logcolors.LogServer, port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Errorf("%s Status server stopped: %v", logcolors.LogServer, err)
	}
}
