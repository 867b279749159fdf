package main

import (
	"music-bot-go/cache"
	"music-bot-go/downloader"
	"music-bot-go/middleware"
	"music-bot-go/services/engine"
	"music-bot-go/services/notifier"

	tele "gopkg.in/telebot.v3"
)

// App bundles the injectable services every interaction handler needs.
// Constructed once at startup and passed by reference; nothing here is a
// package-level singleton except the stats counters.
type App struct {
	bot         *tele.Bot
	sessions    *cache.SessionCache
	engine      *engine.Engine
	coordinator *downloader.Coordinator
	limiter     *middleware.ChatRateLimiter
	notifiers   []notifier.Notifier
	pageSize    int
}

// notifyAdmin relays an error to the configured notification channels,
// best-effort.
func (a *App) notifyAdmin(subject, message string) {
	notifier.NotifyAll(a.notifiers, subject, message)
}
