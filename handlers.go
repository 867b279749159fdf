package main

import (
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"music-bot-go/downloader"
	"music-bot-go/logcolors"
	"music-bot-go/pagination"
	"music-bot-go/services/engine"
	"music-bot-go/services/notifier"
	"music-bot-go/stats"
	"music-bot-go/telegram"
	"music-bot-go/utils"

	log "github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v3"
	tmw "gopkg.in/telebot.v3/middleware"
)

// urlRegex detects links inside free-text messages
var urlRegex = regexp.MustCompile(`https?://\S+`)

const (
	msgStart = "Hi! Send me a song name or a track link, or use /search <query>.\n" +
		"I'll show results page by page. Press a button and I'll download the MP3 and send it back. " +
		"The result panel stays usable afterwards."
	msgSearchUsage    = "Provide a query, for example: /search Billie Jean"
	msgNothingFound   = "❌ Nothing found. Try a different query."
	msgFetchFailed    = "Could not extract any information from that link."
	msgSessionExpired = "This search session expired. Please search again."
	msgInvalidIndex   = "Invalid track selection."
	msgNoURL          = "Could not determine a download URL for this track."
	msgDownloadFailed = "Failed to download the track."
	msgSendFailed     = "Downloaded the track but failed to send it."
	msgInternalError  = "Internal error while handling your request."
)

// registerHandlers wires every bot interaction kind.
func (a *App) registerHandlers() {
	// Recover keeps a panicking handler from taking the dispatch loop
	// down; the recovered error flows into the error boundary like any
	// returned one.
	a.bot.Use(tmw.Recover(), a.rateLimitMiddleware)

	a.bot.Handle("/start", a.handleStart)
	a.bot.Handle("/search", a.handleSearchCommand)
	a.bot.Handle(tele.OnText, a.handleText)
	a.bot.Handle(tele.OnCallback, a.handleCallback)
}

// onErrorBoundary builds the catch-all failure boundary, installed through
// the bot settings: a failed handler must never take the poller down. Log,
// tell the user, relay to the admin channel.
func onErrorBoundary(notifiers []notifier.Notifier) func(error, tele.Context) {
	return func(err error, c tele.Context) {
		stats.Get().RecordInternalError()
		log.Errorf("%s Unhandled handler error: %v", logcolors.LogBot, err)
		notifier.NotifyAll(notifiers, "Bot handler error", err.Error())
		if c != nil {
			_ = c.Send(msgInternalError)
		}
	}
}

// rateLimitMiddleware drops interactions from chats that exceed their
// per-chat budget.
func (a *App) rateLimitMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if chat := c.Chat(); chat != nil && !a.limiter.Allow(chat.ID) {
			stats.Get().RecordRateLimitDrop()
			log.Debugf("%s Dropping interaction from chat %d", logcolors.LogRateLimit, chat.ID)
			if c.Callback() != nil {
				return c.Respond(&tele.CallbackResponse{Text: "Too many requests, slow down."})
			}
			return nil
		}
		return next(c)
	}
}

func (a *App) handleStart(c tele.Context) error {
	return c.Send(msgStart)
}

func (a *App) handleSearchCommand(c tele.Context) error {
	query := strings.TrimSpace(c.Message().Payload)
	if query == "" {
		return c.Send(msgSearchUsage)
	}
	return a.doSearch(c, query)
}

func (a *App) handleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return nil
	}
	if m := urlRegex.FindString(text); m != "" {
		return a.doFetch(c, m)
	}
	return a.doSearch(c, text)
}

// doSearch populates (or reuses) the session for a free-text query and
// renders the first page.
func (a *App) doSearch(c tele.Context, query string) error {
	stats.Get().RecordSearch()

	key := utils.CacheKey(query)
	entries, ok := a.sessions.Get(key)
	if ok && len(entries) > 0 {
		stats.Get().RecordCacheHit()
		log.Debugf("%s Session reused for %q", logcolors.LogCacheHit, query)
	} else {
		stats.Get().RecordCacheMiss()

		progress, _ := c.Bot().Send(c.Chat(), fmt.Sprintf("Searching: %s ...", html.EscapeString(query)))
		entries = a.engine.SearchCombined(context.Background(), query)
		if progress != nil {
			_ = c.Bot().Delete(progress)
		}

		// Empty outcomes are not cached: a retry right after "nothing
		// found" gets a fresh search instead of the stale miss.
		if len(entries) > 0 {
			a.sessions.Set(key, entries)
		}
	}

	if len(entries) == 0 {
		return c.Send(msgNothingFound)
	}

	lines := []string{fmt.Sprintf("Search results: %s (total: %d)", html.EscapeString(query), len(entries))}
	start, end := pagination.Window(len(entries), a.pageSize, 0)
	for i := start; i < end; i++ {
		line := fmt.Sprintf("%d. %s", i-start+1, utils.SanitizeTitle(entries[i].DisplayTitle()))
		if dur := utils.FormatDuration(entries[i].DurationSeconds); dur != "" {
			line += fmt.Sprintf(" [%s]", dur)
		}
		lines = append(lines, line)
	}

	markup := telegram.Markup(pagination.Keyboard(key, 0, a.pageSize, entries))
	return c.Send(strings.Join(lines, "\n"), markup, tele.ModeHTML)
}

// doFetch resolves a direct link into a one-entry session.
func (a *App) doFetch(c tele.Context, url string) error {
	stats.Get().RecordLinkFetch()

	// An empty session can exist under this key when a search for the
	// same text found nothing; treat it as a miss.
	key := utils.CacheKey(url)
	entries, ok := a.sessions.Get(key)
	if ok && len(entries) > 0 {
		stats.Get().RecordCacheHit()
	} else {
		stats.Get().RecordCacheMiss()

		progress, _ := c.Bot().Send(c.Chat(), "Extracting link information...")
		entry, found := a.engine.FetchInfo(context.Background(), url)
		if progress != nil {
			_ = c.Bot().Delete(progress)
		}

		if !found {
			return c.Send(msgFetchFailed)
		}
		entries = []engine.TrackEntry{entry}
		a.sessions.Set(key, entries)
	}

	e := entries[0]
	text := fmt.Sprintf("Found track: %s", utils.SanitizeTitle(e.DisplayTitle()))
	if dur := utils.FormatDuration(e.DurationSeconds); dur != "" {
		text += fmt.Sprintf(" [%s]", dur)
	}

	markup := telegram.Markup(pagination.Keyboard(key, 0, a.pageSize, entries))
	return c.Send(text, markup, tele.ModeHTML)
}

// handleCallback dispatches a button press by its decoded token action.
func (a *App) handleCallback(c tele.Context) error {
	stats.Get().RecordCallback()

	data := telegram.CallbackData(c)
	token, err := pagination.Decode(data)
	if err != nil {
		log.Warnf("%s %v", logcolors.LogToken, err)
		return c.Respond(&tele.CallbackResponse{Text: "Unrecognized button."})
	}

	switch token.Action {
	case pagination.ActionPage:
		return a.handlePage(c, token)
	case pagination.ActionPlay:
		return a.handlePlay(c, token)
	case pagination.ActionClose:
		return a.handleClose(c)
	}
	return nil
}

func (a *App) handlePage(c tele.Context, token pagination.Token) error {
	_ = c.Respond(&tele.CallbackResponse{})

	entries, ok := a.sessions.Get(token.Key)
	if !ok {
		stats.Get().RecordSessionExpired()
		return c.Send(msgSessionExpired)
	}

	totalPages := pagination.TotalPages(len(entries), a.pageSize)
	if token.Param < 0 || token.Param >= totalPages {
		return c.Send(msgInvalidIndex)
	}

	stats.Get().RecordPageServed()
	markup := telegram.Markup(pagination.Keyboard(token.Key, token.Param, a.pageSize, entries))

	if err := c.Edit(markup); err != nil {
		// Editing can be refused for old messages; fall back to a fresh
		// message carrying the updated keyboard.
		log.Debugf("%s Keyboard edit failed, sending new message: %v", logcolors.LogPage, err)
		return c.Send(fmt.Sprintf("Page %d/%d", token.Param+1, totalPages), markup)
	}
	return nil
}

func (a *App) handlePlay(c tele.Context, token pagination.Token) error {
	entries, ok := a.sessions.Get(token.Key)
	if !ok {
		stats.Get().RecordSessionExpired()
		_ = c.Respond(&tele.CallbackResponse{})
		return c.Send(msgSessionExpired)
	}
	if token.Param < 0 || token.Param >= len(entries) {
		_ = c.Respond(&tele.CallbackResponse{})
		return c.Send(msgInvalidIndex)
	}
	entry := entries[token.Param]

	_ = c.Respond(&tele.CallbackResponse{Text: "Starting download, hang on..."})
	stats.Get().RecordDownloadStart()

	chatID := c.Chat().ID
	err := a.coordinator.Run(context.Background(), token.Key, token.Param, entry,
		func(path string, e engine.TrackEntry) error {
			return telegram.SendAudio(a.bot, chatID, path, e.DisplayTitle(), e.Uploader)
		})

	switch {
	case err == nil:
		stats.Get().RecordDownloadSuccess()
		return nil
	case errors.Is(err, downloader.ErrNoURL):
		stats.Get().RecordDownloadFailure()
		return c.Send(msgNoURL)
	case errors.Is(err, downloader.ErrSendFailed):
		stats.Get().RecordDownloadFailure()
		log.Errorf("%s %v", logcolors.LogDownload, err)
		a.notifyAdmin("Audio delivery failed", err.Error())
		return c.Send(msgSendFailed)
	default:
		stats.Get().RecordDownloadFailure()
		log.Errorf("%s %v", logcolors.LogDownload, err)
		a.notifyAdmin("Download failed", fmt.Sprintf("%s: %v", entry.ResolveURL(), err))
		return c.Send(msgDownloadFailed)
	}
}

func (a *App) handleClose(c tele.Context) error {
	_ = c.Respond(&tele.CallbackResponse{})
	// Removing an already-removed keyboard fails on the Telegram side;
	// the operation is idempotent from the user's perspective.
	if _, err := a.bot.EditReplyMarkup(c.Message(), nil); err != nil {
		log.Debugf("%s Keyboard removal failed: %v", logcolors.LogBot, err)
	}
	return nil
}
