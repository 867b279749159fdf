// Package telegram is the thin adapter between the bot core and telebot.
// Everything the core needs from the chat transport goes through here:
// keyboard conversion, callback payload normalization and audio delivery.
package telegram

import (
	"strings"

	"music-bot-go/pagination"
	"music-bot-go/utils"

	tele "gopkg.in/telebot.v3"
)

// Telegram caps audio titles at 64 characters.
const maxAudioTitle = 64

// Markup converts transport-agnostic button rows into a telebot inline
// keyboard.
func Markup(rows [][]pagination.Button) *tele.ReplyMarkup {
	keyboard := make([][]tele.InlineButton, 0, len(rows))
	for _, row := range rows {
		btns := make([]tele.InlineButton, 0, len(row))
		for _, b := range row {
			btns = append(btns, tele.InlineButton{Text: b.Label, Data: b.Data})
		}
		keyboard = append(keyboard, btns)
	}
	return &tele.ReplyMarkup{InlineKeyboard: keyboard}
}

// CallbackData returns the raw token carried by a callback. telebot
// prefixes payloads of buttons registered by unique name with "\f"; our
// buttons carry raw data, but strip the prefix in case the client echoes it.
func CallbackData(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	return strings.TrimPrefix(cb.Data, "\f")
}

// SendAudio delivers an audio file to a chat as a new message, with title
// and performer metadata truncated to Telegram's limits.
func SendAudio(bot *tele.Bot, chatID int64, path, title, performer string) error {
	audio := &tele.Audio{
		File:      tele.FromDisk(path),
		Title:     utils.Truncate(title, maxAudioTitle),
		Performer: utils.Truncate(performer, maxAudioTitle),
	}
	_, err := bot.Send(tele.ChatID(chatID), audio)
	return err
}
