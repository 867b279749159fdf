package pagination

import (
	"fmt"

	"music-bot-go/services/engine"
	"music-bot-go/utils"
)

// maxLabelTitle bounds the title portion of a button label.
const maxLabelTitle = 50

// Button is one transport-agnostic inline button: a visible label and the
// encoded token it carries. The Telegram layer maps rows of these onto an
// inline keyboard.
type Button struct {
	Label string
	Data  string
}

// TotalPages returns ceil(n / pageSize).
func TotalPages(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// Window computes the half-open entry range [start, end) of page p.
func Window(n, pageSize, page int) (start, end int) {
	start = page * pageSize
	end = start + pageSize
	if end > n {
		end = n
	}
	if start > n {
		start = n
	}
	return start, end
}

// Keyboard renders page p of a session as button rows: one play button per
// entry in the page window, a navigation row (Prev iff p > 0, Next iff
// p < totalPages-1), and a terminal Close row. Rendering the same page of
// the same session twice yields identical output.
func Keyboard(key string, page, pageSize int, entries []engine.TrackEntry) [][]Button {
	var rows [][]Button

	totalPages := TotalPages(len(entries), pageSize)
	start, end := Window(len(entries), pageSize, page)

	for idx := start; idx < end; idx++ {
		title := utils.Truncate(utils.SanitizeTitle(entries[idx].DisplayTitle()), maxLabelTitle)
		rows = append(rows, []Button{{
			Label: fmt.Sprintf("%d. %s", idx-start+1, title),
			Data:  Token{Action: ActionPlay, Key: key, Param: idx}.Encode(),
		}})
	}

	var nav []Button
	if page > 0 {
		nav = append(nav, Button{
			Label: "⬅️ Prev",
			Data:  Token{Action: ActionPage, Key: key, Param: page - 1}.Encode(),
		})
	}
	if page < totalPages-1 {
		nav = append(nav, Button{
			Label: "Next ➡️",
			Data:  Token{Action: ActionPage, Key: key, Param: page + 1}.Encode(),
		})
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	rows = append(rows, []Button{{
		Label: "Close",
		Data:  Token{Action: ActionClose, Key: key}.Encode(),
	}})

	return rows
}
