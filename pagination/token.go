package pagination

import (
	"fmt"
	"strconv"
	"strings"
)

// Action is the kind of interaction a callback token carries.
type Action string

const (
	ActionPage  Action = "page"
	ActionPlay  Action = "play"
	ActionClose Action = "close"
)

// Token is the decoded form of a callback button payload. The wire format
// is "action:cacheKey:parameter"; close tokens omit the parameter. The
// parameter is a page number for page tokens and an absolute entry index
// for play tokens.
type Token struct {
	Action Action
	Key    string
	Param  int
}

// Encode renders the token in its wire format. Encode and Decode round-trip
// exactly for all valid tokens.
func (t Token) Encode() string {
	if t.Action == ActionClose {
		return fmt.Sprintf("%s:%s", ActionClose, t.Key)
	}
	return fmt.Sprintf("%s:%s:%d", t.Action, t.Key, t.Param)
}

// Decode parses a callback payload back into a Token. Cache keys are hex
// digests and never contain colons, so a two-way split is unambiguous.
// Bounds checks against the session happen at the call site; here only the
// shape is validated.
func Decode(data string) (Token, error) {
	parts := strings.SplitN(data, ":", 3)
	action := Action(parts[0])

	switch action {
	case ActionClose:
		if len(parts) != 2 || parts[1] == "" {
			return Token{}, fmt.Errorf("malformed close token: %q", data)
		}
		return Token{Action: ActionClose, Key: parts[1]}, nil

	case ActionPage, ActionPlay:
		if len(parts) != 3 || parts[1] == "" {
			return Token{}, fmt.Errorf("malformed %s token: %q", action, data)
		}
		param, err := strconv.Atoi(parts[2])
		if err != nil {
			return Token{}, fmt.Errorf("malformed %s token parameter: %q", action, data)
		}
		return Token{Action: action, Key: parts[1], Param: param}, nil

	default:
		return Token{}, fmt.Errorf("unknown token action: %q", data)
	}
}
