// Package conversation holds the chat turn type and the helpers that prepare
// user input and history for a completion request.
package conversation

import "strings"

// Role identifies the author of a turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the three recognised roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

// Turn is a single message in a conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Sanitize normalises raw user text. It is idempotent.
func Sanitize(text string) string {
	return strings.TrimSpace(text)
}

// Format builds the message list submitted to a completion API: the persona as
// the single leading system turn, then every history turn with a recognised
// role (in order), then message as the final user turn.
//
// Turns with an unrecognised role are dropped, not rejected.
func Format(personaContext string, history []Turn, message string) []Turn {
	out := make([]Turn, 0, len(history)+2)
	out = append(out, Turn{Role: RoleSystem, Content: personaContext})

	for _, t := range history {
		if !t.Role.Valid() {
			continue
		}
		out = append(out, t)
	}

	return append(out, Turn{Role: RoleUser, Content: message})
}
