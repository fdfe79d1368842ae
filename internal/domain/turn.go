package domain

import (
	"strings"
	"time"
)

// Role identifies who authored a chat turn.
type Role string

// Chat turn roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatTurn is one message in a conversation, attributed to the learner or
// to the automated counterpart.
type ChatTurn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewChatTurn creates a turn stamped with the current time.
func NewChatTurn(role Role, text string) (ChatTurn, error) {
	turn := ChatTurn{
		Role:      role,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := turn.Validate(); err != nil {
		return ChatTurn{}, err
	}
	return turn, nil
}

// Validate checks the role and that the text is not blank.
func (t ChatTurn) Validate() error {
	if !t.Role.Valid() {
		return ErrInvalidRole
	}
	if strings.TrimSpace(t.Text) == "" {
		return NewValidationError("text", "cannot be empty", ErrEmptyContent)
	}
	return nil
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// ParseRole accepts the canonical roles plus "model", which is what the
// generation endpoint calls the assistant.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleUser):
		return RoleUser, nil
	case string(RoleAssistant), "model":
		return RoleAssistant, nil
	default:
		return "", ErrInvalidRole
	}
}
