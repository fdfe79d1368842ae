package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sender identifies which side of a contact conversation wrote a message.
type Sender string

// Message senders.
const (
	SenderMe    Sender = "me"
	SenderOther Sender = "other"
)

// Message is a stored entry in a learner's conversation with a contact.
type Message struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ContactID uuid.UUID `json:"contact_id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMessage creates a message with a fresh ID and the current time.
func NewMessage(userID, contactID uuid.UUID, sender Sender, text string) (*Message, error) {
	msg := &Message{
		ID:        uuid.New(),
		UserID:    userID,
		ContactID: contactID,
		Sender:    sender,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg, nil
}

// Validate checks IDs, sender and text.
func (m *Message) Validate() error {
	if m.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if m.UserID == uuid.Nil {
		return NewValidationError("user_id", "cannot be empty", ErrInvalidID)
	}
	if m.ContactID == uuid.Nil {
		return NewValidationError("contact_id", "cannot be empty", ErrInvalidID)
	}
	if m.Sender != SenderMe && m.Sender != SenderOther {
		return ErrInvalidSender
	}
	if strings.TrimSpace(m.Text) == "" {
		return NewValidationError("text", "cannot be empty", ErrEmptyContent)
	}
	return nil
}

// Turn converts the message to a chat turn: the learner's messages become
// user turns and the contact's become assistant turns.
func (m *Message) Turn() ChatTurn {
	role := RoleAssistant
	if m.Sender == SenderMe {
		role = RoleUser
	}
	return ChatTurn{Role: role, Text: m.Text, CreatedAt: m.CreatedAt}
}
