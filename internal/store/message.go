package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/lumina-api/internal/domain"
)

// MessageStore persists learner conversations with contacts.
type MessageStore interface {
	// Create saves a message. It validates the message first and returns
	// ErrMessageReference when the contact does not exist.
	Create(ctx context.Context, msg *domain.Message) error

	// ListRecent returns at most limit of the newest messages between userID
	// and contactID, oldest first. A non-positive limit returns all of them.
	ListRecent(ctx context.Context, userID, contactID uuid.UUID, limit int) ([]*domain.Message, error)

	// WithTx returns a MessageStore that runs its queries in tx.
	WithTx(tx *sql.Tx) MessageStore
}
