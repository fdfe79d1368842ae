package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/lumina-api/internal/domain"
)

// ContactStore reads the contacts a learner can message. Contacts are shared
// by all learners and seeded by migrations.
type ContactStore interface {
	// List returns all contacts ordered by name.
	List(ctx context.Context) ([]*domain.Contact, error)

	// GetByID retrieves a contact.
	// Returns ErrContactNotFound if the contact does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error)
}
