package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lumina-api/internal/domain"
	"github.com/phrazzld/lumina-api/internal/platform/logger"
	"github.com/phrazzld/lumina-api/internal/store"
)

// PostgresContactStore implements store.ContactStore.
type PostgresContactStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.ContactStore = (*PostgresContactStore)(nil)

// NewPostgresContactStore creates a contact store. If logger is nil, a
// default logger is used.
func NewPostgresContactStore(db store.DBTX, logger *slog.Logger) *PostgresContactStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresContactStore{
		db:     db,
		logger: logger.With(slog.String("component", "contact_store")),
	}
}

const contactColumns = `id, name, role, avatar_url, online`

func scanContact(row interface{ Scan(...any) error }) (*domain.Contact, error) {
	var c domain.Contact
	if err := row.Scan(&c.ID, &c.Name, &c.Role, &c.AvatarURL, &c.Online); err != nil {
		return nil, err
	}
	return &c, nil
}

// List implements store.ContactStore.List.
func (s *PostgresContactStore) List(ctx context.Context) ([]*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT `+contactColumns+` FROM contacts ORDER BY name`)
	if err != nil {
		log.Error("failed to list contacts", slog.String("error", err.Error()))
		return nil, store.NewStoreError("contact", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	contacts := make([]*domain.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, store.NewStoreError("contact", "list", "scan failed", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("contact", "list", "iteration failed", err)
	}

	log.Debug("contacts listed", slog.Int("count", len(contacts)))
	return contacts, nil
}

// GetByID implements store.ContactStore.GetByID.
func (s *PostgresContactStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)
	c, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("contact not found", slog.String("contact_id", id.String()))
			return nil, store.ErrContactNotFound
		}
		log.Error("failed to get contact",
			slog.String("error", err.Error()),
			slog.String("contact_id", id.String()))
		return nil, fmt.Errorf("failed to get contact: %w", MapError(err))
	}
	return c, nil
}
