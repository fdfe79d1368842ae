package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lumina-api/internal/domain"
	"github.com/phrazzld/lumina-api/internal/platform/logger"
	"github.com/phrazzld/lumina-api/internal/store"
)

// PostgresMessageStore implements store.MessageStore.
type PostgresMessageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.MessageStore = (*PostgresMessageStore)(nil)

// NewPostgresMessageStore creates a message store. If logger is nil, a
// default logger is used.
func NewPostgresMessageStore(db store.DBTX, logger *slog.Logger) *PostgresMessageStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresMessageStore{
		db:     db,
		logger: logger.With(slog.String("component", "message_store")),
	}
}

// WithTx implements store.MessageStore.WithTx.
func (s *PostgresMessageStore) WithTx(tx *sql.Tx) store.MessageStore {
	return &PostgresMessageStore{db: tx, logger: s.logger}
}

// Create implements store.MessageStore.Create.
func (s *PostgresMessageStore) Create(ctx context.Context, msg *domain.Message) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := msg.Validate(); err != nil {
		log.Warn("message validation failed during create",
			slog.String("error", err.Error()),
			slog.String("message_id", msg.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, user_id, contact_id, sender, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, msg.ID, msg.UserID, msg.ContactID, string(msg.Sender), msg.Text, msg.CreatedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("message references unknown contact",
				slog.String("contact_id", msg.ContactID.String()))
			return store.ErrMessageReference
		}
		log.Error("failed to create message",
			slog.String("error", err.Error()),
			slog.String("message_id", msg.ID.String()))
		return store.NewStoreError("message", "create", "insert failed", MapError(err))
	}

	log.Debug("message created",
		slog.String("message_id", msg.ID.String()),
		slog.String("sender", string(msg.Sender)))
	return nil
}

// ListRecent implements store.MessageStore.ListRecent.
func (s *PostgresMessageStore) ListRecent(
	ctx context.Context,
	userID, contactID uuid.UUID,
	limit int,
) ([]*domain.Message, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// LIMIT NULL means no limit.
	var lim sql.NullInt64
	if limit > 0 {
		lim = sql.NullInt64{Int64: int64(limit), Valid: true}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, contact_id, sender, text, created_at FROM (
			SELECT id, user_id, contact_id, sender, text, created_at
			FROM messages
			WHERE user_id = $1 AND contact_id = $2
			ORDER BY created_at DESC, id DESC
			LIMIT $3
		) recent
		ORDER BY created_at ASC, id ASC
	`, userID, contactID, lim)
	if err != nil {
		log.Error("failed to list messages",
			slog.String("error", err.Error()),
			slog.String("contact_id", contactID.String()))
		return nil, store.NewStoreError("message", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	messages := make([]*domain.Message, 0)
	for rows.Next() {
		var m domain.Message
		var sender string
		if err := rows.Scan(&m.ID, &m.UserID, &m.ContactID, &sender, &m.Text, &m.CreatedAt); err != nil {
			return nil, store.NewStoreError("message", "list", "scan failed", err)
		}
		m.Sender = domain.Sender(sender)
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("message", "list", "iteration failed", err)
	}
	return messages, nil
}
