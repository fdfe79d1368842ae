package service

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/lumina-api/internal/conversation"
	"github.com/phrazzld/lumina-api/internal/domain"
	"github.com/phrazzld/lumina-api/internal/platform/logger"
	"github.com/phrazzld/lumina-api/internal/store"
)

// Exchange is one learner message and the contact's reply.
type Exchange struct {
	Sent  *domain.Message `json:"sent"`
	Reply *domain.Message `json:"reply"`
}

// MessagingService runs persona conversations with stored history.
type MessagingService interface {
	// ListContacts returns every contact the learner can message.
	ListContacts(ctx context.Context) ([]*domain.Contact, error)

	// History returns the learner's conversation with a contact, oldest first.
	History(ctx context.Context, userID, contactID uuid.UUID) ([]*domain.Message, error)

	// Send asks the contact's persona for a reply to the learner's message
	// and stores both in one transaction, so a message is never kept without
	// its reply. The reply is always produced; when the assistant fails it
	// carries the persona sentinel text. Reply text is stored trimmed of
	// surrounding whitespace.
	Send(ctx context.Context, userID, contactID uuid.UUID, text string, lang domain.Language) (*Exchange, error)
}

type messagingService struct {
	contacts      store.ContactStore
	messages      store.MessageStore
	assistant     Assistant
	db            *sql.DB
	personaWindow int
	logger        *slog.Logger
}

var _ MessagingService = (*messagingService)(nil)

// NewMessagingService creates a MessagingService. db runs the transaction
// that stores each exchange; personaWindow is how many prior messages
// accompany each persona request.
func NewMessagingService(
	contacts store.ContactStore,
	messages store.MessageStore,
	assistant Assistant,
	db *sql.DB,
	personaWindow int,
	logger *slog.Logger,
) (MessagingService, error) {
	if contacts == nil {
		return nil, domain.NewValidationError("contacts", "cannot be nil", domain.ErrValidation)
	}
	if messages == nil {
		return nil, domain.NewValidationError("messages", "cannot be nil", domain.ErrValidation)
	}
	if assistant == nil {
		return nil, domain.NewValidationError("assistant", "cannot be nil", domain.ErrValidation)
	}
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &messagingService{
		contacts:      contacts,
		messages:      messages,
		assistant:     assistant,
		db:            db,
		personaWindow: personaWindow,
		logger:        logger.With(slog.String("component", "messaging_service")),
	}, nil
}

func (s *messagingService) ListContacts(ctx context.Context) ([]*domain.Contact, error) {
	contacts, err := s.contacts.List(ctx)
	if err != nil {
		return nil, NewServiceError("messaging", "list_contacts", "failed to list contacts", err)
	}
	return contacts, nil
}

func (s *messagingService) History(ctx context.Context, userID, contactID uuid.UUID) ([]*domain.Message, error) {
	if _, err := s.contacts.GetByID(ctx, contactID); err != nil {
		return nil, NewServiceError("messaging", "history", "failed to get contact", err)
	}
	msgs, err := s.messages.ListRecent(ctx, userID, contactID, 0)
	if err != nil {
		return nil, NewServiceError("messaging", "history", "failed to list messages", err)
	}
	return msgs, nil
}

func (s *messagingService) Send(
	ctx context.Context,
	userID, contactID uuid.UUID,
	text string,
	lang domain.Language,
) (*Exchange, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	contact, err := s.contacts.GetByID(ctx, contactID)
	if err != nil {
		return nil, NewServiceError("messaging", "send", "failed to get contact", err)
	}

	sent, err := domain.NewMessage(userID, contactID, domain.SenderMe, text)
	if err != nil {
		return nil, err
	}

	// History is read before the new message is stored; the new message
	// travels separately as the last message.
	recent, err := s.messages.ListRecent(ctx, userID, contactID, s.personaWindow)
	if err != nil {
		return nil, NewServiceError("messaging", "send", "failed to load history", err)
	}

	replyText := s.assistant.GeneratePersonaResponse(
		ctx, contact.Persona(), conversation.Window(conversation.TurnsFromMessages(recent), s.personaWindow), text, lang)

	reply, err := domain.NewMessage(userID, contactID, domain.SenderOther, strings.TrimSpace(replyText))
	if err != nil {
		return nil, NewServiceError("messaging", "send", "invalid reply", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		messages := s.messages.WithTx(tx)
		if err := messages.Create(ctx, sent); err != nil {
			return NewServiceError("messaging", "send", "failed to store message", err)
		}
		if err := messages.Create(ctx, reply); err != nil {
			return NewServiceError("messaging", "send", "failed to store reply", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("persona reply stored",
		slog.String("contact_id", contactID.String()),
		slog.Int("history_len", len(recent)))
	return &Exchange{Sent: sent, Reply: reply}, nil
}
