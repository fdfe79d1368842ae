package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lumina-api/internal/api/shared"
	"github.com/phrazzld/lumina-api/internal/platform/logger"
	"github.com/phrazzld/lumina-api/internal/service"
)

// ContactHandler handles contact and persona message requests.
type ContactHandler struct {
	messaging service.MessagingService
	logger    *slog.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(messaging service.MessagingService, logger *slog.Logger) *ContactHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ContactHandler")
	}
	return &ContactHandler{
		messaging: messaging,
		logger:    logger.With(slog.String("component", "contact_handler")),
	}
}

// List handles GET /contacts.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if _, ok := requireUserID(w, r, log); !ok {
		return
	}

	contacts, err := h.messaging.ListContacts(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list contacts")
		return
	}

	resp := make([]ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		resp = append(resp, contactToResponse(c))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// History handles GET /contacts/{id}/messages.
func (h *ContactHandler) History(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, contactID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	msgs, err := h.messaging.History(r.Context(), userID, contactID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		resp = append(resp, messageToResponse(m))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Send handles POST /contacts/{id}/messages.
func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, contactID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req ContactMessageRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	ex, err := h.messaging.Send(r.Context(), userID, contactID, req.Text, requestLanguage(r, req.Language))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, ExchangeResponse{
		Sent:  messageToResponse(ex.Sent),
		Reply: messageToResponse(ex.Reply),
	})
}
