package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lumina-api/internal/api/shared"
	"github.com/phrazzld/lumina-api/internal/platform/logger"
	"github.com/phrazzld/lumina-api/internal/service"
)

// TutorHandler handles tutor chat requests. The tutor keeps no history of
// its own; clients send the conversation with every message.
type TutorHandler struct {
	assistant service.Assistant
	online    bool
	logger    *slog.Logger
}

// NewTutorHandler creates a new TutorHandler. online is reported back to
// clients alongside each reply.
func NewTutorHandler(assistant service.Assistant, online bool, logger *slog.Logger) *TutorHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TutorHandler")
	}
	return &TutorHandler{
		assistant: assistant,
		online:    online,
		logger:    logger.With(slog.String("component", "tutor_handler")),
	}
}

// SendMessage handles POST /tutor/messages. A reply is always returned;
// failures surface as the localized fallback text with status 200.
func (h *TutorHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if _, ok := requireUserID(w, r, log); !ok {
		return
	}

	var req TutorMessageRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	history, err := toChatTurns(req.History)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	reply := h.assistant.SendChatMessage(r.Context(), history, req.Message, requestLanguage(r, req.Language))
	log.Debug("tutor reply sent", slog.Int("history_len", len(history)))
	shared.RespondWithJSON(w, r, http.StatusOK, ReplyResponse{Reply: reply, Online: h.online})
}

// Greeting handles GET /tutor/greeting.
func (h *TutorHandler) Greeting(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, ReplyResponse{
		Reply:  h.assistant.Greeting(requestLanguage(r, "")),
		Online: h.online,
	})
}
