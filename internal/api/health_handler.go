package api

import (
	"net/http"

	"github.com/phrazzld/lumina-api/internal/api/shared"
)

// HealthHandler handles GET /health. It reports whether the assistant is
// online without contacting the generation endpoint.
func HealthHandler(online bool) http.HandlerFunc {
	assistant := "offline"
	if online {
		assistant = "online"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok", Assistant: assistant})
	}
}
