package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/lumina-api/internal/api/shared"
	"github.com/phrazzld/lumina-api/internal/domain"
	"github.com/phrazzld/lumina-api/internal/platform/logger"
	"github.com/phrazzld/lumina-api/internal/service"
)

// StudyPlanHandler handles study plan HTTP requests.
type StudyPlanHandler struct {
	plans  service.StudyPlanService
	logger *slog.Logger
}

// NewStudyPlanHandler creates a new StudyPlanHandler
func NewStudyPlanHandler(plans service.StudyPlanService, logger *slog.Logger) *StudyPlanHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StudyPlanHandler")
	}
	return &StudyPlanHandler{
		plans:  plans,
		logger: logger.With(slog.String("component", "study_plan_handler")),
	}
}

// Generate handles POST /study-plans.
// It returns 200 with the plan, or 201 when the learner asked to save it.
func (h *StudyPlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req StudyPlanRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	out, err := h.plans.Generate(r.Context(), userID, service.PlanRequest{
		Subject:  strings.TrimSpace(req.Subject),
		Hours:    req.Hours,
		Language: requestLanguage(r, req.Language),
		Save:     req.Save,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	status := http.StatusOK
	if out.Saved != nil {
		status = http.StatusCreated
	}
	log.Debug("study plan generated",
		slog.Int("task_count", len(out.Plan.Tasks)),
		slog.Bool("saved", out.Saved != nil))
	shared.RespondWithJSON(w, r, status, generatedPlanToResponse(out))
}

// List handles GET /study-plans.
func (h *StudyPlanHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	plans, err := h.plans.List(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list study plans")
		return
	}

	resp := make([]StudyPlanResponse, 0, len(plans))
	for _, p := range plans {
		resp = append(resp, savedPlanToResponse(p))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Get handles GET /study-plans/{id}.
func (h *StudyPlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, planID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	plan, err := h.plans.Get(r.Context(), userID, planID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, savedPlanToResponse(plan))
}

// UpdateTaskStatus handles PATCH /study-plans/{id}/tasks/{taskID}.
func (h *StudyPlanHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, planID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}
	taskID := chi.URLParam(r, "taskID")
	if taskID == "" {
		HandleAPIError(w, r, domain.NewValidationError("taskID", "is required", domain.ErrValidation), "")
		return
	}

	var req UpdateTaskStatusRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	plan, err := h.plans.UpdateTaskStatus(r.Context(), userID, planID, taskID, domain.TaskStatus(req.Status))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("task status updated",
		slog.String("plan_id", planID.String()),
		slog.String("task_id", taskID),
		slog.String("status", req.Status))
	shared.RespondWithJSON(w, r, http.StatusOK, savedPlanToResponse(plan))
}

// Delete handles DELETE /study-plans/{id}.
func (h *StudyPlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, planID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.plans.Delete(r.Context(), userID, planID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
