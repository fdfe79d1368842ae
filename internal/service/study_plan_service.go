package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lumina-api/internal/domain"
	"github.com/phrazzld/lumina-api/internal/platform/logger"
	"github.com/phrazzld/lumina-api/internal/store"
)

// PlanRequest asks for a new study plan.
type PlanRequest struct {
	Subject  string
	Hours    float64
	Language domain.Language
	Save     bool
}

// GeneratedPlan is a freshly generated plan. Saved is set when the request
// asked for the plan to be kept.
type GeneratedPlan struct {
	Plan  *domain.StudyPlan
	Saved *domain.SavedStudyPlan
}

// StudyPlanService generates study plans and manages the ones learners keep.
type StudyPlanService interface {
	// Generate asks the assistant for a plan and optionally saves it.
	// Returns ErrPlanUnavailable when the assistant produced nothing.
	Generate(ctx context.Context, userID uuid.UUID, req PlanRequest) (*GeneratedPlan, error)

	// List returns the learner's saved plans, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.SavedStudyPlan, error)

	// Get returns one saved plan.
	Get(ctx context.Context, userID, planID uuid.UUID) (*domain.SavedStudyPlan, error)

	// UpdateTaskStatus moves one task of a saved plan to status.
	UpdateTaskStatus(
		ctx context.Context,
		userID, planID uuid.UUID,
		taskID string,
		status domain.TaskStatus,
	) (*domain.SavedStudyPlan, error)

	// Delete removes a saved plan.
	Delete(ctx context.Context, userID, planID uuid.UUID) error
}

type studyPlanService struct {
	plans     store.StudyPlanStore
	assistant Assistant
	db        *sql.DB
	logger    *slog.Logger
}

var _ StudyPlanService = (*studyPlanService)(nil)

// NewStudyPlanService creates a StudyPlanService. db is used to run task
// status updates in a transaction.
func NewStudyPlanService(
	plans store.StudyPlanStore,
	assistant Assistant,
	db *sql.DB,
	logger *slog.Logger,
) (StudyPlanService, error) {
	if plans == nil {
		return nil, domain.NewValidationError("plans", "cannot be nil", domain.ErrValidation)
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
	return &studyPlanService{
		plans:     plans,
		assistant: assistant,
		db:        db,
		logger:    logger.With(slog.String("component", "study_plan_service")),
	}, nil
}

func (s *studyPlanService) Generate(ctx context.Context, userID uuid.UUID, req PlanRequest) (*GeneratedPlan, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	plan := s.assistant.GenerateStudyPlan(ctx, req.Subject, req.Hours, req.Language)
	if plan == nil {
		return nil, ErrPlanUnavailable
	}

	out := &GeneratedPlan{Plan: plan}
	if !req.Save {
		return out, nil
	}

	saved, err := domain.NewSavedStudyPlan(userID, req.Subject, req.Hours, req.Language, *plan)
	if err != nil {
		return nil, err
	}
	if err := s.plans.Create(ctx, saved); err != nil {
		return nil, NewServiceError("study_plan", "generate", "failed to save plan", err)
	}

	log.Info("study plan generated and saved",
		slog.String("plan_id", saved.ID.String()),
		slog.Int("task_count", len(plan.Tasks)))
	out.Saved = saved
	return out, nil
}

func (s *studyPlanService) List(ctx context.Context, userID uuid.UUID) ([]*domain.SavedStudyPlan, error) {
	plans, err := s.plans.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewServiceError("study_plan", "list", "failed to list plans", err)
	}
	return plans, nil
}

func (s *studyPlanService) Get(ctx context.Context, userID, planID uuid.UUID) (*domain.SavedStudyPlan, error) {
	plan, err := s.plans.GetByID(ctx, userID, planID)
	if err != nil {
		return nil, NewServiceError("study_plan", "get", "failed to get plan", err)
	}
	return plan, nil
}

func (s *studyPlanService) UpdateTaskStatus(
	ctx context.Context,
	userID, planID uuid.UUID,
	taskID string,
	status domain.TaskStatus,
) (*domain.SavedStudyPlan, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidTaskStatus
	}

	var updated *domain.SavedStudyPlan
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		plans := s.plans.WithTx(tx)

		plan, err := plans.GetByIDForUpdate(ctx, userID, planID)
		if err != nil {
			return err
		}
		if err := plan.SetTaskStatus(taskID, status); err != nil {
			return err
		}
		if err := plans.Update(ctx, plan); err != nil {
			return err
		}
		updated = plan
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, NewServiceError("study_plan", "update_task_status", "failed to update task", err)
	}
	return updated, nil
}

func (s *studyPlanService) Delete(ctx context.Context, userID, planID uuid.UUID) error {
	if err := s.plans.Delete(ctx, userID, planID); err != nil {
		return NewServiceError("study_plan", "delete", "failed to delete plan", err)
	}
	return nil
}
