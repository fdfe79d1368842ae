package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/lumina-api/internal/domain"
)

// StudyPlanStore persists study plans learners chose to keep.
type StudyPlanStore interface {
	// Create saves a new plan. It validates the plan first.
	Create(ctx context.Context, plan *domain.SavedStudyPlan) error

	// GetByID retrieves a plan owned by userID.
	// Returns ErrStudyPlanNotFound if it does not exist or has another owner.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.SavedStudyPlan, error)

	// GetByIDForUpdate is GetByID with a row lock, for use inside a
	// transaction ahead of Update.
	GetByIDForUpdate(ctx context.Context, userID, id uuid.UUID) (*domain.SavedStudyPlan, error)

	// ListByUser returns the learner's plans, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.SavedStudyPlan, error)

	// Update saves the plan body and UpdatedAt.
	// Returns ErrStudyPlanNotFound if it does not exist or has another owner.
	Update(ctx context.Context, plan *domain.SavedStudyPlan) error

	// Delete removes a plan.
	// Returns ErrStudyPlanNotFound if it does not exist or has another owner.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// WithTx returns a StudyPlanStore that runs its queries in tx.
	WithTx(tx *sql.Tx) StudyPlanStore
}
