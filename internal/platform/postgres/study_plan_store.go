package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lumina-api/internal/domain"
	"github.com/phrazzld/lumina-api/internal/platform/logger"
	"github.com/phrazzld/lumina-api/internal/store"
)

// PostgresStudyPlanStore implements store.StudyPlanStore. The plan body is
// stored as JSONB in its wire shape.
type PostgresStudyPlanStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.StudyPlanStore = (*PostgresStudyPlanStore)(nil)

// NewPostgresStudyPlanStore creates a study plan store. If logger is nil, a
// default logger is used.
func NewPostgresStudyPlanStore(db store.DBTX, logger *slog.Logger) *PostgresStudyPlanStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStudyPlanStore{
		db:     db,
		logger: logger.With(slog.String("component", "study_plan_store")),
	}
}

// WithTx implements store.StudyPlanStore.WithTx.
func (s *PostgresStudyPlanStore) WithTx(tx *sql.Tx) store.StudyPlanStore {
	return &PostgresStudyPlanStore{db: tx, logger: s.logger}
}

const studyPlanColumns = `id, user_id, subject, hours, language, plan, created_at, updated_at`

func scanStudyPlan(row interface{ Scan(...any) error }) (*domain.SavedStudyPlan, error) {
	var p domain.SavedStudyPlan
	var lang string
	var body []byte
	if err := row.Scan(&p.ID, &p.UserID, &p.Subject, &p.Hours, &lang, &body, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, &p.Plan); err != nil {
		return nil, fmt.Errorf("failed to decode stored plan %s: %w", p.ID, err)
	}
	p.Language = domain.ParseLanguage(lang)
	return &p, nil
}

// Create implements store.StudyPlanStore.Create.
func (s *PostgresStudyPlanStore) Create(ctx context.Context, plan *domain.SavedStudyPlan) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := plan.Validate(); err != nil {
		log.Warn("study plan validation failed during create",
			slog.String("error", err.Error()),
			slog.String("plan_id", plan.ID.String()))
		return err
	}

	body, err := json.Marshal(plan.Plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO study_plans (id, user_id, subject, hours, language, plan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, plan.ID, plan.UserID, plan.Subject, plan.Hours, string(plan.Language), body, plan.CreatedAt, plan.UpdatedAt)
	if err != nil {
		log.Error("failed to create study plan",
			slog.String("error", err.Error()),
			slog.String("plan_id", plan.ID.String()))
		return store.NewStoreError("study_plan", "create", "insert failed", MapError(err))
	}

	log.Info("study plan saved",
		slog.String("plan_id", plan.ID.String()),
		slog.String("user_id", plan.UserID.String()),
		slog.Int("task_count", len(plan.Plan.Tasks)))
	return nil
}

// GetByID implements store.StudyPlanStore.GetByID.
func (s *PostgresStudyPlanStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.SavedStudyPlan, error) {
	return s.get(ctx, userID, id, "")
}

// GetByIDForUpdate implements store.StudyPlanStore.GetByIDForUpdate.
func (s *PostgresStudyPlanStore) GetByIDForUpdate(
	ctx context.Context,
	userID, id uuid.UUID,
) (*domain.SavedStudyPlan, error) {
	return s.get(ctx, userID, id, " FOR UPDATE")
}

func (s *PostgresStudyPlanStore) get(
	ctx context.Context,
	userID, id uuid.UUID,
	lock string,
) (*domain.SavedStudyPlan, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx,
		`SELECT `+studyPlanColumns+` FROM study_plans WHERE id = $1 AND user_id = $2`+lock,
		id, userID)
	plan, err := scanStudyPlan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("study plan not found", slog.String("plan_id", id.String()))
			return nil, store.ErrStudyPlanNotFound
		}
		log.Error("failed to get study plan",
			slog.String("error", err.Error()),
			slog.String("plan_id", id.String()))
		return nil, store.NewStoreError("study_plan", "get", "query failed", MapError(err))
	}
	return plan, nil
}

// ListByUser implements store.StudyPlanStore.ListByUser.
func (s *PostgresStudyPlanStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.SavedStudyPlan, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+studyPlanColumns+` FROM study_plans WHERE user_id = $1 ORDER BY created_at DESC, id`,
		userID)
	if err != nil {
		log.Error("failed to list study plans", slog.String("error", err.Error()))
		return nil, store.NewStoreError("study_plan", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	plans := make([]*domain.SavedStudyPlan, 0)
	for rows.Next() {
		plan, err := scanStudyPlan(rows)
		if err != nil {
			return nil, store.NewStoreError("study_plan", "list", "scan failed", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("study_plan", "list", "iteration failed", err)
	}
	return plans, nil
}

// Update implements store.StudyPlanStore.Update.
func (s *PostgresStudyPlanStore) Update(ctx context.Context, plan *domain.SavedStudyPlan) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := plan.Validate(); err != nil {
		return err
	}
	body, err := json.Marshal(plan.Plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE study_plans SET plan = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`, body, plan.UpdatedAt, plan.ID, plan.UserID)
	if err != nil {
		log.Error("failed to update study plan",
			slog.String("error", err.Error()),
			slog.String("plan_id", plan.ID.String()))
		return store.NewStoreError("study_plan", "update", "update failed", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrStudyPlanNotFound)
}

// Delete implements store.StudyPlanStore.Delete.
func (s *PostgresStudyPlanStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM study_plans WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		log.Error("failed to delete study plan",
			slog.String("error", err.Error()),
			slog.String("plan_id", id.String()))
		return store.NewStoreError("study_plan", "delete", "delete failed", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrStudyPlanNotFound); err != nil {
		return err
	}

	log.Info("study plan deleted", slog.String("plan_id", id.String()))
	return nil
}
