package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the progress state of a study task. The string values are
// the ones exchanged with the generation endpoint and the HTTP API.
type TaskStatus string

// Task status values.
const (
	TaskStatusToDo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
)

// TaskStatuses lists every valid status in board order.
var TaskStatuses = []TaskStatus{TaskStatusToDo, TaskStatusInProgress, TaskStatusDone}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// ParseTaskStatus maps a wire value to a TaskStatus. An empty value means
// the task has not been started.
func ParseTaskStatus(s string) (TaskStatus, error) {
	if strings.TrimSpace(s) == "" {
		return TaskStatusToDo, nil
	}
	status := TaskStatus(s)
	if !status.Valid() {
		return "", ErrInvalidTaskStatus
	}
	return status, nil
}

// StudyTask is one step of a study plan.
type StudyTask struct {
	ID       string     `json:"id"`
	Task     string     `json:"task"`
	Duration string     `json:"duration"`
	Status   TaskStatus `json:"status"`
}

// StudyPlan is a generated, ordered schedule for a subject.
type StudyPlan struct {
	Title    string      `json:"title"`
	Overview string      `json:"overview"`
	Tasks    []StudyTask `json:"tasks"`
}

// Task returns a pointer to the task with the given ID.
func (p *StudyPlan) Task(id string) (*StudyTask, error) {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return &p.Tasks[i], nil
		}
	}
	return nil, ErrTaskNotFound
}

// SavedStudyPlan is a study plan a learner chose to keep.
type SavedStudyPlan struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Subject   string    `json:"subject"`
	Hours     float64   `json:"hours"`
	Language  Language  `json:"language"`
	Plan      StudyPlan `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSavedStudyPlan wraps a generated plan for persistence.
func NewSavedStudyPlan(
	userID uuid.UUID,
	subject string,
	hours float64,
	lang Language,
	plan StudyPlan,
) (*SavedStudyPlan, error) {
	now := time.Now().UTC()
	saved := &SavedStudyPlan{
		ID:        uuid.New(),
		UserID:    userID,
		Subject:   subject,
		Hours:     hours,
		Language:  lang,
		Plan:      plan,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := saved.Validate(); err != nil {
		return nil, err
	}
	return saved, nil
}

// Validate checks ownership, subject and that every task status is known.
func (s *SavedStudyPlan) Validate() error {
	if s.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if s.UserID == uuid.Nil {
		return NewValidationError("user_id", "cannot be empty", ErrInvalidID)
	}
	if strings.TrimSpace(s.Subject) == "" {
		return NewValidationError("subject", "cannot be empty", ErrEmptyContent)
	}
	for _, task := range s.Plan.Tasks {
		if !task.Status.Valid() {
			return ErrInvalidTaskStatus
		}
	}
	return nil
}

// SetTaskStatus moves one task to a new status and bumps UpdatedAt.
func (s *SavedStudyPlan) SetTaskStatus(taskID string, status TaskStatus) error {
	if !status.Valid() {
		return ErrInvalidTaskStatus
	}
	task, err := s.Plan.Task(taskID)
	if err != nil {
		return err
	}
	task.Status = status
	s.UpdatedAt = time.Now().UTC()
	return nil
}
