// Package decode turns raw model output into the values callers consume:
// typed study plans for structured requests and text with a fallback for
// free-text requests.
package decode

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/lumina-api/internal/domain"
	"github.com/phrazzld/lumina-api/internal/generation"
)

var validate = validator.New()

// planPayload mirrors the declared output shape. Pointer fields let absent
// keys be told apart from empty values.
type planPayload struct {
	Title    *string        `json:"title"    validate:"required"`
	Overview *string        `json:"overview" validate:"required"`
	Tasks    *[]taskPayload `json:"tasks"    validate:"required"`
}

type taskPayload struct {
	ID       string `json:"id"`
	Task     string `json:"task"     validate:"required"`
	Duration string `json:"duration"`
	Status   string `json:"status"`
}

// StudyPlan parses raw as a single JSON study plan. Every failure wraps
// generation.ErrDecode; a partially valid plan is never returned.
func StudyPlan(raw string) (*domain.StudyPlan, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty response", generation.ErrDecode)
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	var payload planPayload
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrDecode, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON value", generation.ErrDecode)
	}

	if err := validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrDecode, err)
	}
	for i := range *payload.Tasks {
		if err := validate.Struct((*payload.Tasks)[i]); err != nil {
			return nil, fmt.Errorf("%w: task %d: %v", generation.ErrDecode, i, err)
		}
	}

	plan := &domain.StudyPlan{
		Title:    *payload.Title,
		Overview: *payload.Overview,
		Tasks:    make([]domain.StudyTask, 0, len(*payload.Tasks)),
	}

	// Task ids must be unique within a plan. Explicit ids are reserved up
	// front so a filled id never takes one a later task already carries.
	reserved := make(map[string]bool, len(*payload.Tasks))
	for _, t := range *payload.Tasks {
		if strings.TrimSpace(t.ID) != "" {
			reserved[t.ID] = true
		}
	}
	claimed := make(map[string]bool, len(*payload.Tasks))

	for i, t := range *payload.Tasks {
		status, err := domain.ParseTaskStatus(t.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: task %d: %v", generation.ErrDecode, i, err)
		}
		id := t.ID
		if strings.TrimSpace(id) == "" || claimed[id] {
			id = freeTaskID(i+1, reserved, claimed)
		}
		claimed[id] = true
		plan.Tasks = append(plan.Tasks, domain.StudyTask{
			ID:       id,
			Task:     t.Task,
			Duration: t.Duration,
			Status:   status,
		})
	}

	return plan, nil
}

// freeTaskID returns the first position-based id, counting up from start,
// that no task carries or has been given.
func freeTaskID(start int, reserved, claimed map[string]bool) string {
	for n := start; ; n++ {
		id := strconv.Itoa(n)
		if !reserved[id] && !claimed[id] {
			return id
		}
	}
}

// Text returns raw unchanged, or fallback when raw has no visible content.
func Text(raw, fallback string) string {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	return raw
}
