package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/lumina-api/internal/domain"
	"github.com/phrazzld/lumina-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is; the API layer maps them to status
// codes.
var (
	// ErrContactNotFound indicates that the contact does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrContactNotFound = errors.New("contact not found")

	// ErrStudyPlanNotFound indicates that the plan does not exist or belongs
	// to another learner. API layer should map this to HTTP 404 Not Found.
	ErrStudyPlanNotFound = errors.New("study plan not found")

	// ErrPlanUnavailable indicates the assistant produced no study plan,
	// either because it is offline or because generation failed.
	// API layer should map this to HTTP 502 Bad Gateway.
	ErrPlanUnavailable = errors.New("no study plan could be generated")
)

// ServiceError wraps unexpected errors from a service with context.
type ServiceError struct {
	// Service is the service that failed (e.g., "messaging", "study_plan")
	Service string
	// Operation is the operation that failed (e.g., "send_message")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err with context. Known not-found conditions are
// returned as the matching service sentinel without wrapping.
func NewServiceError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrContactNotFound), errors.Is(err, store.ErrContactNotFound):
		return ErrContactNotFound
	case errors.Is(err, ErrStudyPlanNotFound), errors.Is(err, store.ErrStudyPlanNotFound):
		return ErrStudyPlanNotFound
	}

	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrTaskNotFound) ||
		errors.Is(err, domain.ErrInvalidTaskStatus) ||
		errors.Is(err, domain.ErrValidation)
}
