// Package service contains the application use cases. It orchestrates the
// stores defined in internal/store and the assistant in internal/tutor to
// implement messaging with contacts and study plan management.
//
// Services receive their dependencies through constructor injection and
// never depend on specific infrastructure implementations. Expected
// conditions are reported as sentinel errors (ErrContactNotFound,
// ErrStudyPlanNotFound, ErrPlanUnavailable); unexpected ones are wrapped in
// ServiceError.
package service
