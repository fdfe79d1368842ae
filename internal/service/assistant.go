package service

import (
	"context"

	"github.com/phrazzld/lumina-api/internal/domain"
	"github.com/phrazzld/lumina-api/internal/tutor"
)

// Assistant is the subset of the tutor the application services call. Every
// method is total: failures come back as sentinel values, never errors.
type Assistant interface {
	GenerateStudyPlan(ctx context.Context, subject string, hours float64, lang domain.Language) *domain.StudyPlan
	SendChatMessage(ctx context.Context, history []domain.ChatTurn, message string, lang domain.Language) string
	GeneratePersonaResponse(
		ctx context.Context,
		persona domain.PersonaProfile,
		recent []domain.ChatTurn,
		lastMessage string,
		lang domain.Language,
	) string
	Greeting(lang domain.Language) string
}

var _ Assistant = (*tutor.Service)(nil)
