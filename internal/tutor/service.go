package tutor

import (
	"context"
	"log/slog"

	"github.com/phrazzld/lumina-api/internal/conversation"
	"github.com/phrazzld/lumina-api/internal/decode"
	"github.com/phrazzld/lumina-api/internal/domain"
	"github.com/phrazzld/lumina-api/internal/generation"
	"github.com/phrazzld/lumina-api/internal/prompt"
	"github.com/phrazzld/lumina-api/internal/redact"
)

// Options controls how much history accompanies chat requests.
type Options struct {
	// PersonaWindow is the number of prior turns sent with a persona reply.
	PersonaWindow int
	// TutorWindow bounds tutor history; 0 sends all of it.
	TutorWindow int
}

// DefaultOptions returns the standard windows: five turns for personas and
// the whole history for the tutor.
func DefaultOptions() Options {
	return Options{
		PersonaWindow: conversation.PersonaWindow,
		TutorWindow:   conversation.Unbounded,
	}
}

// Service runs assistant operations against one model client.
type Service struct {
	client generation.Client
	logger *slog.Logger
	opts   Options
}

// New creates a Service. A nil client puts the service in offline mode.
func New(client generation.Client, logger *slog.Logger, opts Options) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client: client,
		logger: logger.With("component", "tutor"),
		opts:   opts,
	}
}

// Online reports whether a model client is configured.
func (s *Service) Online() bool {
	return s.client != nil
}

// Greeting returns the tutor's opening message.
func (s *Service) Greeting(lang domain.Language) string {
	return prompt.Greeting(lang)
}

// TryGenerateStudyPlan asks for a structured study plan.
func (s *Service) TryGenerateStudyPlan(
	ctx context.Context,
	subject string,
	hours float64,
	lang domain.Language,
) Result[*domain.StudyPlan] {
	if !s.Online() {
		return failure[*domain.StudyPlan](generation.ErrUnavailable)
	}

	req, err := prompt.StudyPlan(subject, hours, lang)
	if err != nil {
		return failure[*domain.StudyPlan](err)
	}

	raw, err := s.client.Generate(ctx, req)
	if err != nil {
		return failure[*domain.StudyPlan](err)
	}

	plan, err := decode.StudyPlan(raw)
	if err != nil {
		return failure[*domain.StudyPlan](err)
	}
	return success(plan)
}

// GenerateStudyPlan returns a study plan, or nil when none could be produced.
func (s *Service) GenerateStudyPlan(
	ctx context.Context,
	subject string,
	hours float64,
	lang domain.Language,
) *domain.StudyPlan {
	res := s.TryGenerateStudyPlan(ctx, subject, hours, lang)
	if !res.OK() {
		s.logFailure(ctx, "study_plan", res.Kind, res.Err)
		return nil
	}
	s.logger.InfoContext(ctx, "study plan generated",
		"language", string(lang),
		"task_count", len(res.Value.Tasks))
	return res.Value
}

// TrySendChatMessage asks the tutor to answer message given history. An
// empty answer is not an error; it is replaced by the empty-reply sentinel.
func (s *Service) TrySendChatMessage(
	ctx context.Context,
	history []domain.ChatTurn,
	message string,
	lang domain.Language,
) Result[string] {
	if !s.Online() {
		return failure[string](generation.ErrUnavailable)
	}

	req, err := prompt.TutorChat(conversation.Window(history, s.opts.TutorWindow), message, lang)
	if err != nil {
		return failure[string](err)
	}

	raw, err := s.client.Generate(ctx, req)
	if err != nil {
		return failure[string](err)
	}
	return success(decode.Text(raw, sentinelsFor(lang).chatEmpty))
}

// SendChatMessage returns the tutor's reply or a sentinel message.
func (s *Service) SendChatMessage(
	ctx context.Context,
	history []domain.ChatTurn,
	message string,
	lang domain.Language,
) string {
	res := s.TrySendChatMessage(ctx, history, message, lang)
	if res.OK() {
		return res.Value
	}

	s.logFailure(ctx, "tutor_chat", res.Kind, res.Err)
	if res.Kind == KindUnavailable {
		return sentinelsFor(lang).chatOffline
	}
	return sentinelsFor(lang).chatFailure
}

// TryGeneratePersonaResponse asks the model to answer lastMessage as persona.
// Only the last PersonaWindow turns of recent are sent.
func (s *Service) TryGeneratePersonaResponse(
	ctx context.Context,
	persona domain.PersonaProfile,
	recent []domain.ChatTurn,
	lastMessage string,
	lang domain.Language,
) Result[string] {
	if !s.Online() {
		return failure[string](generation.ErrUnavailable)
	}

	req, err := prompt.PersonaChat(persona, conversation.Window(recent, s.opts.PersonaWindow), lastMessage, lang)
	if err != nil {
		return failure[string](err)
	}

	raw, err := s.client.Generate(ctx, req)
	if err != nil {
		return failure[string](err)
	}
	return success(decode.Text(raw, sentinelsFor(lang).personaEmpty))
}

// GeneratePersonaResponse returns the persona's reply or a sentinel message.
func (s *Service) GeneratePersonaResponse(
	ctx context.Context,
	persona domain.PersonaProfile,
	recent []domain.ChatTurn,
	lastMessage string,
	lang domain.Language,
) string {
	res := s.TryGeneratePersonaResponse(ctx, persona, recent, lastMessage, lang)
	if res.OK() {
		return res.Value
	}

	s.logFailure(ctx, "persona_chat", res.Kind, res.Err)
	if res.Kind == KindUnavailable {
		return sentinelsFor(lang).personaOffline
	}
	return sentinelsFor(lang).personaEmpty
}

func (s *Service) logFailure(ctx context.Context, operation string, kind ErrorKind, err error) {
	if kind == KindUnavailable {
		s.logger.DebugContext(ctx, "assistant offline", "operation", operation)
		return
	}
	s.logger.WarnContext(ctx, "assistant operation failed",
		"operation", operation,
		"error_kind", kind.String(),
		"error", redact.Error(err))
}
