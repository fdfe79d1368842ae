package api

import (
	"time"

	"github.com/phrazzld/lumina-api/internal/domain"
	"github.com/phrazzld/lumina-api/internal/service"
)

// StudyPlanRequest is the body of POST /api/study-plans.
type StudyPlanRequest struct {
	Subject  string  `json:"subject"  validate:"required,notblank,max=200"`
	Hours    float64 `json:"hours"    validate:"gt=0,lte=24"`
	Language string  `json:"language" validate:"omitempty,max=16"`
	Save     bool    `json:"save"`
}

// UpdateTaskStatusRequest is the body of PATCH /api/study-plans/{id}/tasks/{taskID}.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof='To Do' 'In Progress' 'Done'"`
}

// ChatTurnRequest is one prior turn of a tutor conversation.
type ChatTurnRequest struct {
	Role string `json:"role" validate:"required,oneof=user assistant model"`
	Text string `json:"text" validate:"required,notblank"`
}

// TutorMessageRequest is the body of POST /api/tutor/messages. The client
// holds the conversation and sends it with every message.
type TutorMessageRequest struct {
	History  []ChatTurnRequest `json:"history"  validate:"max=200,dive"`
	Message  string            `json:"message"  validate:"required,notblank,max=4000"`
	Language string            `json:"language" validate:"omitempty,max=16"`
}

// ContactMessageRequest is the body of POST /api/contacts/{id}/messages.
type ContactMessageRequest struct {
	Text     string `json:"text"     validate:"required,notblank,max=4000"`
	Language string `json:"language" validate:"omitempty,max=16"`
}

// StudyPlanResponse is a generated plan, with ID set when it was saved.
type StudyPlanResponse struct {
	ID        string             `json:"id,omitempty"`
	Subject   string             `json:"subject,omitempty"`
	Hours     float64            `json:"hours,omitempty"`
	Language  string             `json:"language,omitempty"`
	Title     string             `json:"title"`
	Overview  string             `json:"overview"`
	Tasks     []domain.StudyTask `json:"tasks"`
	CreatedAt *time.Time         `json:"created_at,omitempty"`
	UpdatedAt *time.Time         `json:"updated_at,omitempty"`
}

// ReplyResponse carries a tutor reply. Online is false when the assistant
// has no credential and the reply is the offline notice.
type ReplyResponse struct {
	Reply  string `json:"reply"`
	Online bool   `json:"online"`
}

// ContactResponse represents a contact.
type ContactResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url"`
	Online    bool   `json:"online"`
}

// MessageResponse represents a stored message.
type MessageResponse struct {
	ID        string    `json:"id"`
	ContactID string    `json:"contact_id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ExchangeResponse is the learner's message and the contact's reply.
type ExchangeResponse struct {
	Sent  MessageResponse `json:"sent"`
	Reply MessageResponse `json:"reply"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Assistant string `json:"assistant"`
}

func planToResponse(plan *domain.StudyPlan) StudyPlanResponse {
	tasks := plan.Tasks
	if tasks == nil {
		tasks = []domain.StudyTask{}
	}
	return StudyPlanResponse{
		Title:    plan.Title,
		Overview: plan.Overview,
		Tasks:    tasks,
	}
}

func savedPlanToResponse(saved *domain.SavedStudyPlan) StudyPlanResponse {
	resp := planToResponse(&saved.Plan)
	resp.ID = saved.ID.String()
	resp.Subject = saved.Subject
	resp.Hours = saved.Hours
	resp.Language = string(saved.Language)
	createdAt, updatedAt := saved.CreatedAt, saved.UpdatedAt
	resp.CreatedAt = &createdAt
	resp.UpdatedAt = &updatedAt
	return resp
}

func generatedPlanToResponse(out *service.GeneratedPlan) StudyPlanResponse {
	if out.Saved != nil {
		return savedPlanToResponse(out.Saved)
	}
	return planToResponse(out.Plan)
}

func contactToResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Role:      c.Role,
		AvatarURL: c.AvatarURL,
		Online:    c.Online,
	}
}

func messageToResponse(m *domain.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID.String(),
		ContactID: m.ContactID.String(),
		Sender:    string(m.Sender),
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}

// toChatTurns converts request turns. Roles were validated already, so
// ParseRole cannot fail here except for unexpected input.
func toChatTurns(reqs []ChatTurnRequest) ([]domain.ChatTurn, error) {
	turns := make([]domain.ChatTurn, 0, len(reqs))
	for _, tr := range reqs {
		role, err := domain.ParseRole(tr.Role)
		if err != nil {
			return nil, err
		}
		turns = append(turns, domain.ChatTurn{Role: role, Text: tr.Text})
	}
	return turns, nil
}
