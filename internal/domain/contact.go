package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Contact is a conversation partner the learner can message. Role is the
// persona description handed to the generation endpoint.
type Contact struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatar_url"`
	Online    bool      `json:"online"`
}

// Persona returns the profile the counterpart roleplays.
func (c *Contact) Persona() PersonaProfile {
	return PersonaProfile{
		DisplayName:     c.Name,
		RoleDescription: c.Role,
	}
}

// Validate checks the fields required to build a persona.
func (c *Contact) Validate() error {
	if c.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("name", "cannot be empty", ErrEmptyContent)
	}
	if strings.TrimSpace(c.Role) == "" {
		return NewValidationError("role", "cannot be empty", ErrEmptyContent)
	}
	return nil
}
