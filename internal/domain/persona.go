package domain

// PersonaProfile is the role the automated counterpart plays for a contact.
// Both fields are caller-supplied and are never inspected for content.
type PersonaProfile struct {
	DisplayName     string `json:"name"`
	RoleDescription string `json:"role"`
}
