package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/lumina-api/internal/domain"
	"github.com/phrazzld/lumina-api/internal/generation"
)

// ErrInvalidInput is returned when a builder precondition is violated.
// Callers are expected to check inputs before building.
var ErrInvalidInput = errors.New("invalid prompt input")

// Data slot keys used by PersonaChat.
const (
	DataPersonaName = "name"
	DataPersonaRole = "role"
)

var validate = validator.New()

type studyPlanParams struct {
	Subject string  `validate:"required"`
	Hours   float64 `validate:"gt=0,lte=24"`
}

var studyPlanTemplates = map[domain.Language]*template.Template{
	domain.LanguageEnglish: template.Must(template.New("plan_en").
		Parse(`Create a structured {{.Hours}}-hour study plan for {{.Subject}}.`)),
	domain.LanguageArabic: template.Must(template.New("plan_ar").
		Parse(`قم بإنشاء خطة دراسية منظمة لمدة {{.Hours}} ساعة لموضوع: {{.Subject}}.`)),
}

var tutorTemplate = template.Must(template.New("tutor").Funcs(template.FuncMap{
	"speaker": func(r domain.Role) string {
		if r == domain.RoleUser {
			return "Student"
		}
		return "Tutor"
	},
}).Parse("Previous conversation:\n" +
	"{{range .History}}{{speaker .Role}}: {{.Text}}\n{{end}}" +
	"\nStudent: {{.Message}}"))

var personaTemplate = template.Must(template.New("persona").Funcs(template.FuncMap{
	"speaker": func(r domain.Role, name string) string {
		if r == domain.RoleUser {
			return "User"
		}
		return name
	},
}).Parse("Conversation History:\n" +
	"{{range .History}}{{speaker .Role $.Name}}: {{.Text}}\n{{end}}" +
	"\nUser: {{.Message}}\n\n{{.Name}}:"))

// FormatHours renders a duration in hours in its shortest exact form,
// e.g. 3 or 1.5.
func FormatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}

// StudyPlan builds a structured request for a study plan covering subject in
// the given number of hours.
func StudyPlan(subject string, hours float64, lang domain.Language) (generation.Request, error) {
	params := studyPlanParams{Subject: strings.TrimSpace(subject), Hours: hours}
	if err := validate.Struct(params); err != nil {
		return generation.Request{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	tmpl, ok := studyPlanTemplates[lang]
	if !ok {
		tmpl = studyPlanTemplates[domain.DefaultLanguage]
	}
	content, err := render(tmpl, struct {
		Subject string
		Hours   string
	}{Subject: params.Subject, Hours: FormatHours(hours)})
	if err != nil {
		return generation.Request{}, err
	}

	return generation.Request{
		SystemInstruction: SystemInstruction(lang),
		UserContent:       content,
		Shape:             StudyPlanShape(),
	}, nil
}

// TutorChat builds a free-text request containing the whole of history
// followed by the new message. Windowing is the caller's concern.
func TutorChat(history []domain.ChatTurn, message string, lang domain.Language) (generation.Request, error) {
	if strings.TrimSpace(message) == "" {
		return generation.Request{}, fmt.Errorf("%w: message cannot be empty", ErrInvalidInput)
	}

	content, err := render(tutorTemplate, struct {
		History []domain.ChatTurn
		Message string
	}{History: history, Message: message})
	if err != nil {
		return generation.Request{}, err
	}

	return generation.Request{
		SystemInstruction: SystemInstruction(lang),
		UserContent:       content,
	}, nil
}

// PersonaChat builds a free-text request asking the model to answer as
// persona. The persona is carried in the data slot; the instruction text
// itself is fixed.
func PersonaChat(
	persona domain.PersonaProfile,
	recent []domain.ChatTurn,
	lastMessage string,
	lang domain.Language,
) (generation.Request, error) {
	if strings.TrimSpace(lastMessage) == "" {
		return generation.Request{}, fmt.Errorf("%w: message cannot be empty", ErrInvalidInput)
	}

	content, err := render(personaTemplate, struct {
		Name    string
		History []domain.ChatTurn
		Message string
	}{Name: persona.DisplayName, History: recent, Message: lastMessage})
	if err != nil {
		return generation.Request{}, err
	}

	return generation.Request{
		SystemInstruction: textFor(lang).personaInstruction,
		UserContent:       content,
		Data: map[string]string{
			DataPersonaName: persona.DisplayName,
			DataPersonaRole: persona.RoleDescription,
		},
	}, nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
