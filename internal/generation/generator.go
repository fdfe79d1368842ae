package generation

import (
	"context"
)

// Client sends one request to the generation endpoint. This interface is the
// boundary between the adapter core and external AI/LLM services.
type Client interface {
	// Generate returns the raw text of the completion. An empty string with
	// a nil error means the model answered with no text.
	Generate(ctx context.Context, req Request) (string, error)
}

// Request is a fully built prompt.
type Request struct {
	// SystemInstruction is fixed instruction text chosen by operation and
	// language. It never contains caller-supplied values.
	SystemInstruction string

	// UserContent is the turn-by-turn content sent as the user message.
	UserContent string

	// Data holds caller-supplied values that accompany the instruction as a
	// separate JSON part instead of being spliced into it.
	Data map[string]string

	// Shape, when set, asks for JSON output conforming to it.
	Shape *Schema
}

// Structured reports whether the request expects JSON output.
func (r Request) Structured() bool {
	return r.Shape != nil
}

// SchemaType is the JSON type of a schema node.
type SchemaType string

// Schema node types.
const (
	TypeString SchemaType = "string"
	TypeArray  SchemaType = "array"
	TypeObject SchemaType = "object"
)

// Schema declares an expected output shape. Only the subset needed for study
// plans is modelled: strings with optional enums, arrays and objects.
type Schema struct {
	Type       SchemaType
	Properties map[string]*Schema
	// Order lists property names in the order the model should emit them.
	Order    []string
	Required []string
	Items    *Schema
	Enum     []string
}
