package gemini

import (
	"github.com/phrazzld/lumina-api/internal/generation"
	"google.golang.org/genai"
)

// toGenaiSchema converts a declared output shape to the SDK's schema type.
// Property order is preserved so the model emits fields in declaration order.
func toGenaiSchema(s *generation.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:     toGenaiType(s.Type),
		Required: s.Required,
		Enum:     s.Enum,
		Items:    toGenaiSchema(s.Items),
	}
	if len(s.Order) > 0 {
		out.PropertyOrdering = s.Order
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	return out
}

func toGenaiType(t generation.SchemaType) genai.Type {
	switch t {
	case generation.TypeString:
		return genai.TypeString
	case generation.TypeArray:
		return genai.TypeArray
	case generation.TypeObject:
		return genai.TypeObject
	default:
		return genai.TypeUnspecified
	}
}
