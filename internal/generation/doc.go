// Package generation defines the boundary between the application core and
// the external AI/LLM service used for content generation (Gemini). It holds
// the Client interface, the request shape passed across it, a small schema
// type for structured output, and the sentinel errors every implementation
// maps its failures to.
package generation
