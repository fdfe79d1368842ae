// Package gemini implements generation.Client on top of Google's Gemini API
// using the google.golang.org/genai SDK.
//
// A Client translates a generation.Request into a single GenerateContent
// call:
//
//   - the fixed system instruction becomes the first part of the request's
//     system instruction, and the request's data slot is appended as a
//     separate JSON part so caller-supplied values never mix with
//     instruction text
//   - the user content is sent as one user turn
//   - structured requests set the application/json MIME type and the
//     declared response schema
//
// The client makes exactly one attempt per call. Any failure reported by the
// SDK, a safety block, or a response without candidates is returned wrapped
// in generation.ErrTransport. Error details are redacted before logging.
package gemini
