// Package tutor is the boundary of the assistant: it composes prompt
// building, the model client, response decoding and history windowing into
// the three operations the rest of the application calls.
//
// Each operation comes in two forms. The Try* methods return a Result that
// records which kind of failure occurred, if any. The plain methods wrap
// them and never fail: every failure is replaced by a fixed per-language
// sentinel (nil for study plans), so callers always have something to
// render.
//
// A Service constructed with a nil client is offline. Offline operations
// return their unavailable sentinel without building a prompt or contacting
// the endpoint.
package tutor
