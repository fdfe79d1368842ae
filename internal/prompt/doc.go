// Package prompt builds generation requests for the three assistant flows:
// structured study plans, tutor chat and persona chat. Every builder is a
// pure function of its arguments. Instruction text is fixed per language;
// caller-supplied values only ever appear in the user content or in the
// request's data slot.
package prompt
