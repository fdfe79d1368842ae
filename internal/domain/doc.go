// Package domain contains the core entities of the study assistant: chat
// turns, study plans and their tasks, personas, contacts and stored
// messages. It is independent of any specific infrastructure or delivery
// mechanism; the adapter layer reads these values and returns new ones but
// never mutates what a caller passes in.
package domain
