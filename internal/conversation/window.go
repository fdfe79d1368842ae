// Package conversation selects the slice of prior turns that accompanies the
// next request to the language model.
package conversation

import "github.com/phrazzld/lumina-api/internal/domain"

// PersonaWindow is the number of prior turns sent with a persona reply.
const PersonaWindow = 5

// Unbounded passed as a window size keeps the whole history.
const Unbounded = 0

// Window returns the last n turns of history in chronological order. A
// non-positive n returns the whole history. The result is a copy; history is
// never modified.
func Window(history []domain.ChatTurn, n int) []domain.ChatTurn {
	start := 0
	if n > 0 && len(history) > n {
		start = len(history) - n
	}
	out := make([]domain.ChatTurn, len(history)-start)
	copy(out, history[start:])
	return out
}

// TurnsFromMessages converts stored messages, oldest first, to chat turns.
func TurnsFromMessages(messages []*domain.Message) []domain.ChatTurn {
	turns := make([]domain.ChatTurn, 0, len(messages))
	for _, m := range messages {
		turns = append(turns, m.Turn())
	}
	return turns
}
