package conversation

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lumina-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTurns(n int) []domain.ChatTurn {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	turns := make([]domain.ChatTurn, n)
	for i := range turns {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		turns[i] = domain.ChatTurn{
			Role:      role,
			Text:      fmt.Sprintf("turn %d", i+1),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}
	return turns
}

func TestWindowKeepsLastFiveOfSeven(t *testing.T) {
	t.Parallel()

	history := makeTurns(7)
	got := Window(history, PersonaWindow)

	require.Len(t, got, 5)
	for i, turn := range got {
		assert.Equal(t, history[i+2], turn)
	}
}

func TestWindowSizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		history int
		n       int
		want    int
	}{
		{name: "empty history", history: 0, n: 5, want: 0},
		{name: "shorter than window", history: 3, n: 5, want: 3},
		{name: "exactly window", history: 5, n: 5, want: 5},
		{name: "unbounded", history: 12, n: Unbounded, want: 12},
		{name: "negative is unbounded", history: 4, n: -1, want: 4},
		{name: "window of one", history: 4, n: 1, want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			history := makeTurns(tc.history)
			got := Window(history, tc.n)
			require.Len(t, got, tc.want)
			if tc.want > 0 {
				assert.Equal(t, history[len(history)-1], got[len(got)-1])
			}
		})
	}
}

func TestWindowDoesNotAliasHistory(t *testing.T) {
	t.Parallel()

	history := makeTurns(6)
	got := Window(history, 3)
	got[0].Text = "changed"

	assert.Equal(t, "turn 4", history[3].Text)
}

func TestTurnsFromMessages(t *testing.T) {
	t.Parallel()

	userID, contactID := uuid.New(), uuid.New()
	first, err := domain.NewMessage(userID, contactID, domain.SenderOther, "Please review chapter 4.")
	require.NoError(t, err)
	second, err := domain.NewMessage(userID, contactID, domain.SenderMe, "Will do!")
	require.NoError(t, err)

	turns := TurnsFromMessages([]*domain.Message{first, second})

	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleAssistant, turns[0].Role)
	assert.Equal(t, "Please review chapter 4.", turns[0].Text)
	assert.Equal(t, domain.RoleUser, turns[1].Role)
}
