package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority(" HIGH ")
	assert.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = ParsePriority("urgent")
	assert.ErrorIs(t, err, ErrUnknownPriority)
}

func TestPriority_RankOrder(t *testing.T) {
	assert.Greater(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Greater(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Zero(t, Priority("").Rank())
}

func TestPriority_NextCycles(t *testing.T) {
	assert.Equal(t, PriorityMedium, PriorityHigh.Next())
	assert.Equal(t, PriorityLow, PriorityMedium.Next())
	assert.Equal(t, PriorityHigh, PriorityLow.Next())
	assert.Equal(t, PriorityLow, Priority("bogus").Next())
}

func TestDispatch_RoutesCommands(t *testing.T) {
	s, _ := newTestStore(t)

	out, err := s.Dispatch(AddCommand{Text: "Buy milk", Priority: PriorityLow})
	assert.NoError(t, err)
	assert.Equal(t, SignalAdded, out.Signal)
	id := out.Task.ID

	out, _ = s.Dispatch(ToggleCommand{ID: id})
	assert.Equal(t, SignalCompleted, out.Signal)

	out, _ = s.Dispatch(EditCommand{ID: id, Text: "Buy oat milk"})
	assert.Equal(t, "Buy oat milk", out.Task.Text)

	out, _ = s.Dispatch(DeleteCommand{ID: id})
	assert.Equal(t, SignalDeleted, out.Signal)
	assert.Zero(t, s.Len())
}
