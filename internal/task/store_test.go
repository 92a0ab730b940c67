package task

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	tasks   []Task
	loadErr error
	saveErr error
	saves   int
}

func (r *memRepo) Load() ([]Task, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return append([]Task(nil), r.tasks...), nil
}

func (r *memRepo) Save(tasks []Task) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.tasks = append([]Task(nil), tasks...)
	return nil
}

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T, seed ...Task) (*Store, *memRepo) {
	t.Helper()
	repo := &memRepo{tasks: seed}
	return Open(repo, WithClock(func() time.Time { return fixedNow })), repo
}

func texts(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Text)
	}
	return out
}

func TestStore_AddBlankIsRejected(t *testing.T) {
	s, repo := newTestStore(t)

	for _, text := range []string{"", "   ", "\t\n"} {
		out, err := s.Add(text, PriorityHigh)
		assert.ErrorIs(t, err, ErrEmptyText)
		assert.False(t, out.Changed)
	}
	assert.Zero(t, s.Len())
	assert.Zero(t, repo.saves)
}

func TestStore_AddUnknownPriority(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Add("walk dog", Priority("urgent"))
	assert.ErrorIs(t, err, ErrUnknownPriority)
	assert.Zero(t, s.Len())
}

func TestStore_AddAppendsAndPersists(t *testing.T) {
	s, repo := newTestStore(t)

	out, err := s.Add("  Buy milk  ", PriorityLow)
	require.NoError(t, err)
	assert.Equal(t, SignalAdded, out.Signal)
	assert.True(t, out.Changed)
	assert.Equal(t, "Buy milk", out.Task.Text)
	assert.False(t, out.Task.Completed)
	assert.Equal(t, PriorityLow, out.Task.Priority)
	assert.Equal(t, fixedNow, out.Task.CreatedAt)
	assert.Equal(t, fixedNow.UnixMilli(), out.Task.ID)

	assert.Equal(t, 1, repo.saves)
	assert.Equal(t, s.Tasks(), repo.tasks)
}

func TestStore_IDsUniqueWithinOneClockTick(t *testing.T) {
	s, _ := newTestStore(t)

	seen := map[int64]bool{}
	for range 50 {
		out, err := s.Add("x", PriorityMedium)
		require.NoError(t, err)
		assert.False(t, seen[out.Task.ID])
		seen[out.Task.ID] = true
	}
}

func TestStore_IDsContinueAfterLoadedMax(t *testing.T) {
	future := fixedNow.Add(time.Hour).UnixMilli()
	s, _ := newTestStore(t, Task{ID: future, Text: "later", Priority: PriorityLow})

	out, err := s.Add("next", PriorityLow)
	require.NoError(t, err)
	assert.Equal(t, future+1, out.Task.ID)
}

func TestStore_ToggleRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	added, err := s.Add("File taxes", PriorityHigh)
	require.NoError(t, err)

	out, err := s.Toggle(added.Task.ID)
	require.NoError(t, err)
	assert.True(t, out.Task.Completed)
	assert.Equal(t, SignalCompleted, out.Signal)

	out, err = s.Toggle(added.Task.ID)
	require.NoError(t, err)
	assert.False(t, out.Task.Completed)
	assert.Equal(t, SignalNone, out.Signal)
	assert.True(t, out.Changed)
}

func TestStore_LookupMissIsNoop(t *testing.T) {
	s, repo := newTestStore(t, Task{ID: 1, Text: "a", Priority: PriorityLow})
	before := s.Tasks()

	for _, cmd := range []Command{
		ToggleCommand{ID: 99},
		DeleteCommand{ID: 99},
		EditCommand{ID: 99, Text: "b"},
		EditCommand{ID: 99, Text: ""},
		ReorderCommand{MovedID: 99, TargetID: 1},
		ReorderCommand{MovedID: 1, TargetID: 99},
	} {
		out, err := s.Dispatch(cmd)
		assert.NoError(t, err)
		assert.False(t, out.Changed, "%T", cmd)
	}
	assert.Equal(t, before, s.Tasks())
	assert.Zero(t, repo.saves)
}

func TestStore_DeleteAnyPosition(t *testing.T) {
	s, _ := newTestStore(t,
		Task{ID: 1, Text: "a", Priority: PriorityLow},
		Task{ID: 2, Text: "b", Priority: PriorityLow},
		Task{ID: 3, Text: "c", Priority: PriorityLow},
	)

	out, err := s.Delete(2)
	require.NoError(t, err)
	assert.Equal(t, SignalDeleted, out.Signal)
	assert.Equal(t, "b", out.Task.Text)
	assert.Equal(t, []string{"a", "c"}, texts(s.Tasks()))
}

func TestStore_EditKeepsIdentityAndPosition(t *testing.T) {
	s, _ := newTestStore(t,
		Task{ID: 1, Text: "a", Priority: PriorityLow},
		Task{ID: 2, Text: "b", Completed: true, Priority: PriorityHigh},
		Task{ID: 3, Text: "c", Priority: PriorityLow},
	)

	out, err := s.Edit(2, "  renamed ")
	require.NoError(t, err)
	assert.Equal(t, SignalNone, out.Signal)

	got, ok := s.Get(2)
	require.True(t, ok)
	assert.Equal(t, Task{ID: 2, Text: "renamed", Completed: true, Priority: PriorityHigh}, got)
	assert.Equal(t, []string{"a", "renamed", "c"}, texts(s.Tasks()))
}

func TestStore_EditEmptyEqualsDelete(t *testing.T) {
	seed := []Task{
		{ID: 1, Text: "a", Priority: PriorityLow},
		{ID: 2, Text: "b", Priority: PriorityMedium},
		{ID: 3, Text: "c", Priority: PriorityHigh},
	}
	for _, victim := range seed {
		edited, _ := newTestStore(t, seed...)
		deleted, _ := newTestStore(t, seed...)

		editOut, err := edited.Edit(victim.ID, "   ")
		require.NoError(t, err)
		deleteOut, err := deleted.Delete(victim.ID)
		require.NoError(t, err)

		assert.Equal(t, deleteOut, editOut)
		assert.Equal(t, deleted.Tasks(), edited.Tasks())
	}
}

func TestStore_Reorder(t *testing.T) {
	seed := []Task{
		{ID: 1, Text: "a", Priority: PriorityLow},
		{ID: 2, Text: "b", Priority: PriorityLow},
		{ID: 3, Text: "c", Priority: PriorityLow},
		{ID: 4, Text: "d", Priority: PriorityLow},
	}

	tests := []struct {
		name          string
		moved, target int64
		want          []string
	}{
		{"down lands after target", 1, 3, []string{"b", "c", "a", "d"}},
		{"up lands before target", 4, 2, []string{"a", "d", "b", "c"}},
		{"adjacent down", 2, 3, []string{"a", "c", "b", "d"}},
		{"to last", 1, 4, []string{"b", "c", "d", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo := newTestStore(t, seed...)
			out, err := s.Reorder(tt.moved, tt.target)
			require.NoError(t, err)
			assert.True(t, out.Changed)
			assert.Equal(t, tt.want, texts(s.Tasks()))
			assert.Equal(t, tt.want, texts(repo.tasks))
		})
	}
}

func TestStore_ReorderSameIDIsNoop(t *testing.T) {
	s, repo := newTestStore(t, Task{ID: 1, Text: "a", Priority: PriorityLow})

	out, err := s.Reorder(1, 1)
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.Zero(t, repo.saves)
}

func TestStore_ReorderAdjacentCancelsOut(t *testing.T) {
	s, _ := newTestStore(t,
		Task{ID: 1, Text: "a", Priority: PriorityLow},
		Task{ID: 2, Text: "b", Priority: PriorityLow},
		Task{ID: 3, Text: "c", Priority: PriorityLow},
	)
	before := s.Tasks()

	_, err := s.Reorder(1, 2)
	require.NoError(t, err)
	_, err = s.Reorder(2, 1)
	require.NoError(t, err)
	assert.Equal(t, before, s.Tasks())
}

func TestStore_ReorderNotInvertibleAcrossThirdTask(t *testing.T) {
	s, _ := newTestStore(t,
		Task{ID: 1, Text: "a", Priority: PriorityLow},
		Task{ID: 2, Text: "b", Priority: PriorityLow},
		Task{ID: 3, Text: "c", Priority: PriorityLow},
	)

	_, err := s.Reorder(1, 3)
	require.NoError(t, err)
	_, err = s.Reorder(3, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, texts(s.Tasks()))
}

func TestStore_OpenRecoversFromLoadError(t *testing.T) {
	repo := &memRepo{loadErr: errors.New("garbage")}
	s := Open(repo)

	assert.Zero(t, s.Len())
	_, err := s.Add("fresh start", PriorityLow)
	require.NoError(t, err)
	assert.Len(t, repo.tasks, 1)
}

func TestStore_OpenNormalizesStoredTasks(t *testing.T) {
	s, _ := newTestStore(t,
		Task{ID: 1, Text: " a ", Priority: PriorityHigh},
		Task{ID: 1, Text: "dup", Priority: PriorityHigh},
		Task{ID: 2, Text: "   ", Priority: PriorityHigh},
		Task{ID: 3, Text: "c", Priority: Priority("???")},
	)

	got := s.Tasks()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, PriorityLow, got[1].Priority)
}

func TestStore_PersistFailureKeepsMutation(t *testing.T) {
	s, repo := newTestStore(t)
	repo.saveErr = errors.New("disk full")

	out, err := s.Add("still here", PriorityMedium)
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.saveErr)
	assert.True(t, out.Changed)
	assert.Equal(t, 1, s.Len())
}

func TestStore_TasksReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t, Task{ID: 1, Text: "a", Priority: PriorityLow})

	got := s.Tasks()
	got[0].Text = "mutated"

	orig, _ := s.Get(1)
	assert.Equal(t, "a", orig.Text)
}
