package task

// Command is a typed store mutation. The TUI and the CLI both translate user
// gestures into commands and hand them to Store.Dispatch.
type Command interface {
	apply(s *Store) (Outcome, error)
}

type AddCommand struct {
	Text     string
	Priority Priority
}

type ToggleCommand struct {
	ID int64
}

type EditCommand struct {
	ID   int64
	Text string
}

type DeleteCommand struct {
	ID int64
}

type ReorderCommand struct {
	MovedID  int64
	TargetID int64
}

func (c AddCommand) apply(s *Store) (Outcome, error)     { return s.Add(c.Text, c.Priority) }
func (c ToggleCommand) apply(s *Store) (Outcome, error)  { return s.Toggle(c.ID) }
func (c EditCommand) apply(s *Store) (Outcome, error)    { return s.Edit(c.ID, c.Text) }
func (c DeleteCommand) apply(s *Store) (Outcome, error)  { return s.Delete(c.ID) }
func (c ReorderCommand) apply(s *Store) (Outcome, error) { return s.Reorder(c.MovedID, c.TargetID) }

func (s *Store) Dispatch(cmd Command) (Outcome, error) {
	return cmd.apply(s)
}
