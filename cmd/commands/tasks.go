package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"cosmic/internal/task"
	"cosmic/internal/view"
)

// NewAddCommand returns the add subcommand.
func NewAddCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a task",
		ArgsUsage: "<text...>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "priority",
				Aliases: []string{"p"},
				Usage:   "high, medium or low (defaults to default_priority)",
			},
		},
		Action: runAdd,
	}
}

// NewListCommand returns the list subcommand.
func NewListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List tasks in display order",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "all, active, completed or high (defaults to default_filter)",
			},
		},
		Action: runList,
	}
}

// NewToggleCommand returns the toggle subcommand.
func NewToggleCommand() *cli.Command {
	return &cli.Command{
		Name:      "toggle",
		Usage:     "Flip a task between pending and done",
		ArgsUsage: "<task_id>",
		Action:    runToggle,
	}
}

// NewEditCommand returns the edit subcommand.
func NewEditCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Replace a task's text; empty text deletes it",
		ArgsUsage: "<task_id> <text...>",
		Action:    runEdit,
	}
}

// NewRemoveCommand returns the rm subcommand.
func NewRemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Delete a task",
		ArgsUsage: "<task_id>",
		Action:    runRemove,
	}
}

// NewMoveCommand returns the mv subcommand.
func NewMoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "mv",
		Usage:     "Move a task to the position of another",
		ArgsUsage: "<task_id> <target_id>",
		Action:    runMove,
	}
}

// NewStatsCommand returns the stats subcommand.
func NewStatsCommand() *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Print task counters",
		Action: runStats,
	}
}

func runAdd(_ context.Context, cmd *cli.Command) error {
	text := strings.Join(cmd.Args().Slice(), " ")

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	priority := s.cfg.Priority()
	if v := cmd.String("priority"); v != "" {
		if priority, err = task.ParsePriority(v); err != nil {
			return err
		}
	}

	out, err := s.store.Dispatch(task.AddCommand{Text: text, Priority: priority})
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}
	fmt.Fprintf(cmd.Root().Writer, "Added #%d %s (%s)\n", out.Task.ID, out.Task.Text, out.Task.Priority)
	return nil
}

func runList(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	filter := s.cfg.Filter()
	if v := cmd.String("filter"); v != "" {
		if filter, err = view.ParseFilter(v); err != nil {
			return err
		}
	}

	rows := view.Compute(s.store.Tasks(), filter)
	out := cmd.Root().Writer
	if len(rows) == 0 {
		fmt.Fprintln(out, "No tasks found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tPRIORITY\tTEXT")
	for _, t := range rows {
		done := " "
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(w, "%d\t[%s]\t%s\t%s\n", t.ID, done, t.Priority, t.Text)
	}
	return w.Flush()
}

func runToggle(_ context.Context, cmd *cli.Command) error {
	id, err := taskID(cmd, 0)
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	out, err := s.store.Dispatch(task.ToggleCommand{ID: id})
	if err != nil {
		return fmt.Errorf("toggle task: %w", err)
	}
	if !out.Changed {
		return fmt.Errorf("task %d not found", id)
	}
	if out.Signal == task.SignalCompleted {
		fmt.Fprintf(cmd.Root().Writer, "Task completed! Great job! #%d %s\n", id, out.Task.Text)
		return nil
	}
	fmt.Fprintf(cmd.Root().Writer, "Reopened #%d %s\n", id, out.Task.Text)
	return nil
}

func runEdit(_ context.Context, cmd *cli.Command) error {
	id, err := taskID(cmd, 0)
	if err != nil {
		return err
	}
	text := strings.Join(cmd.Args().Tail(), " ")

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	out, err := s.store.Dispatch(task.EditCommand{ID: id, Text: text})
	if err != nil {
		return fmt.Errorf("edit task: %w", err)
	}
	if !out.Changed {
		return fmt.Errorf("task %d not found", id)
	}
	if out.Signal == task.SignalDeleted {
		fmt.Fprintf(cmd.Root().Writer, "Deleted #%d\n", id)
		return nil
	}
	fmt.Fprintf(cmd.Root().Writer, "Updated #%d %s\n", id, out.Task.Text)
	return nil
}

func runRemove(_ context.Context, cmd *cli.Command) error {
	id, err := taskID(cmd, 0)
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	out, err := s.store.Dispatch(task.DeleteCommand{ID: id})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !out.Changed {
		return fmt.Errorf("task %d not found", id)
	}
	fmt.Fprintf(cmd.Root().Writer, "Deleted #%d\n", id)
	return nil
}

func runMove(_ context.Context, cmd *cli.Command) error {
	moved, err := taskID(cmd, 0)
	if err != nil {
		return err
	}
	target, err := taskID(cmd, 1)
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	out, err := s.store.Dispatch(task.ReorderCommand{MovedID: moved, TargetID: target})
	if err != nil {
		return fmt.Errorf("move task: %w", err)
	}
	if !out.Changed {
		fmt.Fprintln(cmd.Root().Writer, "Nothing moved")
		return nil
	}
	fmt.Fprintf(cmd.Root().Writer, "Moved #%d\n", moved)
	return nil
}

func runStats(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	st := view.ComputeStats(s.store.Tasks())
	out := cmd.Root().Writer
	fmt.Fprintf(out, "Total %d • Completed %d • Pending %d\n", st.Total, st.Completed, st.Pending)
	if ts, err := s.repo.UpdatedAt(); err == nil {
		fmt.Fprintf(out, "Last saved %s\n", ts.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}

func taskID(cmd *cli.Command, n int) (int64, error) {
	arg := cmd.Args().Get(n)
	if arg == "" {
		return 0, fmt.Errorf("usage: cosmic %s %s", cmd.Name, cmd.ArgsUsage)
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}
