package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/output"
	"ltask/internal/session"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `ltask` (no args) and `ltask list [--all] [--filter <q>]`.
type ListCmd struct {
	filter string
	all    bool
}

// SetFilter sets the filter query (for testing).
func (c *ListCmd) SetFilter(q string) {
	c.filter = q
}

// SetAll selects every stored list (for testing).
func (c *ListCmd) SetAll(all bool) {
	c.all = all
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List active tasks" }
func (c *ListCmd) Usage() string      { return "ltask list [--all] [--filter <text>]" }
func (c *ListCmd) NeedsSession() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
	fs.BoolVar(&c.all, "all", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	if c.all {
		return c.runAll(ctx, cfg, sess, out, errOut)
	}

	sess.SetFilter(c.filter)
	view := sess.FilteredActive()

	if len(view) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	output.FormatEntries(out, view)
	return exitcode.Success
}

// runAll prints the filtered view of every stored list under a header.
// Lists with no matching rows are skipped.
func (c *ListCmd) runAll(ctx context.Context, cfg *config.Config, sess *session.Session, out, errOut io.Writer) int {
	ids, err := sess.Lists(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}

	current := sess.ListID()
	defer func() {
		if err := sess.SwitchList(ctx, current); err != nil {
			fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		}
	}()

	printed := false
	for _, id := range ids {
		if err := sess.SwitchList(ctx, id); err != nil {
			fmt.Fprintf(errOut, "error: storage error: %v\n", err)
			return exitcode.StorageError
		}
		sess.SetFilter(c.filter)
		view := sess.FilteredActive()
		if len(view) == 0 {
			continue
		}
		output.FormatSectionHeader(out, id)
		output.FormatEntries(out, view)
		printed = true
	}

	if !printed && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}
