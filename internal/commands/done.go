package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/session"
	"ltask/internal/tasklist"
)

func init() {
	Register(&DoneCmd{})
	Register(&RmCmd{})
}

// DoneCmd implements the done command.
// The resolved task only lives for this invocation; use `ltask tui` to
// keep resolved tasks around for undo.
type DoneCmd struct {
	filter string
}

// SetFilter sets the filter query (for testing).
func (c *DoneCmd) SetFilter(q string) {
	c.filter = q
}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return []string{"resolve"} }
func (c *DoneCmd) Synopsis() string   { return "Mark a task resolved" }
func (c *DoneCmd) Usage() string      { return "ltask done [--filter <text>] <n>" }
func (c *DoneCmd) NeedsSession() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	return runOnRow(ctx, cfg, sess, c.filter, args, out, errOut, func(e tasklist.Entry) tasklist.Change {
		return sess.ResolveTask(ctx, e.Index)
	})
}

// RmCmd implements the rm command.
type RmCmd struct {
	filter string
}

// SetFilter sets the filter query (for testing).
func (c *RmCmd) SetFilter(q string) {
	c.filter = q
}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "ltask rm [--filter <text>] <n>" }
func (c *RmCmd) NeedsSession() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	return runOnRow(ctx, cfg, sess, c.filter, args, out, errOut, func(e tasklist.Entry) tasklist.Change {
		return sess.DeleteTask(ctx, e.Index)
	})
}

// runOnRow is the shared implementation for single-row commands: parse the
// row number, map it through the filtered view, apply op.
func runOnRow(ctx context.Context, cfg *config.Config, sess *session.Session, filter string, args []string, out, errOut io.Writer, op func(tasklist.Entry) tasklist.Change) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if len(ref.Rest) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", ref.Rest[0])
		return exitcode.UserError
	}

	entry, err := lookupActive(sess, filter, ref.Num)
	if err != nil {
		if errors.Is(err, ErrOutOfRange) {
			fmt.Fprintf(errOut, "error: task number out of range: %d\n", ref.Num)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if ch := op(entry); !ch.Applied {
		fmt.Fprintf(errOut, "error: task number out of range: %d\n", ref.Num)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
