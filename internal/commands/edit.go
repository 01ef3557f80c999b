package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/session"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct {
	filter string
}

// SetFilter sets the filter query (for testing).
func (c *EditCmd) SetFilter(q string) {
	c.filter = q
}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return nil }
func (c *EditCmd) Synopsis() string   { return "Replace a task's text" }
func (c *EditCmd) Usage() string      { return "ltask edit [--filter <text>] <n> <text...>" }
func (c *EditCmd) NeedsSession() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	entry, err := lookupActive(sess, c.filter, ref.Num)
	if err != nil {
		if errors.Is(err, ErrOutOfRange) {
			fmt.Fprintf(errOut, "error: task number out of range: %d\n", ref.Num)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	sess.StartEditing(entry.Index)
	sess.UpdateEditDraft(strings.Join(ref.Rest, " "))
	if ch := sess.SaveEdit(ctx); !ch.Applied {
		sess.CancelEdit()
		fmt.Fprintln(errOut, "error: text required")
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
