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
	Register(&ListsCmd{})
}

// ListsCmd implements the lists command.
// Only lists with at least one active task have a stored entry.
type ListsCmd struct{}

func (c *ListsCmd) Name() string       { return "lists" }
func (c *ListsCmd) Aliases() []string  { return nil }
func (c *ListsCmd) Synopsis() string   { return "Print stored list identifiers" }
func (c *ListsCmd) Usage() string      { return "ltask lists" }
func (c *ListsCmd) NeedsSession() bool { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	ids, err := sess.Lists(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}

	if len(ids) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no lists found")
		}
		return exitcode.Success
	}

	for _, id := range ids {
		output.FormatListName(out, id, id == sess.ListID())
	}
	return exitcode.Success
}
