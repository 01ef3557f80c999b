package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/session"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "ltask help" }
func (c *HelpCmd) NeedsSession() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  ltask                                                  List active tasks
  ltask list [common flags] [--all] [--filter <text>]    List active tasks matching text
  ltask add [common flags] <text...>
  ltask create [common flags] <text...>
  ltask done [common flags] [--filter <text>] <n>
  ltask rm [common flags] [--filter <text>] <n>
  ltask edit [common flags] [--filter <text>] <n> <text...>
  ltask lists [common flags]
  ltask tui [common flags]
  ltask login [common flags]
  ltask logout [common flags]
  ltask help
  ltask version

<n> is the row number printed by list with the same --filter.
--all prints every stored list under its own header.

Common flags:
  --config <dir>      Override config directory
  --list <id>         Task list identifier (default "default")
  --backend <name>    Storage backend: file, sqlite, googletasks
  --quiet             Suppress informational output
  --debug             Print debug logs to stderr

Environment:
  LTASK_CONFIG_DIR, LTASK_LIST, LTASK_BACKEND

tui keys:
  a add    e edit    d delete    x/space resolve    u undo
  tab switch pane    j/k move    / filter    l next list    q quit
`
