package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It toggles completion, so running it
// on a completed task reopens it.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task completed" }
func (c *DoneCmd) Usage() string     { return "taskpad done <ref>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	}
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	target, code, ok := resolveArg(svc, args[0], errOut)
	if !ok {
		return code
	}

	updated, err := svc.Toggle(ctx, target.ID)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		// The completed line is the celebration cue; it only appears on the
		// transition to completed.
		if updated.Completed {
			fmt.Fprintln(out, "completed")
		} else {
			fmt.Fprintln(out, "reopened")
		}
	}
	return exitcode.Success
}
