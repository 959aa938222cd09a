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
	Register(&MvCmd{})
}

// MvCmd implements the mv command: drop one task onto another.
type MvCmd struct{}

func (c *MvCmd) Name() string      { return "mv" }
func (c *MvCmd) Aliases() []string { return []string{"move"} }
func (c *MvCmd) Synopsis() string  { return "Move a task to another task's position" }
func (c *MvCmd) Usage() string     { return "taskpad mv <ref> <target-ref>" }
func (c *MvCmd) NeedsStore() bool  { return true }

func (c *MvCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MvCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: task and target references required")
		return exitcode.UserError
	}
	if len(args) > 2 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[2])
		return exitcode.UserError
	}

	moved, code, ok := resolveArg(svc, args[0], errOut)
	if !ok {
		return code
	}
	target, code, ok := resolveArg(svc, args[1], errOut)
	if !ok {
		return code
	}

	if err := svc.Reorder(ctx, moved.ID, target.ID); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
