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
	Register(&ThemeCmd{})
}

// ThemeCmd implements the theme command.
type ThemeCmd struct{}

func (c *ThemeCmd) Name() string      { return "theme" }
func (c *ThemeCmd) Aliases() []string { return nil }
func (c *ThemeCmd) Synopsis() string  { return "Show or set dark mode" }
func (c *ThemeCmd) Usage() string     { return "taskpad theme [dark|light|toggle]" }
func (c *ThemeCmd) NeedsStore() bool  { return true }

func (c *ThemeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ThemeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	var dark bool
	var err error
	switch {
	case len(args) == 0:
		dark, err = svc.DarkMode(ctx)
	case args[0] == "dark":
		dark, err = true, svc.SetDarkMode(ctx, true)
	case args[0] == "light":
		dark, err = false, svc.SetDarkMode(ctx, false)
	case args[0] == "toggle":
		dark, err = svc.ToggleDarkMode(ctx)
	default:
		fmt.Fprintf(errOut, "error: unknown theme: %s\n", args[0])
		return exitcode.UserError
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}

	if dark {
		fmt.Fprintln(out, "dark")
	} else {
		fmt.Fprintln(out, "light")
	}
	return exitcode.Success
}
