package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/output"
	"taskpad/internal/service"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
	path   string
}

// SetOptions sets the format and output path (for testing).
func (c *ExportCmd) SetOptions(format, path string) {
	c.format = format
	c.path = path
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Export tasks" }
func (c *ExportCmd) Usage() string {
	return "taskpad export [--format json|yaml|csv|pdf] [--output <file>]"
}
func (c *ExportCmd) NeedsStore() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "json", "")
	fs.StringVar(&c.path, "output", "", "")
	fs.StringVar(&c.path, "o", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	format := strings.ToLower(c.format)
	if format == "" {
		format = "json"
	}
	if !slices.Contains(output.ExportFormats, format) {
		fmt.Fprintf(errOut, "error: unknown export format: %s\n", c.format)
		return exitcode.UserError
	}

	w := out
	if c.path != "" {
		f, err := os.Create(c.path)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		defer f.Close()
		w = f
	} else if format == "pdf" {
		fmt.Fprintln(errOut, "error: pdf export requires --output")
		return exitcode.UserError
	}

	if err := output.Export(w, format, svc.Tasks()); err != nil {
		fmt.Fprintf(errOut, "error: export failed: %v\n", err)
		return exitcode.UserError
	}

	if c.path != "" && !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
