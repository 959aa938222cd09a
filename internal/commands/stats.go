package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/output"
	"taskpad/internal/service"
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd implements the stats command.
type StatsCmd struct {
	json bool
}

func (c *StatsCmd) Name() string      { return "stats" }
func (c *StatsCmd) Aliases() []string { return nil }
func (c *StatsCmd) Synopsis() string  { return "Print task totals and progress" }
func (c *StatsCmd) Usage() string     { return "taskpad stats [--json]" }
func (c *StatsCmd) NeedsStore() bool  { return true }

func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.json, "json", false, "")
}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	st := svc.Statistics()

	if c.json {
		data, err := json.Marshal(st)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		fmt.Fprintf(out, "%s\n", data)
		return exitcode.Success
	}

	output.FormatStats(out, st)
	return exitcode.Success
}
