package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/output"
	"taskpad/internal/service"
	"taskpad/internal/task"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskpad` (no args) and `taskpad list [term...]`.
type ListCmd struct {
	filter string
	search string
}

// SetFilter sets the filter and search term (for testing).
func (c *ListCmd) SetFilter(filter, search string) {
	c.filter = filter
	c.search = search
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskpad list [--filter all|completed|pending] [--search <term>] [term...]"
}
func (c *ListCmd) NeedsStore() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "all", "")
	fs.StringVar(&c.filter, "f", "all", "")
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "s", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	filter, err := task.ParseFilter(c.filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	term := c.search
	if term == "" && len(args) > 0 {
		term = strings.Join(args, " ")
	}

	// Numbers are positions in the full list so they stay valid refs
	// for done/rm/mv even when filtered.
	positions := make(map[int64]int)
	for i, t := range svc.Tasks() {
		positions[t.ID] = i + 1
	}

	found := false
	for t := range svc.Query(filter, term) {
		output.FormatTask(out, positions[t.ID], t)
		found = true
	}

	if !found && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}
