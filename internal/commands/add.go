package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
	"taskpad/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	priority bool
	category string
	due      string
}

// SetOptions sets the flag values (for testing).
func (c *AddCmd) SetOptions(priority bool, category, due string) {
	c.priority = priority
	c.category = category
	c.due = due
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskpad add [--priority] [--category <c>] [--due YYYY-MM-DD] <text...>"
}
func (c *AddCmd) NeedsStore() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.priority, "priority", false, "")
	fs.BoolVar(&c.priority, "p", false, "")
	fs.StringVar(&c.category, "category", "", "")
	fs.StringVar(&c.category, "c", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.due, "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	draft := task.Draft{
		Text:     strings.Join(args, " "),
		Priority: c.priority,
		Category: cfg.DefaultCategory,
	}

	if c.category != "" {
		category, err := task.ParseCategory(c.category)
		if err != nil {
			fmt.Fprintf(errOut, "error: unknown category: %s (want %s)\n", c.category, categoryList())
			return exitcode.UserError
		}
		draft.Category = category
	}

	if c.due != "" {
		due, err := task.ParseDate(c.due)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		draft.DueDate = &due
	}

	if _, err := svc.Add(ctx, draft); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

func categoryList() string {
	names := make([]string, len(task.Categories))
	for i, c := range task.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
