// Package service defines the interface the CLI uses to reach the task store
// and its collaborators.
package service

import (
	"context"
	"iter"

	"taskpad/internal/task"
)

// Service is the sole mutation and query surface for commands.
// Commands never touch storage directly.
type Service interface {
	Tasks
	Preferences
}

// Tasks is the task store surface. *task.Store implements it.
type Tasks interface {
	// Add creates a task from d and appends it.
	Add(ctx context.Context, d task.Draft) (task.Task, error)

	// Toggle flips completion of the task with id.
	Toggle(ctx context.Context, id int64) (task.Task, error)

	// Delete removes the task with id.
	Delete(ctx context.Context, id int64) error

	// Reorder moves task id into the position of task targetID.
	Reorder(ctx context.Context, id, targetID int64) error

	// Query yields matching tasks in stored order.
	Query(filter task.Filter, term string) iter.Seq[task.Task]

	// Tasks returns every task in stored order.
	Tasks() []task.Task

	// Statistics summarizes the list.
	Statistics() task.Stats
}

// Preferences holds user display preferences. *theme.Prefs implements it.
type Preferences interface {
	DarkMode(ctx context.Context) (bool, error)
	SetDarkMode(ctx context.Context, dark bool) error
	ToggleDarkMode(ctx context.Context) (bool, error)
}
