package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"taskpad/internal/exitcode"
	"taskpad/internal/service"
	"taskpad/internal/task"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Position int   // 1-based position in the stored list, when ByID is false
	ID       int64 // task id, when ByID is true
	ByID     bool  // true if the reference was #<id>
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ErrOutOfRange indicates a position past the end of the list.
var ErrOutOfRange = errors.New("task number out of range")

// ParseTaskRef parses a single task reference.
//
// Parsing rules:
// 1. All digits → position in the stored list as printed by list (e.g. 3)
// 2. '#' followed by digits → task id (e.g. #1704099600000)
// 3. Otherwise → error: invalid task reference: <ref>
func ParseTaskRef(s string) (TaskRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TaskRef{}, ErrTaskRefRequired
	}

	if isAllDigits(s) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", s)
		}
		return TaskRef{Position: n}, nil
	}

	if rest, ok := strings.CutPrefix(s, "#"); ok && isAllDigits(rest) {
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", s)
		}
		return TaskRef{ID: id, ByID: true}, nil
	}

	return TaskRef{}, fmt.Errorf("invalid task reference: %s", s)
}

func (r TaskRef) String() string {
	if r.ByID {
		return "#" + strconv.FormatInt(r.ID, 10)
	}
	return strconv.Itoa(r.Position)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ResolveTaskRef maps a reference to a task in the current list.
func ResolveTaskRef(svc service.Tasks, ref TaskRef) (task.Task, error) {
	tasks := svc.Tasks()

	if ref.ByID {
		for _, t := range tasks {
			if t.ID == ref.ID {
				return t, nil
			}
		}
		return task.Task{}, fmt.Errorf("%w: %s", task.ErrNotFound, ref)
	}

	if ref.Position < 1 || ref.Position > len(tasks) {
		return task.Task{}, fmt.Errorf("%w: %d", ErrOutOfRange, ref.Position)
	}
	return tasks[ref.Position-1], nil
}

// resolveArg parses and resolves one reference argument, reporting failures
// on errOut. ok is false when the command should exit with code.
func resolveArg(svc service.Tasks, arg string, errOut io.Writer) (t task.Task, code int, ok bool) {
	ref, err := ParseTaskRef(arg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, exitcode.UserError, false
	}
	t, err = ResolveTaskRef(svc, ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, exitcode.UserError, false
	}
	return t, exitcode.Success, true
}

// reportError prints a store error and returns the matching exit code.
func reportError(errOut io.Writer, err error) int {
	var perr *task.PersistenceError
	switch {
	case errors.Is(err, task.ErrEmptyText):
		fmt.Fprintln(errOut, "error: task text required")
		return exitcode.UserError
	case errors.Is(err, task.ErrValidation), errors.Is(err, task.ErrNotFound):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.As(err, &perr):
		fmt.Fprintf(errOut, "error: storage error: %v\n", perr.Err)
		return exitcode.StorageError
	default:
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}
}
