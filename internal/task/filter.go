package task

import (
	"fmt"
	"strings"
)

// Filter selects tasks by completion state.
type Filter int

const (
	All Filter = iota
	Completed
	Pending
)

// ParseFilter parses "all", "completed" or "pending" (case-insensitive).
// The empty string is All.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "completed", "done":
		return Completed, nil
	case "pending", "open":
		return Pending, nil
	default:
		return All, fmt.Errorf("invalid filter: %s", s)
	}
}

// Match reports whether t passes the filter.
func (f Filter) Match(t Task) bool {
	switch f {
	case Completed:
		return t.Completed
	case Pending:
		return !t.Completed
	default:
		return true
	}
}

func (f Filter) String() string {
	switch f {
	case Completed:
		return "completed"
	case Pending:
		return "pending"
	default:
		return "all"
	}
}
