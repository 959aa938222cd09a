// Package task implements the ordered task list and its persistence contract.
package task

import (
	"fmt"
	"strings"
	"time"
)

// Category is one of a fixed set of task labels.
type Category string

// Known categories.
const (
	Personal Category = "personal"
	Work     Category = "work"
	Shopping Category = "shopping"
	Health   Category = "health"
	Other    Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{Personal, Work, Shopping, Health, Other}

// ParseCategory validates a category name (case-insensitive, trimmed).
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Task is a single to-do item.
// ID and CreatedAt never change after creation; Completed is flipped only by Toggle.
type Task struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Priority  bool      `json:"priority"`
	Category  Category  `json:"category"`
	DueDate   *Date     `json:"dueDate"`
	CreatedAt time.Time `json:"createdAt"`
}

// Draft holds the caller-supplied fields for a new task.
type Draft struct {
	Text     string
	Priority bool
	Category Category
	DueDate  *Date // nil means no due date
}

// Date is a calendar date without a time component.
// It encodes as "YYYY-MM-DD".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateLayout is the wire and input format for dates.
const DateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return DateOf(t), nil
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return d.Time().Format(DateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
