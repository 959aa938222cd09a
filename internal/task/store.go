package task

import (
	"context"
	"errors"
	"iter"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Store owns the ordered task list and mirrors it to a Storage after every
// successful mutation. The save happens before the mutating call returns.
type Store struct {
	mu      sync.Mutex
	storage Storage
	log     *zap.Logger
	now     func() time.Time

	tasks  []Task
	lastID int64
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for ids and CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// NewStore creates an empty store over storage. Call Initialize to restore
// previously saved tasks.
func NewStore(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted list. Missing or malformed data leaves the
// store empty and is not an error. Any other load failure also leaves the
// store empty but is reported as a *PersistenceError.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = nil
	s.lastID = 0

	loaded, err := s.storage.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrMalformed) {
			s.log.Warn("ignoring malformed task data", zap.Error(err))
			return nil
		}
		s.log.Error("loading tasks failed", zap.Error(err))
		return &PersistenceError{Op: "load", Err: err}
	}

	seen := make(map[int64]bool, len(loaded))
	for _, t := range loaded {
		if seen[t.ID] {
			s.log.Warn("dropping task with duplicate id", zap.Int64("id", t.ID))
			continue
		}
		seen[t.ID] = true
		s.tasks = append(s.tasks, t)
		s.lastID = max(s.lastID, t.ID)
	}

	s.log.Debug("tasks loaded", zap.Int("count", len(s.tasks)))
	return nil
}

// Add validates d and appends a new pending task.
// On a *PersistenceError the returned task is valid and kept in memory.
func (s *Store) Add(ctx context.Context, d Draft) (Task, error) {
	text := strings.TrimSpace(d.Text)
	if text == "" {
		return Task{}, ErrEmptyText
	}
	if !d.Category.Valid() {
		return Task{}, ErrInvalidCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	t := Task{
		ID:        s.nextID(now),
		Text:      text,
		Priority:  d.Priority,
		Category:  d.Category,
		CreatedAt: now.UTC().Truncate(time.Millisecond),
	}
	if d.DueDate != nil {
		due := *d.DueDate
		t.DueDate = &due
	}
	s.tasks = append(s.tasks, t)

	s.log.Debug("task added", zap.Int64("id", t.ID))
	return t, s.persist(ctx, "save")
}

// Toggle flips Completed on the task with the given id and returns it.
// A returned task with Completed set means the task has just been completed.
func (s *Store) Toggle(ctx context.Context, id int64) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return Task{}, notFound(id)
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	t := s.tasks[i]

	s.log.Debug("task toggled", zap.Int64("id", id), zap.Bool("completed", t.Completed))
	return t, s.persist(ctx, "save")
}

// Delete removes the task with the given id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return notFound(id)
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)

	s.log.Debug("task deleted", zap.Int64("id", id))
	return s.persist(ctx, "save")
}

// Reorder moves task id into the current position of task targetID. Moving
// down the list lands it after the target, moving up lands it before.
// The relative order of every other task is unchanged.
func (s *Store) Reorder(ctx context.Context, id, targetID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.index(id)
	if from < 0 {
		return notFound(id)
	}
	to := s.index(targetID)
	if to < 0 {
		return notFound(targetID)
	}
	if from == to {
		return nil
	}

	moved := s.tasks[from]
	s.tasks = slices.Delete(s.tasks, from, from+1)
	s.tasks = slices.Insert(s.tasks, to, moved)

	s.log.Debug("task moved", zap.Int64("id", id), zap.Int("from", from), zap.Int("to", to))
	return s.persist(ctx, "save")
}

// Get returns the task with the given id.
func (s *Store) Get(id int64) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// Tasks returns a copy of the list in stored order.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Query yields, in stored order, the tasks matching filter whose text
// contains term (case-insensitive). Each iteration reads the list as it is
// when the iteration starts.
func (s *Store) Query(filter Filter, term string) iter.Seq[Task] {
	term = strings.ToLower(term)
	return func(yield func(Task) bool) {
		for _, t := range s.Tasks() {
			if !filter.Match(t) || !strings.Contains(strings.ToLower(t.Text), term) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Statistics summarizes the list.
func (s *Store) Statistics() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatsOf(s.tasks)
}

func (s *Store) index(id int64) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

func (s *Store) snapshot() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// nextID returns a millisecond timestamp, bumped past the last issued id.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context, op string) error {
	if err := s.storage.Save(ctx, s.snapshot()); err != nil {
		s.log.Error("saving tasks failed", zap.Error(err))
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}

// Stats is a summary of a task list.
type Stats struct {
	Total           int `json:"total"`
	Completed       int `json:"completed"`
	Pending         int `json:"pending"`
	PercentComplete int `json:"percentComplete"`
}

// StatsOf computes Stats for tasks. PercentComplete is 0 for an empty list.
func StatsOf(tasks []Task) Stats {
	st := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			st.Completed++
		}
	}
	st.Pending = st.Total - st.Completed
	if st.Total > 0 {
		st.PercentComplete = int(math.Round(100 * float64(st.Completed) / float64(st.Total)))
	}
	return st
}
