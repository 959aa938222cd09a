package task_test

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"testing"
	"time"

	"taskpad/internal/slot"
	"taskpad/internal/task"
	"taskpad/internal/testutil"
)

func newStore(t *testing.T, storage task.Storage) *task.Store {
	t.Helper()
	s := task.NewStore(storage, task.WithClock(testutil.NewClock().Now))
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return s
}

func mustAdd(t *testing.T, s *task.Store, text string) task.Task {
	t.Helper()
	tk, err := s.Add(context.Background(), task.Draft{Text: text, Category: task.Personal})
	if err != nil {
		t.Fatalf("Add(%q): %v", text, err)
	}
	return tk
}

func ids(tasks []task.Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestInitialize_Empty(t *testing.T) {
	s := newStore(t, testutil.NewMemoryStorage())
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d tasks", s.Len())
	}
}

func TestInitialize_MalformedStartsEmpty(t *testing.T) {
	slots := slot.NewMemoryStore()
	slots.Set(context.Background(), task.SlotName, []byte(`{not json`))

	s := task.NewStore(task.NewSlotStorage(slots, ""))
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("malformed data should not fail Initialize, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d tasks", s.Len())
	}
}

func TestInitialize_WrongShapeStartsEmpty(t *testing.T) {
	slots := slot.NewMemoryStore()
	slots.Set(context.Background(), task.SlotName, []byte(`{"id":1}`))

	s := task.NewStore(task.NewSlotStorage(slots, ""))
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d tasks", s.Len())
	}
}

func TestInitialize_LoadErrorIsPersistenceError(t *testing.T) {
	storage := testutil.NewMemoryStorage()
	storage.LoadErr = testutil.ErrStorageDown

	s := task.NewStore(storage)
	err := s.Initialize(context.Background())

	var perr *task.PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if !errors.Is(err, testutil.ErrStorageDown) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d tasks", s.Len())
	}
}

func TestInitialize_DropsDuplicateIDs(t *testing.T) {
	storage := testutil.NewMemoryStorage(
		task.Task{ID: 1, Text: "first", Category: task.Work},
		task.Task{ID: 1, Text: "dup", Category: task.Work},
		task.Task{ID: 2, Text: "second", Category: task.Work},
	)
	s := newStore(t, storage)

	got := s.Tasks()
	if len(got) != 2 || got[0].Text != "first" || got[1].Text != "second" {
		t.Errorf("expected first and second, got %+v", got)
	}
}

func TestAdd_Success(t *testing.T) {
	storage := testutil.NewMemoryStorage()
	s := newStore(t, storage)

	due, _ := task.ParseDate("2024-01-01")
	before := s.Statistics()
	tk, err := s.Add(context.Background(), task.Draft{
		Text:     "  Buy milk  ",
		Priority: true,
		Category: task.Personal,
		DueDate:  &due,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tk.Completed {
		t.Error("new task should not be completed")
	}
	if tk.Text != "Buy milk" {
		t.Errorf("expected trimmed text, got %q", tk.Text)
	}
	if !tk.Priority || tk.Category != task.Personal {
		t.Errorf("unexpected priority/category: %+v", tk)
	}
	if tk.DueDate == nil || tk.DueDate.String() != "2024-01-01" {
		t.Errorf("unexpected due date: %v", tk.DueDate)
	}
	if tk.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	after := s.Statistics()
	if after.Total != before.Total+1 || after.Pending != before.Pending+1 || after.Completed != before.Completed {
		t.Errorf("unexpected stats before=%+v after=%+v", before, after)
	}

	saved := storage.Saved()
	if len(saved) != 1 || saved[0].ID != tk.ID {
		t.Errorf("expected task persisted, got %+v", saved)
	}
}

func TestAdd_DueDateIsCopied(t *testing.T) {
	s := newStore(t, testutil.NewMemoryStorage())

	due, _ := task.ParseDate("2024-03-05")
	tk, _ := s.Add(context.Background(), task.Draft{Text: "x", Category: task.Work, DueDate: &due})
	due.Day = 9

	got, _ := s.Get(tk.ID)
	if got.DueDate.String() != "2024-03-05" {
		t.Errorf("stored due date changed with caller's value: %v", got.DueDate)
	}
}

func TestAdd_EmptyTextRejected(t *testing.T) {
	storage := testutil.NewMemoryStorage()
	s := newStore(t, storage)
	mustAdd(t, s, "keep me")
	before := s.Tasks()
	calls := storage.SaveCalls

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := s.Add(context.Background(), task.Draft{Text: text, Category: task.Personal})
		if !errors.Is(err, task.ErrValidation) {
			t.Errorf("Add(%q): expected validation error, got %v", text, err)
		}
		if !errors.Is(err, task.ErrEmptyText) {
			t.Errorf("Add(%q): expected ErrEmptyText, got %v", text, err)
		}
	}

	if !reflect.DeepEqual(before, s.Tasks()) {
		t.Error("store changed after rejected add")
	}
	if storage.SaveCalls != calls {
		t.Errorf("rejected add should not persist, got %d extra saves", storage.SaveCalls-calls)
	}
}

func TestAdd_InvalidCategoryRejected(t *testing.T) {
	s := newStore(t, testutil.NewMemoryStorage())

	_, err := s.Add(context.Background(), task.Draft{Text: "x", Category: "errands"})
	if !errors.Is(err, task.ErrInvalidCategory) || !errors.Is(err, task.ErrValidation) {
		t.Errorf("expected invalid category validation error, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected no tasks, got %d", s.Len())
	}
}

func TestAdd_UniqueIDsWithFrozenClock(t *testing.T) {
	frozen := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := task.NewStore(testutil.NewMemoryStorage(), task.WithClock(func() time.Time { return frozen }))
	s.Initialize(context.Background())

	seen := map[int64]bool{}
	for i := 0; i < 50; i++ {
		tk := mustAdd(t, s, "same millisecond")
		if seen[tk.ID] {
			t.Fatalf("duplicate id %d", tk.ID)
		}
		seen[tk.ID] = true
	}
}

func TestAdd_IDsAfterRestoreDoNotCollide(t *testing.T) {
	frozen := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	storage := testutil.NewMemoryStorage(task.Task{ID: frozen.UnixMilli() + 10, Text: "old", Category: task.Work})

	s := task.NewStore(storage, task.WithClock(func() time.Time { return frozen }))
	s.Initialize(context.Background())

	tk := mustAdd(t, s, "new")
	if tk.ID <= frozen.UnixMilli()+10 {
		t.Errorf("expected id past restored max, got %d", tk.ID)
	}
}

func TestAdd_PersistenceErrorKeepsMutation(t *testing.T) {
	storage := testutil.NewMemoryStorage()
	s := newStore(t, storage)
	storage.SaveErr = testutil.ErrStorageDown

	tk, err := s.Add(context.Background(), task.Draft{Text: "offline", Category: task.Work})

	var perr *task.PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if tk.ID == 0 || tk.Text != "offline" {
		t.Errorf("expected created task alongside error, got %+v", tk)
	}
	if _, ok := s.Get(tk.ID); !ok {
		t.Error("in-memory mutation should not be rolled back")
	}
}

func TestToggle_Twice(t *testing.T) {
	storage := testutil.NewMemoryStorage()
	s := newStore(t, storage)
	tk := mustAdd(t, s, "walk dog")

	first, err := s.Toggle(context.Background(), tk.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Completed {
		t.Error("first toggle should complete the task")
	}
	if !storage.Saved()[0].Completed {
		t.Error("completion should be persisted")
	}

	second, err := s.Toggle(context.Background(), tk.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Completed != tk.Completed {
		t.Error("second toggle should restore original state")
	}
	if second.ID != tk.ID || !second.CreatedAt.Equal(tk.CreatedAt) {
		t.Error("toggle must not change id or createdAt")
	}
}

func TestToggle_NotFound(t *testing.T) {
	storage := testutil.NewMemoryStorage()
	s := newStore(t, storage)
	mustAdd(t, s, "a")
	calls := storage.SaveCalls

	_, err := s.Toggle(context.Background(), 42)
	if !errors.Is(err, task.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if storage.SaveCalls != calls {
		t.Error("not-found toggle should not persist")
	}
}

func TestDelete(t *testing.T) {
	storage := testutil.NewMemoryStorage()
	s := newStore(t, storage)
	a := mustAdd(t, s, "a")
	b := mustAdd(t, s, "b")
	c := mustAdd(t, s, "c")

	if err := s.Delete(context.Background(), b.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int64{a.ID, c.ID}
	if got := ids(s.Tasks()); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := ids(storage.Saved()); !slices.Equal(got, want) {
		t.Errorf("expected persisted %v, got %v", want, got)
	}
}

func TestDelete_NotFoundLeavesListIdentical(t *testing.T) {
	storage := testutil.NewMemoryStorage()
	s := newStore(t, storage)
	mustAdd(t, s, "a")
	tk := mustAdd(t, s, "b")
	s.Toggle(context.Background(), tk.ID)

	before := s.Tasks()
	calls := storage.SaveCalls

	err := s.Delete(context.Background(), 999)
	if !errors.Is(err, task.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if !reflect.DeepEqual(before, s.Tasks()) {
		t.Error("list changed after failed delete")
	}
	if storage.SaveCalls != calls {
		t.Error("failed delete should not persist")
	}
}

func TestReorder_DownLandsAfterTarget(t *testing.T) {
	s := newStore(t, testutil.NewMemoryStorage())
	a := mustAdd(t, s, "a")
	b := mustAdd(t, s, "b")
	c := mustAdd(t, s, "c")
	d := mustAdd(t, s, "d")

	if err := s.Reorder(context.Background(), a.ID, c.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int64{b.ID, c.ID, a.ID, d.ID}
	if got := ids(s.Tasks()); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestReorder_UpLandsBeforeTarget(t *testing.T) {
	s := newStore(t, testutil.NewMemoryStorage())
	a := mustAdd(t, s, "a")
	b := mustAdd(t, s, "b")
	c := mustAdd(t, s, "c")
	d := mustAdd(t, s, "d")

	if err := s.Reorder(context.Background(), d.ID, b.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int64{a.ID, d.ID, b.ID, c.ID}
	if got := ids(s.Tasks()); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestReorder_AdjacentSwapRestores(t *testing.T) {
	storage := testutil.NewMemoryStorage()
	s := newStore(t, storage)
	x := mustAdd(t, s, "x")
	a := mustAdd(t, s, "a")
	b := mustAdd(t, s, "b")
	y := mustAdd(t, s, "y")

	ctx := context.Background()
	if err := s.Reorder(ctx, a.ID, b.ID); err != nil {
		t.Fatal(err)
	}
	if got := ids(s.Tasks()); !slices.Equal(got, []int64{x.ID, b.ID, a.ID, y.ID}) {
		t.Fatalf("unexpected order after first move: %v", got)
	}
	if err := s.Reorder(ctx, b.ID, a.ID); err != nil {
		t.Fatal(err)
	}

	want := []int64{x.ID, a.ID, b.ID, y.ID}
	if got := ids(s.Tasks()); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := ids(storage.Saved()); !slices.Equal(got, want) {
		t.Errorf("expected persisted %v, got %v", want, got)
	}
}

func TestReorder_SameIDIsNoop(t *testing.T) {
	storage := testutil.NewMemoryStorage()
	s := newStore(t, storage)
	a := mustAdd(t, s, "a")
	mustAdd(t, s, "b")
	calls := storage.SaveCalls

	if err := s.Reorder(context.Background(), a.ID, a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if storage.SaveCalls != calls {
		t.Error("no-op reorder should not persist")
	}
}

func TestReorder_NotFound(t *testing.T) {
	s := newStore(t, testutil.NewMemoryStorage())
	a := mustAdd(t, s, "a")
	mustAdd(t, s, "b")
	before := s.Tasks()

	if err := s.Reorder(context.Background(), a.ID, 7); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing target, got %v", err)
	}
	if err := s.Reorder(context.Background(), 7, a.ID); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing source, got %v", err)
	}
	if !reflect.DeepEqual(before, s.Tasks()) {
		t.Error("list changed after failed reorder")
	}
}

func TestQuery(t *testing.T) {
	s := newStore(t, testutil.NewMemoryStorage())
	ctx := context.Background()
	milk := mustAdd(t, s, "Buy MILK")
	bread := mustAdd(t, s, "bake bread")
	call := mustAdd(t, s, "Call mom about milk")
	s.Toggle(ctx, bread.ID)
	s.Toggle(ctx, call.ID)

	tests := []struct {
		name   string
		filter task.Filter
		term   string
		want   []int64
	}{
		{"all", task.All, "", []int64{milk.ID, bread.ID, call.ID}},
		{"pending", task.Pending, "", []int64{milk.ID}},
		{"completed", task.Completed, "", []int64{bread.ID, call.ID}},
		{"search case-insensitive", task.All, "milk", []int64{milk.ID, call.ID}},
		{"search and filter", task.Completed, "MiLk", []int64{call.ID}},
		{"no match", task.All, "zebra", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(slices.Collect(s.Query(tt.filter, tt.term)))
			if !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestQuery_Restartable(t *testing.T) {
	s := newStore(t, testutil.NewMemoryStorage())
	mustAdd(t, s, "a")
	mustAdd(t, s, "b")

	seq := s.Query(task.All, "")
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if len(first) != 2 || !reflect.DeepEqual(first, second) {
		t.Errorf("expected repeatable results, got %v then %v", first, second)
	}

	mustAdd(t, s, "c")
	if n := len(slices.Collect(seq)); n != 3 {
		t.Errorf("expected iteration to see current state, got %d tasks", n)
	}
}

func TestQuery_EarlyBreak(t *testing.T) {
	s := newStore(t, testutil.NewMemoryStorage())
	mustAdd(t, s, "a")
	mustAdd(t, s, "b")

	n := 0
	for range s.Query(task.All, "") {
		n++
		break
	}
	if n != 1 {
		t.Errorf("expected 1 iteration, got %d", n)
	}
}

func TestStatistics(t *testing.T) {
	s := newStore(t, testutil.NewMemoryStorage())

	if got := s.Statistics(); got != (task.Stats{}) {
		t.Errorf("expected zero stats for empty store, got %+v", got)
	}

	a := mustAdd(t, s, "a")
	mustAdd(t, s, "b")
	mustAdd(t, s, "c")
	s.Toggle(context.Background(), a.ID)

	want := task.Stats{Total: 3, Completed: 1, Pending: 2, PercentComplete: 33}
	if got := s.Statistics(); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestStatsOf_Rounding(t *testing.T) {
	tasks := []task.Task{{Completed: true}, {Completed: true}, {}}
	if got := task.StatsOf(tasks).PercentComplete; got != 67 {
		t.Errorf("expected 67, got %d", got)
	}
}

func TestUniqueIDsAcrossOperations(t *testing.T) {
	s := newStore(t, testutil.NewMemoryStorage())
	ctx := context.Background()

	var live []int64
	for i := 0; i < 20; i++ {
		tk := mustAdd(t, s, "task")
		live = append(live, tk.ID)
		switch i % 4 {
		case 1:
			s.Toggle(ctx, live[0])
		case 2:
			s.Reorder(ctx, live[len(live)-1], live[0])
		case 3:
			s.Delete(ctx, live[1])
			live = slices.Delete(live, 1, 2)
		}
	}

	seen := map[int64]bool{}
	for _, tk := range s.Tasks() {
		if seen[tk.ID] {
			t.Fatalf("duplicate id %d", tk.ID)
		}
		seen[tk.ID] = true
	}
}

func TestRoundTrip(t *testing.T) {
	slots := slot.NewMemoryStore()
	ctx := context.Background()

	s := task.NewStore(task.NewSlotStorage(slots, ""), task.WithClock(testutil.NewClock().Now))
	s.Initialize(ctx)

	due, _ := task.ParseDate("2024-12-24")
	s.Add(ctx, task.Draft{Text: "wrap gifts", Priority: true, Category: task.Shopping, DueDate: &due})
	b, _ := s.Add(ctx, task.Draft{Text: "run", Category: task.Health})
	s.Add(ctx, task.Draft{Text: "ship report", Category: task.Work})
	s.Toggle(ctx, b.ID)

	restored := task.NewStore(task.NewSlotStorage(slots, ""))
	if err := restored.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	want, got := s.Tasks(), restored.Tasks()
	if len(want) != len(got) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(got))
	}
	for i := range want {
		w, g := want[i], got[i]
		if w.ID != g.ID || w.Text != g.Text || w.Completed != g.Completed ||
			w.Priority != g.Priority || w.Category != g.Category ||
			!w.CreatedAt.Equal(g.CreatedAt) || !reflect.DeepEqual(w.DueDate, g.DueDate) {
			t.Errorf("task %d differs:\nwant %+v\ngot  %+v", i, w, g)
		}
	}
}
