package store

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/storage"
)

// TaskStore is the ordered task list. Every mutation persists the whole list
// under storage.KeyTasks.
type TaskStore struct {
	mu     sync.Mutex
	tasks  []model.Task
	kv     storage.KV
	log    *slog.Logger
	now    func() time.Time
	newID  func() string
	obs    observable[[]model.Task]
	saveMu sync.Mutex
}

type TaskOption func(*TaskStore)

func WithTaskClock(now func() time.Time) TaskOption {
	return func(s *TaskStore) { s.now = now }
}

func WithTaskIDs(gen func() string) TaskOption {
	return func(s *TaskStore) { s.newID = gen }
}

func WithTaskLogger(l *slog.Logger) TaskOption {
	return func(s *TaskStore) { s.log = l }
}

func NewTaskStore(kv storage.KV, opts ...TaskOption) *TaskStore {
	s := &TaskStore{
		tasks: make([]model.Task, 0),
		kv:    kv,
		log:   slog.Default(),
		now:   time.Now,
		newID: newTaskID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newTaskID returns a time-ordered UUIDv7, falling back to a random UUID.
func newTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Subscribe delivers the current list immediately and then every change.
func (s *TaskStore) Subscribe(fn func([]model.Task)) func() {
	unsubscribe := s.obs.add(fn)
	fn(s.Tasks())
	return unsubscribe
}

func (s *TaskStore) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks)
}

func (s *TaskStore) Stats() model.TaskStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.ComputeTaskStats(s.tasks)
}

// Add appends a task with trimmed text. Empty text is accepted.
func (s *TaskStore) Add(text string, category model.Category) model.Task {
	if !category.IsValid() {
		category = model.CategoryNormal
	}
	task := model.Task{
		ID:        s.newID(),
		Text:      strings.TrimSpace(text),
		Category:  category,
		Completed: false,
		CreatedAt: model.FormatTimestamp(s.now()),
	}
	s.mutate(func(tasks []model.Task) []model.Task {
		return append(tasks, task)
	})
	return task
}

func (s *TaskStore) Toggle(id string) {
	s.mutate(func(tasks []model.Task) []model.Task {
		if i := indexOf(tasks, id); i >= 0 {
			tasks[i].Completed = !tasks[i].Completed
		}
		return tasks
	})
}

func (s *TaskStore) Delete(id string) {
	s.mutate(func(tasks []model.Task) []model.Task {
		out := tasks[:0]
		for _, t := range tasks {
			if t.ID != id {
				out = append(out, t)
			}
		}
		return out
	})
}

// MoveTask removes the task fromID and reinserts it at the index toID held
// before the removal. Unknown ids leave the order unchanged.
func (s *TaskStore) MoveTask(fromID, toID string) {
	s.mutate(func(tasks []model.Task) []model.Task {
		from := indexOf(tasks, fromID)
		to := indexOf(tasks, toID)
		if from < 0 || to < 0 {
			return tasks
		}
		moved := tasks[from]
		tasks = append(tasks[:from], tasks[from+1:]...)
		tasks = append(tasks[:to], append([]model.Task{moved}, tasks[to:]...)...)
		return tasks
	})
}

func (s *TaskStore) ClearCompleted() {
	s.mutate(func(tasks []model.Task) []model.Task {
		out := tasks[:0]
		for _, t := range tasks {
			if !t.Completed {
				out = append(out, t)
			}
		}
		return out
	})
}

// Load replaces the list with the persisted one. Corrupt data is logged and
// resets the list to empty.
func (s *TaskStore) Load(ctx context.Context) {
	var loaded []model.Task
	found, err := storage.LoadJSON(ctx, s.kv, storage.KeyTasks, &loaded)
	if err != nil {
		if !errors.Is(err, storage.ErrCorrupt) {
			s.log.Warn("load tasks failed", "err", err)
			return
		}
		s.log.Error("error loading tasks from storage", "err", err)
		loaded = make([]model.Task, 0)
		found = true
	}
	if !found {
		return
	}
	if loaded == nil {
		loaded = make([]model.Task, 0)
	}
	s.mu.Lock()
	s.tasks = loaded
	snap := cloneTasks(s.tasks)
	s.mu.Unlock()
	s.obs.notify(snap)
}

// Save writes the current list.
func (s *TaskStore) Save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return storage.SaveJSON(ctx, s.kv, storage.KeyTasks, s.Tasks())
}

func (s *TaskStore) mutate(fn func([]model.Task) []model.Task) {
	s.mu.Lock()
	s.tasks = fn(s.tasks)
	snap := cloneTasks(s.tasks)
	s.mu.Unlock()

	s.obs.notify(snap)
	if err := s.Save(context.Background()); err != nil {
		s.log.Warn("save tasks failed", "err", err)
	}
}

func indexOf(tasks []model.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func cloneTasks(in []model.Task) []model.Task {
	out := make([]model.Task, len(in))
	copy(out, in)
	return out
}
