package task

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tasklyst/backend/domain"
	"github.com/tasklyst/backend/storage"
)

// collectionKey holds all task records for all users as one JSON array.
// Ownership is enforced by query-time filtering, not by storage layout.
const collectionKey = "task_lyst_tasks"

// Draft carries the caller-supplied fields of a new task. ID and CreatedAt
// are assigned by the service. Title validation is the caller's job.
type Draft struct {
	UserID      string
	Title       string
	Description string
	Status      domain.TaskStatus
	Deadline    *time.Time
}

// Patch describes a partial update. Nil fields are left untouched;
// ClearDeadline removes an existing deadline.
type Patch struct {
	Title         *string
	Description   *string
	Status        *domain.TaskStatus
	Deadline      *time.Time
	ClearDeadline bool
}

// Service implements task CRUD and status moves over the shared collection
// key. Read failures degrade to an empty collection; write failures are
// logged and swallowed.
type Service struct {
	store  storage.Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

func New(store storage.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// List returns the caller's tasks in stored (insertion) order.
func (s *Service) List(ctx context.Context, userID string) []domain.Task {
	var out []domain.Task
	for _, t := range s.load(ctx) {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

// ListByStatus narrows List down to a single workflow column.
func (s *Service) ListByStatus(ctx context.Context, userID string, status domain.TaskStatus) []domain.Task {
	var out []domain.Task
	for _, t := range s.List(ctx, userID) {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// Add assigns an id and creation timestamp, appends the task and persists the
// collection. The stored record is returned.
func (s *Service) Add(ctx context.Context, draft Draft) domain.Task {
	status := draft.Status
	if !status.Valid() {
		status = domain.StatusTodo
	}

	task := domain.Task{
		ID:          s.newID(),
		UserID:      draft.UserID,
		Title:       draft.Title,
		Description: draft.Description,
		Status:      status,
		CreatedAt:   s.now(),
		Deadline:    draft.Deadline,
	}

	tasks := append(s.load(ctx), task)
	s.save(ctx, tasks)
	return task
}

// Update merges the patch over the stored record and persists the collection.
// It returns nil without touching storage when the id is unknown.
func (s *Service) Update(ctx context.Context, taskID string, patch Patch) *domain.Task {
	tasks := s.load(ctx)
	idx := -1
	for i := range tasks {
		if tasks[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	t := &tasks[idx]
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil && patch.Status.Valid() {
		t.Status = *patch.Status
	}
	if patch.ClearDeadline {
		t.Deadline = nil
	} else if patch.Deadline != nil {
		t.Deadline = patch.Deadline
	}

	s.save(ctx, tasks)
	updated := *t
	return &updated
}

// UpdateStatus moves a task to the given column. Transitions are free; any
// status is reachable from any other.
func (s *Service) UpdateStatus(ctx context.Context, taskID string, status domain.TaskStatus) *domain.Task {
	return s.Update(ctx, taskID, Patch{Status: &status})
}

// Delete removes the task by id. It reports false, leaving the collection
// unchanged, when no record matched.
func (s *Service) Delete(ctx context.Context, taskID string) bool {
	tasks := s.load(ctx)
	filtered := tasks[:0:0]
	for _, t := range tasks {
		if t.ID != taskID {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == len(tasks) {
		return false
	}
	s.save(ctx, filtered)
	return true
}

// WithClock overrides the time source. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Service) load(ctx context.Context) []domain.Task {
	raw, err := s.store.Read(ctx, collectionKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.logger.Warn("failed to load task collection", zap.Error(err))
		}
		return nil
	}

	var tasks []domain.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		s.logger.Warn("corrupted task collection, treating as empty", zap.Error(err))
		return nil
	}
	return tasks
}

func (s *Service) save(ctx context.Context, tasks []domain.Task) {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	payload, err := json.Marshal(tasks)
	if err != nil {
		s.logger.Error("failed to encode task collection", zap.Error(err))
		return
	}
	if err := s.store.Write(ctx, collectionKey, string(payload)); err != nil {
		s.logger.Warn("failed to persist task collection", zap.Error(err))
	}
}
