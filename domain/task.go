package domain

import "time"

// TaskStatus is one of the three workflow columns a task can sit in.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "inProgress"
	StatusCompleted  TaskStatus = "completed"
)

// Valid reports whether the status is one of the known workflow states.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task represents a user-owned activity item. The whole task set is persisted
// as a single JSON array in the key-value store.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	Deadline    *time.Time `json:"deadline"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}
