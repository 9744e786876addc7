package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskStatusValid(t *testing.T) {
	assert.True(t, StatusTodo.Valid())
	assert.True(t, StatusInProgress.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.False(t, TaskStatus("done").Valid())
	assert.False(t, TaskStatus("").Valid())
}

func TestTaskJSONShape(t *testing.T) {
	task := Task{
		ID:        "t1",
		UserID:    "1",
		Title:     "A",
		Status:    StatusTodo,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	payload, err := json.Marshal(task)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"userId":"1"`)
	assert.Contains(t, string(payload), `"deadline":null`)
	assert.Contains(t, string(payload), `"createdAt":"2025-06-01T12:00:00Z"`)
}

func TestSanitizedUserOmitsCredentials(t *testing.T) {
	user := User{ID: "1", Email: "user@example.com", Name: "Demo", PasswordHash: []byte("hash")}

	payload, err := json.Marshal(user.Sanitized())
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "hash")
	assert.Contains(t, string(payload), `"id":"1"`)
}

func TestIsDomainError(t *testing.T) {
	err := WrapError(ErrCodeNotFound, "task not found", nil)
	assert.True(t, IsDomainError(err, ErrCodeNotFound))
	assert.False(t, IsDomainError(err, ErrCodeConflict))
	assert.False(t, IsDomainError(nil, ErrCodeNotFound))
}

func TestSessionIsExpired(t *testing.T) {
	now := time.Now()
	live := &Session{ExpiresAt: now.Add(time.Hour)}
	stale := &Session{ExpiresAt: now.Add(-time.Hour)}

	assert.False(t, live.IsExpired(now))
	assert.True(t, stale.IsExpired(now))
	assert.True(t, (*Session)(nil).IsExpired(now))
}
