package main

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tasklyst/backend/domain"
	"github.com/tasklyst/backend/internal/config"
	repoMemory "github.com/tasklyst/backend/repository/memory"
	memStore "github.com/tasklyst/backend/storage/memory"
	authUC "github.com/tasklyst/backend/usecase/auth"
	taskUC "github.com/tasklyst/backend/usecase/task"
)

func newTestApp(t *testing.T) *app {
	t.Helper()

	store := memStore.NewStore()
	users, err := repoMemory.NewSeededUserDirectory()
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Storage.Backend = "memory"

	return &app{
		cfg:      cfg,
		logger:   zap.NewNop(),
		store:    store,
		sessions: authUC.New(store, users, 0, nil),
		tasks:    taskUC.New(store, nil),
	}
}

func execute(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func login(t *testing.T, a *app) {
	t.Helper()
	_, err := execute(t, a, "login", "--email", "user@example.com", "--password", "password123")
	require.NoError(t, err)
}

func TestTaskCommandsRequireSession(t *testing.T) {
	a := newTestApp(t)

	_, err := execute(t, a, "list")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))

	_, err = execute(t, a, "add", "--title", "orphan")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))
}

func TestLoginRejectsBadPassword(t *testing.T) {
	a := newTestApp(t)

	_, err := execute(t, a, "login", "--email", "user@example.com", "--password", "wrong")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))
}

func TestLoginAddListFlow(t *testing.T) {
	a := newTestApp(t)
	login(t, a)

	_, err := execute(t, a, "add", "--title", "write report", "--deadline", "2026-09-15")
	require.NoError(t, err)

	out, err := execute(t, a, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "write report")
	assert.Contains(t, out, "due 2026-09-15")
}

func TestMoveUnknownTaskFails(t *testing.T) {
	a := newTestApp(t)
	login(t, a)

	_, err := execute(t, a, "move", "no-such-id", "--to", "inProgress")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))

	_, err = execute(t, a, "rm", "no-such-id")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestMoveRejectsUnknownStatus(t *testing.T) {
	a := newTestApp(t)
	login(t, a)

	_, err := execute(t, a, "move", "whatever", "--to", "archived")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestEditTouchesOnlySetFlags(t *testing.T) {
	a := newTestApp(t)
	login(t, a)

	_, err := execute(t, a, "add", "--title", "draft slides", "--description", "for the review meeting")
	require.NoError(t, err)

	tasks := a.tasks.List(context.Background(), "1")
	require.Len(t, tasks, 1)
	id := tasks[0].ID

	_, err = execute(t, a, "edit", id, "--title", "final slides")
	require.NoError(t, err)

	tasks = a.tasks.List(context.Background(), "1")
	require.Len(t, tasks, 1)
	assert.Equal(t, "final slides", tasks[0].Title)
	assert.Equal(t, "for the review meeting", tasks[0].Description)
	assert.Equal(t, domain.StatusTodo, tasks[0].Status)
}

func TestEditClearsDeadline(t *testing.T) {
	a := newTestApp(t)
	login(t, a)

	_, err := execute(t, a, "add", "--title", "renew cert", "--deadline", "2026-10-01")
	require.NoError(t, err)

	tasks := a.tasks.List(context.Background(), "1")
	require.Len(t, tasks, 1)

	_, err = execute(t, a, "edit", tasks[0].ID, "--clear-deadline")
	require.NoError(t, err)

	tasks = a.tasks.List(context.Background(), "1")
	require.Nil(t, tasks[0].Deadline)
}

func TestStatusReportsSession(t *testing.T) {
	a := newTestApp(t)

	out, err := execute(t, a, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "storage: available")
	assert.Contains(t, out, "session: none")

	login(t, a)
	out, err = execute(t, a, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "user@example.com")
}
