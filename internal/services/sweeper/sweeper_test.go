package sweeper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repoMemory "github.com/tasklyst/backend/repository/memory"
	memStore "github.com/tasklyst/backend/storage/memory"
	authUC "github.com/tasklyst/backend/usecase/auth"
)

func TestSweepClearsExpiredSessionKeys(t *testing.T) {
	ctx := context.Background()
	store := memStore.NewStore()
	users, err := repoMemory.NewSeededUserDirectory()
	require.NoError(t, err)

	base := time.Now()
	now := base
	sessions := authUC.New(store, users, 0, nil).WithClock(func() time.Time { return now })

	require.True(t, sessions.Login(ctx, "user@example.com", "password123"))
	require.NotZero(t, store.Len())

	sw := New(sessions, nil, Config{Interval: time.Minute})

	// a sweep before expiry leaves the session intact
	sw.Sweep(ctx)
	assert.True(t, sessions.IsAuthenticated(ctx))

	now = base.Add(25 * time.Hour)
	sw.Sweep(ctx)
	assert.Equal(t, 0, store.Len())
}
