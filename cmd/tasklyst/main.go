package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/tasklyst/backend/domain"
	"github.com/tasklyst/backend/internal/config"
	"github.com/tasklyst/backend/pkg/logger"
	repoMemory "github.com/tasklyst/backend/repository/memory"
	"github.com/tasklyst/backend/storage"
	boltStore "github.com/tasklyst/backend/storage/bolt"
	memStore "github.com/tasklyst/backend/storage/memory"
	redisStore "github.com/tasklyst/backend/storage/redis"
	authUC "github.com/tasklyst/backend/usecase/auth"
	taskUC "github.com/tasklyst/backend/usecase/task"
)

type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    storage.Store
	sessions *authUC.SessionStore
	tasks    *taskUC.Service
	closers  []func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	a := newApp(cfg, zapLogger)
	root := newRootCmd(a)

	err = root.Execute()
	a.close()
	if err != nil {
		os.Exit(1)
	}
}

func newApp(cfg *config.Config, zapLogger *zap.Logger) *app {
	return &app{cfg: cfg, logger: zapLogger}
}

// bootstrap opens the configured store and builds the services. It runs once,
// from the root command's PersistentPreRunE, so the command name is already
// attached to the context and reaches every service log line.
func (a *app) bootstrap(ctx context.Context) error {
	if a.store != nil {
		return nil
	}

	opLogger := logger.WithOperation(ctx, a.logger)

	switch a.cfg.Storage.Backend {
	case "redis":
		client, err := redisStore.Dial(a.cfg.Redis.URL, a.cfg.Redis.Password, a.cfg.Redis.DB)
		if err != nil {
			return domain.WrapError(domain.ErrCodeUnavailable, "redis connection failed", err)
		}
		a.closers = append(a.closers, client.Close)
		a.store = redisStore.NewStore(client, a.cfg.Redis.Prefix)
	case "memory":
		a.store = memStore.NewStore()
	default:
		store, err := boltStore.Open(a.cfg.Storage.BoltPath, a.cfg.Storage.BoltBucket)
		if err != nil {
			return domain.WrapError(domain.ErrCodeUnavailable, "failed to open bolt store", err)
		}
		a.closers = append(a.closers, store.Close)
		a.store = store
	}

	users, err := repoMemory.NewSeededUserDirectory()
	if err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "failed to seed user directory", err)
	}

	a.sessions = authUC.New(a.store, users, a.cfg.Session.TTL, opLogger)
	a.tasks = taskUC.New(a.store, opLogger)

	opLogger.Debug("storage backend ready", zap.String("backend", a.cfg.Storage.Backend))
	return nil
}

func (a *app) requireUser(ctx context.Context) (*domain.User, error) {
	user := a.sessions.CurrentUser(ctx)
	if user == nil {
		return nil, domain.NewError(domain.ErrCodeUnauthorized, "not logged in, run: tasklyst login")
	}
	return user, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
	a.closers = nil
}

func onlineWord(ok bool) string {
	if ok {
		return "available"
	}
	return "unavailable"
}
