package repository

import (
	"context"

	"github.com/tasklyst/backend/domain"
)

// UserDirectory is the user set backing authentication. The memory
// implementation seeds the demo account; any persistence engine can stand in
// without touching the session layer.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) error
	ListAll(ctx context.Context) ([]domain.User, error)
}
