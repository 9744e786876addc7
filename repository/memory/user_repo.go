package memory

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/tasklyst/backend/domain"
	"github.com/tasklyst/backend/repository"
)

// userDirectory keeps the user set in process memory. New registrations do
// not outlive the process.
type userDirectory struct {
	mu    sync.RWMutex
	users []domain.User
}

// NewUserDirectory instantiates an empty in-memory user directory.
func NewUserDirectory() repository.UserDirectory {
	return &userDirectory{}
}

// NewSeededUserDirectory instantiates the directory with the demo account
// (user@example.com / password123).
func NewSeededUserDirectory() (repository.UserDirectory, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &userDirectory{
		users: []domain.User{
			{
				ID:           "1",
				Email:        "user@example.com",
				Name:         "Demo User",
				PasswordHash: hash,
			},
		},
	}, nil
}

func (d *userDirectory) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i := range d.users {
		if strings.EqualFold(d.users[i].Email, email) {
			user := d.users[i]
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (d *userDirectory) FindByID(ctx context.Context, id string) (*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i := range d.users {
		if d.users[i].ID == id {
			user := d.users[i]
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (d *userDirectory) Insert(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.users {
		if strings.EqualFold(d.users[i].Email, user.Email) {
			return domain.ErrEmailTaken
		}
	}
	if user.ID == "" {
		user.ID = strconv.Itoa(len(d.users) + 1)
	}
	d.users = append(d.users, *user)
	return nil
}

func (d *userDirectory) ListAll(ctx context.Context) ([]domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.User, len(d.users))
	copy(out, d.users)
	return out, nil
}
