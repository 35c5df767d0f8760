package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vsinha/liquorstore/pkg/domain/entities"
	"github.com/vsinha/liquorstore/pkg/domain/repositories"
)

// UserRepository provides in-memory customer profile storage
type UserRepository struct {
	mu       sync.RWMutex
	users    []entities.User
	usersMap map[string]int
}

// NewUserRepository creates a new in-memory user repository
func NewUserRepository(expectedUsers int) *UserRepository {
	return &UserRepository{
		users:    make([]entities.User, 0, expectedUsers),
		usersMap: make(map[string]int, expectedUsers),
	}
}

// Verify interface compliance
var _ repositories.UserRepository = (*UserRepository)(nil)

// LoadUsers loads users into the repository
func (r *UserRepository) LoadUsers(users []*entities.User) error {
	for _, user := range users {
		if err := r.SaveUser(user); err != nil {
			return err
		}
	}
	return nil
}

// SaveUser adds a user, rejecting duplicate ids
func (r *UserRepository) SaveUser(user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.usersMap[user.ID]; exists {
		return fmt.Errorf("duplicate user id: %s", user.ID)
	}
	r.usersMap[user.ID] = len(r.users)
	r.users = append(r.users, cloneUser(*user))
	return nil
}

// GetUser returns a copy of the user with the given id
func (r *UserRepository) GetUser(ctx context.Context, userID string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.usersMap[userID]
	if !exists {
		return nil, fmt.Errorf("user %s: %w", userID, repositories.ErrNotFound)
	}
	user := cloneUser(r.users[index])
	return &user, nil
}

// GetAllUsers returns copies of all users in insertion order
func (r *UserRepository) GetAllUsers(ctx context.Context) ([]*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*entities.User, 0, len(r.users))
	for i := range r.users {
		user := cloneUser(r.users[i])
		users = append(users, &user)
	}
	return users, nil
}

// AppendOrderHistory adds an order id to a user's history under the write lock
func (r *UserRepository) AppendOrderHistory(ctx context.Context, userID, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index, exists := r.usersMap[userID]
	if !exists {
		return fmt.Errorf("user %s: %w", userID, repositories.ErrNotFound)
	}
	r.users[index].OrderHistory = append(r.users[index].OrderHistory, orderID)
	return nil
}

func cloneUser(u entities.User) entities.User {
	u.OrderHistory = append([]string(nil), u.OrderHistory...)
	return u
}
