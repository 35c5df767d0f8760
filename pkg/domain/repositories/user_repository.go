package repositories

import (
	"context"

	"github.com/vsinha/liquorstore/pkg/domain/entities"
)

// UserRepository provides access to customer profiles
type UserRepository interface {
	GetUser(ctx context.Context, userID string) (*entities.User, error)
	GetAllUsers(ctx context.Context) ([]*entities.User, error)
	// AppendOrderHistory records an order id on the user's profile.
	// Implementations must serialize the read-modify-write per user.
	AppendOrderHistory(ctx context.Context, userID, orderID string) error
}
