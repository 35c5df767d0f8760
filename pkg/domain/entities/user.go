package entities

import "fmt"

// User is a storefront customer profile
type User struct {
	ID           string
	Name         string
	Email        string
	OrderHistory []string
}

// NewUser creates a validated User
func NewUser(id, name, email string) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("user id cannot be empty")
	}

	return &User{
		ID:    id,
		Name:  name,
		Email: email,
	}, nil
}

// UserIndex maps user ids to users
type UserIndex map[string]*User

// NewUserIndex indexes users by id. Later duplicates win.
func NewUserIndex(users []*User) UserIndex {
	index := make(UserIndex, len(users))
	for _, u := range users {
		index[u.ID] = u
	}
	return index
}
