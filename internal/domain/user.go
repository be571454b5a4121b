package domain

import "time"

// DefaultMaxCapacity is the inventory slot budget assigned to new users.
const DefaultMaxCapacity = 100

// User is an account the engine resolves rewards for. MaxCapacity is the
// total inventory slot budget; occupied slots may never exceed it.
type User struct {
	ID          string    `json:"user_id"`
	Username    string    `json:"username"`
	MaxCapacity int       `json:"max_capacity"`
	CreatedAt   time.Time `json:"created_at"`
}
