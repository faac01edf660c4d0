// Package models holds the persistent data structures of the server.
package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash; Role is one
// of common.RoleAdmin / common.RoleUser. Accounts are never mutated after
// creation.
type User struct {
	ID           string
	UserName     string
	PasswordHash []byte
	Role         string
	CreatedAt    time.Time
}
