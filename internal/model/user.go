package model

import "time"

// Roles stored in users.role. They gate which HTTP operations a caller may
// invoke; the repositories themselves never inspect roles.
const (
	RoleClient = "CLIENT"
	RoleSeller = "SELLER"
	RoleAdmin  = "ADMIN"
)

// User represents an application user record as stored in the `users`
// table. Names are unique. The password hash is nullable because walk-in
// clients can be registered by staff without credentials.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – unique user name.
//  Role         – one of CLIENT, SELLER, ADMIN.
//  PasswordHash – PBKDF2 hash of the password, empty when none was set.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    `json:"id"`         // users.id
	Name         string    `json:"name"`       // users.name
	Role         string    `json:"role"`       // users.role
	PasswordHash string    `json:"-"`          // users.password_hash (never serialized)
	CreatedAt    time.Time `json:"created_at"` // users.created_at
}
