package store

import "errors"

// ErrUserNotFound is returned when a user doesn't exist.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidCredentials is returned when a password doesn't match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// User represents a principal.
type User struct {
	ID    string
	Login string
}

// UsersStore abstracts principal lookup and credential checks.
type UsersStore interface {
	// FetchUser retrieves a user by id.
	// Returns ErrUserNotFound if the user doesn't exist.
	FetchUser(id string) (*User, error)

	// FetchUserByLogin retrieves a user by login.
	// Returns ErrUserNotFound if the user doesn't exist.
	FetchUserByLogin(login string) (*User, error)

	// Authenticate verifies a login/password pair.
	// Returns ErrUserNotFound or ErrInvalidCredentials on failure.
	Authenticate(login string, password []byte) (*User, error)

	// CreateUser persists a new user with a hashed password.
	CreateUser(login string, password []byte) (*User, error)

	// GrantPermission grants a named permission to a user. Granting a
	// permission the user already holds is a no-op.
	GrantPermission(userID, permission string) error

	// ListUsers returns all users ordered by login.
	ListUsers() ([]User, error)
}
