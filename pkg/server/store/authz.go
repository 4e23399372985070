package store

// AuthzStore abstracts authorization checks.
type AuthzStore interface {
	// UserCan checks if a user holds a named permission.
	UserCan(userID, permission string) bool

	// Permissions returns all permissions held by a user.
	Permissions(userID string) ([]string, error)
}
