package gorm

import (
	"gorm.io/gorm"

	"github.com/modelgate/modelgate/pkg/model"
	"github.com/modelgate/modelgate/pkg/server/store"
)

// Ensure AuthzStore implements store.AuthzStore
var _ store.AuthzStore = (*AuthzStore)(nil)

// AuthzStore implements store.AuthzStore using GORM.
type AuthzStore struct {
	db *gorm.DB
}

// NewAuthzStore creates a new AuthzStore.
func NewAuthzStore(db *gorm.DB) *AuthzStore {
	return &AuthzStore{db: db}
}

// UserCan checks if a user holds a named permission.
func (s *AuthzStore) UserCan(userID, permission string) bool {
	var count int64
	s.db.Model(&model.Permission{}).
		Where("user_id = ? AND permission = ?", userID, permission).
		Count(&count)
	return count > 0
}

// Permissions returns all permissions held by a user.
func (s *AuthzStore) Permissions(userID string) ([]string, error) {
	var permissions []string
	err := s.db.Model(&model.Permission{}).
		Where("user_id = ?", userID).
		Order("permission").
		Pluck("permission", &permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}
