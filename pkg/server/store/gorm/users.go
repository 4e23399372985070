package gorm

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/modelgate/modelgate/pkg/model"
	"github.com/modelgate/modelgate/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM.
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore.
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// FetchUser retrieves a user by id.
func (s *UsersStore) FetchUser(id string) (*store.User, error) {
	var user model.User
	tx := s.db.Where("id = ?", id).First(&user)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrUserNotFound
		}
		return nil, tx.Error
	}
	return &store.User{ID: user.ID, Login: user.Login}, nil
}

// FetchUserByLogin retrieves a user by login.
func (s *UsersStore) FetchUserByLogin(login string) (*store.User, error) {
	var user model.User
	tx := s.db.Where("login = ?", login).First(&user)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrUserNotFound
		}
		return nil, tx.Error
	}
	return &store.User{ID: user.ID, Login: user.Login}, nil
}

// Authenticate verifies a login/password pair.
func (s *UsersStore) Authenticate(login string, password []byte) (*store.User, error) {
	var user model.User
	tx := s.db.Where("login = ?", login).First(&user)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrUserNotFound
		}
		return nil, tx.Error
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, password); err != nil {
		return nil, store.ErrInvalidCredentials
	}

	return &store.User{ID: user.ID, Login: user.Login}, nil
}

// CreateUser persists a new user with a hashed password.
func (s *UsersStore) CreateUser(login string, password []byte) (*store.User, error) {
	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Login:        login,
		PasswordHash: hash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &store.User{ID: user.ID, Login: user.Login}, nil
}

// GrantPermission grants a named permission to a user.
func (s *UsersStore) GrantPermission(userID, permission string) error {
	grant := model.Permission{
		UserID:     userID,
		Permission: permission,
	}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&grant).Error
}

// ListUsers returns all users ordered by login.
func (s *UsersStore) ListUsers() ([]store.User, error) {
	var users []model.User
	if err := s.db.Order("login").Find(&users).Error; err != nil {
		return nil, err
	}

	out := make([]store.User, 0, len(users))
	for _, u := range users {
		out = append(out, store.User{ID: u.ID, Login: u.Login})
	}
	return out, nil
}
