package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a principal that can authenticate against modelgate.
type User struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Login        string    `gorm:"column:login;not null;unique"`
	PasswordHash []byte    `gorm:"column:password_hash;type:bytea;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
