package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record is the managed resource. Both columns are required; a persisted
// record never has an empty column.
type Record struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Col1      string    `gorm:"column:col1;not null"`
	Col2      string    `gorm:"column:col2;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Record) TableName() string {
	return "models"
}

func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
