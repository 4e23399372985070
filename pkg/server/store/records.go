package store

import (
	"errors"
	"time"
)

// ErrRecordNotFound is returned when a record doesn't exist.
var ErrRecordNotFound = errors.New("record not found")

// Record represents a managed record.
type Record struct {
	ID        string
	Col1      string
	Col2      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordsStore abstracts record persistence.
type RecordsStore interface {
	// ListRecords returns all records, newest first.
	ListRecords() ([]Record, error)

	// FetchRecord retrieves a record by id.
	// Returns ErrRecordNotFound if the record doesn't exist.
	FetchRecord(id string) (*Record, error)

	// CreateRecord persists a new record and returns it with its
	// server-generated id.
	CreateRecord(col1, col2 string) (*Record, error)

	// UpdateRecord mutates both columns of an existing record.
	// Returns ErrRecordNotFound if the record doesn't exist.
	UpdateRecord(id, col1, col2 string) (*Record, error)

	// DeleteRecord removes a record.
	// Returns ErrRecordNotFound if the record doesn't exist.
	DeleteRecord(id string) error
}
