package gorm

import (
	"gorm.io/gorm"

	"github.com/modelgate/modelgate/pkg/model"
	"github.com/modelgate/modelgate/pkg/server/store"
)

// Ensure RecordsStore implements store.RecordsStore
var _ store.RecordsStore = (*RecordsStore)(nil)

// RecordsStore implements store.RecordsStore using GORM.
type RecordsStore struct {
	db *gorm.DB
}

// NewRecordsStore creates a new RecordsStore.
func NewRecordsStore(db *gorm.DB) *RecordsStore {
	return &RecordsStore{db: db}
}

// ListRecords returns all records, newest first.
func (s *RecordsStore) ListRecords() ([]store.Record, error) {
	var records []model.Record
	if err := s.db.Order("created_at desc").Find(&records).Error; err != nil {
		return nil, err
	}

	out := make([]store.Record, 0, len(records))
	for _, r := range records {
		out = append(out, toStoreRecord(&r))
	}
	return out, nil
}

// FetchRecord retrieves a record by id.
func (s *RecordsStore) FetchRecord(id string) (*store.Record, error) {
	var record model.Record
	tx := s.db.Where("id = ?", id).First(&record)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrRecordNotFound
		}
		return nil, tx.Error
	}

	out := toStoreRecord(&record)
	return &out, nil
}

// CreateRecord persists a new record.
func (s *RecordsStore) CreateRecord(col1, col2 string) (*store.Record, error) {
	record := model.Record{
		Col1: col1,
		Col2: col2,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}

	out := toStoreRecord(&record)
	return &out, nil
}

// UpdateRecord mutates both columns of an existing record.
func (s *RecordsStore) UpdateRecord(id, col1, col2 string) (*store.Record, error) {
	var record model.Record
	tx := s.db.Where("id = ?", id).First(&record)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrRecordNotFound
		}
		return nil, tx.Error
	}

	updates := map[string]interface{}{"col1": col1, "col2": col2}
	if err := s.db.Model(&record).Updates(updates).Error; err != nil {
		return nil, err
	}

	record.Col1 = col1
	record.Col2 = col2
	out := toStoreRecord(&record)
	return &out, nil
}

// DeleteRecord removes a record.
func (s *RecordsStore) DeleteRecord(id string) error {
	tx := s.db.Where("id = ?", id).Delete(&model.Record{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrRecordNotFound
	}
	return nil
}

func toStoreRecord(r *model.Record) store.Record {
	return store.Record{
		ID:        r.ID,
		Col1:      r.Col1,
		Col2:      r.Col2,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
