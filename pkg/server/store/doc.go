// Package store provides storage abstractions for the modelgate server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints to be decoupled from the specific database implementation.
// This enables easier testing with mocks and potential support for different
// storage backends.
//
// # Available Stores
//
//   - RecordsStore: CRUD operations on the managed records
//   - AuthzStore: per-user permission checks
//   - UsersStore: principal lookup and credential verification
//
// # Usage
//
//	records := gorm.NewRecordsStore(db)
//	record, err := records.FetchRecord(id)
//	if err != nil {
//	    if errors.Is(err, store.ErrRecordNotFound) {
//	        // Handle not found
//	    }
//	}
package store
