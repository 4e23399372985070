// Package gorm provides GORM-backed implementations of the store
// interfaces defined in pkg/server/store.
package gorm
