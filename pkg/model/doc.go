// Package model defines the database models for modelgate.
//
// This package contains GORM models that map to the modelgate PostgreSQL
// schema.
//
// # Core Models
//
//   - User: authenticated principals with bcrypt password hashes
//   - Permission: per-user named capability grants
//   - Record: the managed CRUD resource, stored in the models table
//
// # Database Schema
//
// The schema is created by the migrations in db/migrations:
//
//   - users: principals and credentials
//   - permissions: (user_id, permission) grants
//   - models: managed records
package model
