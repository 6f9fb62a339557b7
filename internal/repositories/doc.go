// Package repositories implements SQLite persistence for the development backend.
//
// Key Implementations:
//   - [UserRepository] : Account persistence with username and email lookups
//   - [FavoriteRepository] : Append-only favorites per user, newest first
//   - [SessionRepository] : Opaque session tokens mapped to users
//
// Schema lives in shared's embedded migrations. Constraint violations surface as [ErrDuplicate]
// and missing rows as [ErrNotFound] so handlers can map them to status codes with [errors.Is].
package repositories
