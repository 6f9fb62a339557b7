// Package models defines domain entities for the bookx client and its development backend.
//
// The package contains two categories of types:
//
// 1. Value objects exchanged with the book service
//   - [Book] : Recommendation result with title, author, and publication [Year]
//   - [RecommendationSet] : One successful recommend call, replacing any prior set
//   - [Favorite] : Favorites entry keyed by title with an [Timestamp] added date
//
// Titles are the natural key for books; there is no other identity.
//
// 2. Persistent entities used by the development backend
//   - [User] : Account with bcrypt password hash
//   - [StoredFavorite] : Favorites row owned by a user
//
// Persistent entities implement [Model]; the [Repository] interface defines the shared access operations.
package models
