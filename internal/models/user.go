package models

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 6

var (
	_ Model = (*User)(nil)
	_ Model = (*StoredFavorite)(nil)
)

// User is an account on the development backend.
type User struct {
	id           string
	username     string
	email        string
	passwordHash string
	createdAt    time.Time
}

// NewUser creates a user without an ID; repositories assign one on insert.
func NewUser(username, email, passwordHash string) *User {
	return &User{
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    time.Now().UTC(),
	}
}

func (u *User) ID() string           { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }

func (u *User) SetID(id string)             { u.id = id }
func (u *User) SetCreatedAt(t time.Time)    { u.createdAt = t }
func (u *User) SetPasswordHash(hash string) { u.passwordHash = hash }

// Validate checks the required fields and email shape.
func (u *User) Validate() error {
	if strings.TrimSpace(u.username) == "" {
		return fmt.Errorf("username is required")
	}
	if _, err := mail.ParseAddress(u.email); err != nil {
		return fmt.Errorf("invalid email %q", u.email)
	}
	if u.passwordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	return nil
}

// StoredFavorite is a persisted favorites row.
type StoredFavorite struct {
	id        string
	userID    string
	title     string
	createdAt time.Time
}

// NewStoredFavorite creates a favorites row for userID added now.
func NewStoredFavorite(userID, title string) *StoredFavorite {
	return &StoredFavorite{userID: userID, title: title, createdAt: time.Now().UTC()}
}

func (f *StoredFavorite) ID() string           { return f.id }
func (f *StoredFavorite) UserID() string       { return f.userID }
func (f *StoredFavorite) Title() string        { return f.title }
func (f *StoredFavorite) CreatedAt() time.Time { return f.createdAt }

func (f *StoredFavorite) SetID(id string)          { f.id = id }
func (f *StoredFavorite) SetCreatedAt(t time.Time) { f.createdAt = t }

func (f *StoredFavorite) Validate() error {
	if f.userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if strings.TrimSpace(f.title) == "" {
		return fmt.Errorf("book title is required")
	}
	return nil
}

// Favorite projects the row into the wire value.
func (f *StoredFavorite) Favorite() Favorite {
	return Favorite{
		Title:   f.title,
		AddedAt: Timestamp{Time: f.createdAt, Raw: f.createdAt.Format("2006-01-02 15:04:05")},
	}
}
