// Package models defines the core data structures for users and the
// resources they own: tasks, activities and meals, plus the shared
// ingredient catalog.
package models

import "time"

// DateLayout is the wire format of every calendar date field.
const DateLayout = "2006-01-02"

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id" bson:"_id"`
	// Username is the login name chosen by the user.
	Username string `json:"username" bson:"username"`
	// Email is the user's unique email address.
	Email string `json:"email" bson:"email"`
	// PasswordHash is the hashed password of the user.
	PasswordHash []byte `json:"-" bson:"passwordHash"`
	// CreatedAt is when the account was created.
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Owned is implemented by every document stored in an owner-scoped
// collection.
type Owned interface {
	// DocumentID returns the document's id.
	DocumentID() string
	// SetDocumentID assigns the document's id.
	SetDocumentID(id string)
	// OwnerID returns the id of the owning user.
	OwnerID() string
	// StampCreated sets the creation date to now if it is unset.
	StampCreated(now time.Time)
}

// FormatDate renders t in DateLayout, or "" for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

// ParseDate parses a DateLayout string as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
