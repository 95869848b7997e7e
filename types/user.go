package types

import "time"

// User represents an account in the system.
// It contains identity, credentials, and the question reference sets.
type User struct {
	// ID is the unique identifier of the user.
	ID string `json:"id" db:"id"`

	// Username is the unique login name chosen by the user.
	Username string `json:"username" db:"username"`

	// Email is the user's unique email address, used to log in.
	Email string `json:"email" db:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// Questions holds the IDs of questions authored by the user, in the
	// order they were added. Entries are unique.
	Questions []string `json:"questions" db:"-"`

	// Favorites holds the IDs of questions the user liked, in the order
	// they were added. Entries are unique.
	Favorites []string `json:"favorites" db:"-"`

	// CreatedDate is the timestamp when the user account was created.
	CreatedDate time.Time `json:"createdDate" db:"created_date"`
}

// UserProfile is a User with both reference sets expanded into full,
// populated questions. Questions that no longer exist are omitted.
type UserProfile struct {
	ID          string              `json:"id"`
	Username    string              `json:"username"`
	Email       string              `json:"email"`
	Questions   []PopulatedQuestion `json:"questions"`
	Favorites   []PopulatedQuestion `json:"favorites"`
	CreatedDate time.Time           `json:"createdDate"`
}
