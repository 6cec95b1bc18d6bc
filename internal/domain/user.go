package domain

import "time"

// User represents a platform account referenced by ledger entries.
type User struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Image     string
	CreatedAt time.Time
}

// Name joins first and last name, tolerating either being empty.
func (u *User) Name() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// UserMinimal is the snapshot embedded in activity payloads.
type UserMinimal struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Image string `json:"image,omitempty"`
}

// Minimal returns the activity-payload view of the user.
func (u *User) Minimal() UserMinimal {
	return UserMinimal{ID: u.ID, Name: u.Name(), Email: u.Email, Image: u.Image}
}
