package domain

import "time"

// Admin is a back-office reviewer. The core never authenticates admins
// itself; it records the admin id handed to it as the actor of a transition.
type Admin struct {
	ID           int32     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedOn    time.Time `json:"created_on"`
}
