package pubsub

import "time"

// AuthEvent describes a change in a visitor's signed-in state.
type AuthEvent struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	At        time.Time `json:"at"`
}

var (
	UserSignedUp  = NewEvent[AuthEvent]("auth.user.signed_up")
	UserSignedIn  = NewEvent[AuthEvent]("auth.user.signed_in")
	UserSignedOut = NewEvent[AuthEvent]("auth.user.signed_out")
)
