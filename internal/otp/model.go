package otp

import "time"

// State is the lifecycle position of a challenge. A challenge is created
// pending, becomes verified exactly once, and is consumed by the password
// reset that spends it. Consumed challenges are dead.
type State string

const (
	StatePending  State = "pending"
	StateVerified State = "verified"
	StateConsumed State = "consumed"
)

// Challenge is a single-use reset code issued for an email address.
// Several pending challenges may coexist for the same email; each is
// addressed by its (email, code) pair.
type Challenge struct {
	Email      string    `json:"email"`
	Code       string    `json:"code"`
	State      State     `json:"state"`
	CreatedAt  time.Time `json:"created_at"`
	VerifiedAt time.Time `json:"verified_at"`
}
