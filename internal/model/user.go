package model

import "time"

// User is an account holder. Scope defaults to customer; seeded shop
// operators carry the operator scope.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Scope     Scope     `json:"scope"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Credential is the password-holding record for a user. The ID is a random
// UUID rather than a sequence so credential identifiers are not enumerable.
// Password always holds the "salt:derivedKey" form, never plaintext.
type Credential struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
