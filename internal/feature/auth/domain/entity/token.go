package entity

import "time"

// Token is one entry of a user's session token set.
type Token struct {
	Value    string    // signed token string exactly as handed to the client
	UserID   string    // owning user
	IssuedAt time.Time // insertion order of the set
}
