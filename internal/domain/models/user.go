package models

import "time"

// User is the minimal persisted shape of a project owner or member.
// Identity management lives elsewhere; this table only has to answer
// "does this user exist" for filters and membership.
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
