// Package models defines the data shapes shared by the session and file stores.
//
// JSON tags match the durable storage layout, so records written by one
// process can be read back by another.
package models

// Identity is the authenticated user record held for the session.
// It is immutable once created.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
