// Package session carries the identity of a client connection through
// metadata listing calls.
package session

import "github.com/google/uuid"

type Session struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	User          string
	Source        string
}

// New creates a session for a connected user. Source identifies the client
// (application_name or remote address) for logging.
func New(user, source string) *Session {
	return &Session{
		ID:            uuid.New(),
		TransactionID: uuid.New(),
		User:          user,
		Source:        source,
	}
}
