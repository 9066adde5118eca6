// Package domain contains entity without logic, just meta-data
package domain

import "github.com/google/uuid"

// ConnectionID identifies one live signaling connection.
// A fresh one is minted per accepted connection and never reused.
type ConnectionID string

func NewConnectionID() ConnectionID {
	return ConnectionID(uuid.NewString())
}

// Participant is a connection that has joined a channel.
type Participant struct {
	ID       ConnectionID
	Nickname string
	Channel  ChannelCode
}
