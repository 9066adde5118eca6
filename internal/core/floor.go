package core

import "github.com/dkeye/radiolink/internal/domain"

type FloorState int

const (
	FloorFree FloorState = iota
	FloorHeld
)

func (s FloorState) String() string {
	if s == FloorHeld {
		return "held"
	}
	return "free"
}

// Floor is the per-channel speak mutex. It is not safe for concurrent use;
// Channel serializes access to it.
type Floor struct {
	holder domain.ConnectionID
}

func (f *Floor) State() FloorState {
	if f.holder == "" {
		return FloorFree
	}
	return FloorHeld
}

func (f *Floor) Holder() (domain.ConnectionID, bool) {
	return f.holder, f.holder != ""
}

// Request grants the floor only when it is free. A repeated request by the
// holder and a request while someone else holds it both return false.
func (f *Floor) Request(id domain.ConnectionID) bool {
	if f.holder != "" || id == "" {
		return false
	}
	f.holder = id
	return true
}

// Release frees the floor if id holds it.
func (f *Floor) Release(id domain.ConnectionID) bool {
	if f.holder == "" || f.holder != id {
		return false
	}
	f.holder = ""
	return true
}
