package domain

// Member is a read-only view of another participant, as listed in a welcome.
type Member struct {
	ID       ConnectionID `json:"id"`
	Nickname string       `json:"nickname"`
}
