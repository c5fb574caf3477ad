package players

// ResolvedPlayer is a display name mapped to an MLB player id.
type ResolvedPlayer struct {
	FullName string `json:"fullName"`
	PlayerID int    `json:"playerId"`
}

// Candidate is one result of an upstream name search.
type Candidate struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}
