package room

import "github.com/google/uuid"

// Member is a person connected to a room. Every member may operate zones;
// the host also starts games.
type Member struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// NewMember creates a member with a fresh ID.
func NewMember(nickname string) *Member {
	return &Member{
		ID:       uuid.New().String(),
		Nickname: nickname,
	}
}
