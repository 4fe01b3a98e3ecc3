package entity

// Player is a live connection bound to a room slot. ID identifies the
// connection, UserID the authenticated account (empty for guests).
type Player struct {
	ID     string `json:"-"`
	Name   string `json:"name"`
	UserID string `json:"userId,omitempty"`
	Slot   int    `json:"slot"`
}

func (that Player) IsGuest() bool {
	return that.UserID == ""
}
