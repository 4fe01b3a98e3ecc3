package entity

// User is the authenticated account as stored by the identity store.
type User struct {
	ID       string `json:"id" redis:"id"`
	Username string `json:"username" redis:"username"`

	RankedGames  int `json:"rankedGames" redis:"rankedGames"`
	RankedWins   int `json:"rankedWins" redis:"rankedWins"`
	RankedLosses int `json:"rankedLosses" redis:"rankedLosses"`

	RandomGames  int `json:"randomGames" redis:"randomGames"`
	RandomWins   int `json:"randomWins" redis:"randomWins"`
	RandomLosses int `json:"randomLosses" redis:"randomLosses"`
}

// StatFields returns the counter fields an outcome in a room of kind bumps.
// Private rooms are never rated.
func StatFields(kind RoomKind, outcome Outcome) []string {
	var prefix string

	switch kind {
	case KindCasual:
		prefix = "random"
	case KindRanked:
		prefix = "ranked"
	default:
		return nil
	}

	switch outcome {
	case OutcomeWin:
		return []string{prefix + "Games", prefix + "Wins"}
	case OutcomeLoss:
		return []string{prefix + "Games", prefix + "Losses"}
	case OutcomeDraw:
		return []string{prefix + "Games"}
	default:
		return nil
	}
}
