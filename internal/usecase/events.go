package usecase

// Outbound event names delivered through the notifier.
const (
	EventPreInit         = "preInit"
	EventInit            = "init"
	EventGameState       = "gameState"
	EventFirstMoveOffset = "firstMoveOffset"
	EventDrawOffer       = "drawOffer"
	EventInvalidMove     = "invalidMove"
	EventJoinError       = "joinError"
	EventUser            = "user"
)

// PreInitPayload acknowledges a created room (with its code) or a queued
// matchmaking request (without one).
type PreInitPayload struct {
	Code string `json:"code,omitempty"`
}

type ErrorPayload struct {
	Reason string `json:"reason"`
}

type DrawOfferPayload struct {
	Slot int `json:"slot"`
}
