package statemachine

import (
	"errors"

	"tomato-client/models"
)

// Actors that move orders forward.
const (
	ActorSeller = "seller"
	ActorRider  = "rider"
)

// Transition defines a forward state change and who performs it. The backend
// owns enforcement; this table only drives which action button each dashboard
// offers next.
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string // ActorSeller or ActorRider
}

// forwardChain is the strictly forward-moving order lifecycle. No reverse
// transition exists anywhere in the UI.
var forwardChain = []Transition{
	// Seller side: accept, prepare, hand over to a rider
	{From: models.StatusPlaced, To: models.StatusAccepted, Actor: ActorSeller},
	{From: models.StatusAccepted, To: models.StatusPreparing, Actor: ActorSeller},
	{From: models.StatusPreparing, To: models.StatusReadyForRider, Actor: ActorSeller},
	// Rider side: pick up, ride, deliver
	{From: models.StatusReadyForRider, To: models.StatusPickedUp, Actor: ActorRider},
	{From: models.StatusPickedUp, To: models.StatusOnTheWay, Actor: ActorRider},
	{From: models.StatusOnTheWay, To: models.StatusDelivered, Actor: ActorRider},
}

type transitionKey struct {
	From  models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) next-state resolution
var nextByActor = func() map[transitionKey]models.OrderStatus {
	m := make(map[transitionKey]models.OrderStatus)
	for _, t := range forwardChain {
		m[transitionKey{t.From, t.Actor}] = t.To
	}
	return m
}()

// NextStatus returns the transition an actor may offer from the given status,
// or false when the actor has no move (the dashboard renders no button then).
func NextStatus(status models.OrderStatus, actor string) (models.OrderStatus, bool) {
	next, ok := nextByActor[transitionKey{status, actor}]
	return next, ok
}

// CanAdvance checks whether the actor's requested transition is the one the
// chain offers. Used to fail fast before bothering the backend; the backend
// still has the final say.
func CanAdvance(from, to models.OrderStatus, actor string) error {
	next, ok := NextStatus(from, actor)
	if !ok {
		return errors.New("no transition available from '" + string(from) + "' for " + actor)
	}
	if next != to {
		return errors.New("invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for " + actor + "; next is '" + string(next) + "'")
	}
	return nil
}

// AllTransitions returns the full forward chain for documentation endpoints.
func AllTransitions() []Transition {
	return forwardChain
}
