package statemachine

import (
	"errors"
	"strings"

	"pizza-deprizza/models"
)

// Transition defines a valid state change and who usually performs it
type Transition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	Actor string             `json:"actor"` // "kitchen" or "counter"
}

// validTransitions is the authoritative state machine definition. Statuses only
// move forward; staff may skip intermediate steps. Completed and delivered
// orders are finished and never move again.
var validTransitions = buildTransitions()

func buildTransitions() []Transition {
	var ts []Transition
	for i, from := range models.AllStatuses {
		if !from.IsActive() {
			continue
		}
		for _, to := range models.AllStatuses[i+1:] {
			ts = append(ts, Transition{From: from, To: to, Actor: actorFor(to)})
		}
	}
	return ts
}

func actorFor(to models.OrderStatus) string {
	if to == models.StatusCompleted || to == models.StatusDelivered {
		return "counter"
	}
	return "kitchen"
}

type transitionKey struct {
	From models.OrderStatus
	To   models.OrderStatus
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks whether an order may move from one state to another
func CanTransition(from, to models.OrderStatus) error {
	if !to.IsKnown() {
		return errors.New("unknown status '" + string(to) + "'")
	}
	if transitionMap[transitionKey{From: from, To: to}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " → " + string(to) + " is not allowed. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}

// TerminalStates are the statuses with no outgoing transition.
func TerminalStates() []models.OrderStatus {
	var out []models.OrderStatus
	for _, s := range models.AllStatuses {
		if len(ValidTransitionsFrom(s)) == 0 {
			out = append(out, s)
		}
	}
	return out
}
