package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine with defined transitions to ensure orders follow the correct
// business workflow.
//
// State transitions:
//
//	pending ──> confirmed ──> preparing ──> ready ──> on_delivery ──> delivering_confirmation ──> delivered
//	    │            │             │           │            │                            │
//	    └────────────┴─────────────┴───────────┴────────────┴──> cancelled <─────────────┘
//
// Actor-requested transitions may only move forward along the chain (skipping
// intermediate states is allowed, which is how an operator force-completes an
// order), or to cancelled from any non-terminal state. The
// delivering_confirmation state is never set through a requested transition:
// it is reachable only through the delivery confirmation handshake.
type Status string

const (
	// StatusPending is the initial state of a freshly created order.
	StatusPending Status = "pending"
	// StatusConfirmed means the restaurant accepted the order.
	StatusConfirmed Status = "confirmed"
	// StatusPreparing means the kitchen is working on the order.
	StatusPreparing Status = "preparing"
	// StatusReady means the order is ready for pickup by a courier.
	StatusReady Status = "ready"
	// StatusOnDelivery means a courier is carrying the order.
	StatusOnDelivery Status = "on_delivery"
	// StatusDeliveringConfirmation means the courier marked the order as
	// delivered and the customer has not yet confirmed receipt.
	StatusDeliveringConfirmation Status = "delivering_confirmation"
	// StatusDelivered is the successful terminal state. Reached when the
	// customer confirms receipt, or when an operator forces completion.
	StatusDelivered Status = "delivered"
	// StatusCancelled is the unsuccessful terminal state.
	StatusCancelled Status = "cancelled"
)

// statusRanks orders the forward chain. Cancelled is deliberately absent:
// it is reachable from any non-terminal state, not by rank.
func statusRanks() map[Status]int {
	return map[Status]int{
		StatusPending:                1,
		StatusConfirmed:              2,
		StatusPreparing:              3,
		StatusReady:                  4,
		StatusOnDelivery:             5,
		StatusDeliveringConfirmation: 6,
		StatusDelivered:              7,
	}
}

// ParseStatus converts a wire string into a Status. Unrecognized values fail
// with a validation error, leaving the caller's order untouched.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
		StatusOnDelivery, StatusDeliveringConfirmation, StatusDelivered, StatusCancelled:
		return st, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a recognized status", s))
	}
}

// Validate checks that the Status value belongs to the recognized set.
func (s Status) Validate() error {
	if _, ok := statusRanks()[s]; !ok && s != StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a recognized status", string(s)))
	}
	return nil
}

// IsTerminal reports whether the status is a final state.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// TransitionTo validates an actor-requested transition from s to target.
//
// Rules:
//   - target must be a recognized status
//   - delivering_confirmation cannot be requested; only the confirmation
//     handshake sets it
//   - cancelled is reachable from any non-terminal state
//   - every other move must go strictly forward along the chain
//
// Returns the target status on success.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}

	if s.IsTerminal() {
		return "", errs.NewInvalidStateErrorWithCause("status",
			fmt.Errorf("%s is a terminal status", string(s)))
	}

	if target == StatusCancelled {
		return StatusCancelled, nil
	}

	if target == StatusDeliveringConfirmation {
		return "", errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is set by the delivery confirmation handshake only", string(target)))
	}

	if statusRanks()[target] <= statusRanks()[s] {
		return "", errs.NewInvalidStateErrorWithCause("status",
			fmt.Errorf("cannot move from %s back to %s", string(s), string(target)))
	}

	return target, nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	return string(s)
}
