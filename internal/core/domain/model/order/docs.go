// Package order contains the Order aggregate: the customer's purchase, its
// frozen financial snapshot, the delivery state machine with its append-only
// status history, and the two-step delivery confirmation handshake.
package order
