// Package services contains stateless domain services that span aggregates.
// PricingService turns order lines and adjustments into the frozen
// financial snapshot stored on the order.
package services
