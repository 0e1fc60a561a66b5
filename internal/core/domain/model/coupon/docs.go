// Package coupon contains the Coupon aggregate: promotional codes with a
// validity window, usage limits, restaurant scoping, and percentage or
// fixed discounts.
package coupon
