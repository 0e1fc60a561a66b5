// Package courier contains the Courier aggregate: the delivery person's
// presence and capacity flags, location reports, and lifetime earnings.
package courier
