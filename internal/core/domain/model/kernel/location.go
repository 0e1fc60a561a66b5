package kernel

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	// LocationMinLatitude is the minimum valid latitude in degrees.
	LocationMinLatitude = -90.0
	// LocationMaxLatitude is the maximum valid latitude in degrees.
	LocationMaxLatitude = 90.0
	// LocationMinLongitude is the minimum valid longitude in degrees.
	LocationMinLongitude = -180.0
	// LocationMaxLongitude is the maximum valid longitude in degrees.
	LocationMaxLongitude = 180.0
)

// ErrLocationIsNotConstructed is returned when attempting to use an
// improperly initialized Location. Locations must be created via NewLocation.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is an immutable WGS84 coordinate pair. The system records courier
// location snapshots for order tracking; it performs no routing or distance
// computation on them.
//
// The zero value is invalid and fails validation; use NewLocation.
//
// Example:
//
//	loc, err := kernel.NewLocation(19.4326, -99.1332)
//	if err != nil {
//	    // handle out-of-range coordinates
//	}
type Location struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewLocation creates a Location with the given coordinates. Latitude must be
// within [-90, 90] and longitude within [-180, 180]; out-of-range values
// produce a validation error.
func NewLocation(latitude, longitude float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if latitude < LocationMinLatitude || latitude > LocationMaxLatitude {
		return Location{}, errs.NewValueIsOutOfRangeError(
			"latitude", latitude, LocationMinLatitude, LocationMaxLatitude)
	}
	if longitude < LocationMinLongitude || longitude > LocationMaxLongitude {
		return Location{}, errs.NewValueIsOutOfRangeError(
			"longitude", longitude, LocationMinLongitude, LocationMaxLongitude)
	}

	loc.latitude = latitude
	loc.longitude = longitude
	return loc, nil
}

// Latitude returns the latitude in degrees.
func (l Location) Latitude() float64 {
	return l.latitude
}

// Longitude returns the longitude in degrees.
func (l Location) Longitude() float64 {
	return l.longitude
}

// IsEqual compares two locations coordinate by coordinate.
func (l Location) IsEqual(other Location) bool {
	return l.latitude == other.latitude && l.longitude == other.longitude
}

// String returns the location as "lat,lon".
func (l Location) String() string {
	return fmt.Sprintf("%f,%f", l.latitude, l.longitude)
}

// Validate ensures the Location was created through NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}
