package courier

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when creating a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly
	// initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrCourierIsNotReservable is returned when reserving a courier who is
	// offline or already carrying an order.
	ErrCourierIsNotReservable = errs.NewConflictError("courier is not available for assignment")
)

// VehicleType classifies how the courier moves around.
type VehicleType string

const (
	// VehicleBicycle is a pedal bicycle.
	VehicleBicycle VehicleType = "bicycle"
	// VehicleScooter is an electric or kick scooter.
	VehicleScooter VehicleType = "scooter"
	// VehicleMotorcycle is a motorcycle or moped.
	VehicleMotorcycle VehicleType = "motorcycle"
	// VehicleCar is a car.
	VehicleCar VehicleType = "car"
)

// ParseVehicleType converts a wire string into a VehicleType.
func ParseVehicleType(s string) (VehicleType, error) {
	switch vt := VehicleType(s); vt {
	case VehicleBicycle, VehicleScooter, VehicleMotorcycle, VehicleCar:
		return vt, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("vehicleType",
			fmt.Errorf("%q is not a recognized vehicle type", s))
	}
}

// String returns the wire representation of the vehicle type.
func (vt VehicleType) String() string {
	return string(vt)
}

// Courier is the aggregate root for a delivery person. It tracks the
// courier's presence (online) and capacity (available), the last reported
// location, and lifetime earnings.
//
// Availability semantics: isOnline is the courier's own work toggle,
// isAvailable means no active delivery is in progress. A courier can be
// dispatched only while both flags are up; the flags travel through
// Reserve and Release as deliveries start and finish.
type Courier struct {
	id           kernel.UUID
	userID       kernel.UUID
	name         string
	vehicleType  VehicleType
	vehiclePlate string

	isAvailable bool
	isOnline    bool

	location           *kernel.Location
	lastLocationUpdate *time.Time

	totalEarnings   kernel.Money
	totalDeliveries int

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewCourier creates a new Courier. Fresh couriers come up available but
// offline: they start receiving work only after they toggle themselves
// online.
func NewCourier(
	id kernel.UUID,
	userID kernel.UUID,
	name string,
	vehicleType VehicleType,
	vehiclePlate string,
	now time.Time,
) (*Courier, error) {
	courier := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setUserID(userID),
		courier.setName(name),
		courier.setVehicleType(vehicleType),
	); err != nil {
		return nil, err
	}

	courier.vehiclePlate = vehiclePlate
	courier.isAvailable = true
	courier.isOnline = false
	courier.totalEarnings = kernel.ZeroMoney()
	courier.createdAt = now
	courier.updatedAt = now
	return courier, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage.
func RestoreCourier(
	id kernel.UUID,
	userID kernel.UUID,
	name string,
	vehicleType VehicleType,
	vehiclePlate string,
	isAvailable bool,
	isOnline bool,
	location *kernel.Location,
	lastLocationUpdate *time.Time,
	totalEarnings kernel.Money,
	totalDeliveries int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Courier, error) {
	courier := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setUserID(userID),
		courier.setName(name),
		courier.setVehicleType(vehicleType),
	); err != nil {
		return nil, err
	}

	courier.vehiclePlate = vehiclePlate
	courier.isAvailable = isAvailable
	courier.isOnline = isOnline
	courier.location = location
	courier.lastLocationUpdate = lastLocationUpdate
	courier.totalEarnings = totalEarnings
	courier.totalDeliveries = totalDeliveries
	courier.createdAt = createdAt
	courier.updatedAt = updatedAt
	return courier, nil
}

// Validate ensures the Courier instance was properly constructed.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// Reserve marks the courier as busy with a delivery. It fails unless the
// courier is online and available. The persistence layer enforces the same
// condition atomically; this method keeps the in-memory aggregate honest.
func (c *Courier) Reserve(now time.Time) error {
	if !c.isOnline || !c.isAvailable {
		return ErrCourierIsNotReservable
	}

	c.isAvailable = false
	c.updatedAt = now
	return nil
}

// Release frees the courier after a delivery completes or falls through.
func (c *Courier) Release(now time.Time) {
	c.isAvailable = true
	c.updatedAt = now
}

// SetOnline toggles the courier's work shift.
func (c *Courier) SetOnline(online bool, now time.Time) {
	c.isOnline = online
	c.updatedAt = now
}

// SetAvailability toggles the courier's capacity flag directly. Used by the
// courier's own status endpoint; dispatch paths go through Reserve/Release.
func (c *Courier) SetAvailability(available bool, now time.Time) {
	c.isAvailable = available
	c.updatedAt = now
}

// MoveTo records a location report from the courier's device.
func (c *Courier) MoveTo(location kernel.Location, now time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = &location
	at := now
	c.lastLocationUpdate = &at
	c.updatedAt = now
	return nil
}

// AddEarnings credits a completed delivery's payout and bumps the delivery
// counter.
func (c *Courier) AddEarnings(amount kernel.Money, now time.Time) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidError("amount")
	}

	c.totalEarnings = c.totalEarnings.Add(amount)
	c.totalDeliveries++
	c.updatedAt = now
	return nil
}

// IsEqual compares two couriers by identifier.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID { return c.id }

// UserID returns the identifier of the backing user account.
func (c *Courier) UserID() kernel.UUID { return c.userID }

// Name returns the courier's display name.
func (c *Courier) Name() string { return c.name }

// VehicleType returns how the courier moves around.
func (c *Courier) VehicleType() VehicleType { return c.vehicleType }

// VehiclePlate returns the vehicle's plate number, empty for unplated
// vehicles.
func (c *Courier) VehiclePlate() string { return c.vehiclePlate }

// IsAvailable reports whether the courier has no active delivery.
func (c *Courier) IsAvailable() bool { return c.isAvailable }

// IsOnline reports whether the courier is on shift.
func (c *Courier) IsOnline() bool { return c.isOnline }

// Location returns the last reported location, nil if never reported.
func (c *Courier) Location() *kernel.Location { return c.location }

// LastLocationUpdate returns when the location was last reported.
func (c *Courier) LastLocationUpdate() *time.Time { return c.lastLocationUpdate }

// TotalEarnings returns the courier's lifetime earnings.
func (c *Courier) TotalEarnings() kernel.Money { return c.totalEarnings }

// TotalDeliveries returns how many deliveries the courier completed.
func (c *Courier) TotalDeliveries() int { return c.totalDeliveries }

// CreatedAt returns the creation time.
func (c *Courier) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt returns the last mutation time.
func (c *Courier) UpdatedAt() time.Time { return c.updatedAt }

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setVehicleType(vehicleType VehicleType) error {
	if _, err := ParseVehicleType(string(vehicleType)); err != nil {
		return err
	}
	c.vehicleType = vehicleType
	return nil
}
