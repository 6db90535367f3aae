package enums

import "fmt"

// DriverStatus is the typed availability state for drivers. Availability is
// always updated through the drivers repository with these values; there is
// no raw-SQL path.
type DriverStatus string

const (
	DriverStatusAvailable DriverStatus = "available"
	DriverStatusOnRoute   DriverStatus = "on_route"
	DriverStatusOffline   DriverStatus = "offline"
)

var validDriverStatuses = []DriverStatus{
	DriverStatusAvailable,
	DriverStatusOnRoute,
	DriverStatusOffline,
}

// String implements fmt.Stringer.
func (d DriverStatus) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DriverStatus.
func (d DriverStatus) IsValid() bool {
	for _, candidate := range validDriverStatuses {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDriverStatus converts raw input into a DriverStatus.
func ParseDriverStatus(value string) (DriverStatus, error) {
	for _, candidate := range validDriverStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid driver status %q", value)
}
