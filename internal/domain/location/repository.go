package location

import "context"

// OfficeLocationRepository is read-only; geofences are managed by administration.
type OfficeLocationRepository interface {
	// GetActive returns the newest active office location or ErrNoActiveOfficeLocation.
	GetActive(ctx context.Context) (OfficeLocation, error)
}
