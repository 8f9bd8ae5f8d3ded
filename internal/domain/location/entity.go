package location

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
)

// OfficeLocation is a circular geofence managed by administration.
type OfficeLocation struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
	Radius    float64 // meters
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o OfficeLocation) Center() utils.Coordinate {
	return utils.Coordinate{Latitude: o.Latitude, Longitude: o.Longitude}
}
