package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type officeLocationRepository struct {
	db *database.DB
}

func NewOfficeLocationRepository(db *database.DB) location.OfficeLocationRepository {
	return &officeLocationRepository{db: db}
}

// GetActive implements location.OfficeLocationRepository.
func (r *officeLocationRepository) GetActive(ctx context.Context) (location.OfficeLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, latitude, longitude, radius, is_active, created_at, updated_at
		FROM office_locations
		WHERE is_active = TRUE
		ORDER BY created_at DESC
		LIMIT 1
	`

	var o location.OfficeLocation
	err := q.QueryRow(ctx, query).Scan(
		&o.ID, &o.Name, &o.Latitude, &o.Longitude, &o.Radius, &o.IsActive, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return location.OfficeLocation{}, location.ErrNoActiveOfficeLocation
		}
		return location.OfficeLocation{}, fmt.Errorf("failed to get active office location: %w", err)
	}

	return o, nil
}
