package location

type OfficeLocationResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
	IsActive  bool    `json:"is_active"`
	UpdatedAt string  `json:"updated_at"`
}

func NewOfficeLocationResponse(o OfficeLocation) OfficeLocationResponse {
	return OfficeLocationResponse{
		ID:        o.ID,
		Name:      o.Name,
		Latitude:  o.Latitude,
		Longitude: o.Longitude,
		Radius:    o.Radius,
		IsActive:  o.IsActive,
		UpdatedAt: o.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
