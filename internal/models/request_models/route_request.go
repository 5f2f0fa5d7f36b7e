package request_models

// RouteRequest is the body of POST /api/routes/optimized.
// Preferences map category names to weights, e.g. {"PARK": 1.5, "MUSEUM": 0}.
type RouteRequest struct {
	StartLat    float64            `json:"startLat"`
	StartLng    float64            `json:"startLng"`
	Minutes     int                `json:"minutes"`
	RouteShape  string             `json:"routeShape"`
	EndLat      *float64           `json:"endLat"`
	EndLng      *float64           `json:"endLng"`
	Preferences map[string]float64 `json:"preferences"`
}
