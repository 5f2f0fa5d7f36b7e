package request_models

// SightseeingRequest is the body of POST /api/routes/sightseeing.
// Times are "HH:MM" clock strings.
type SightseeingRequest struct {
	StartLat          float64            `json:"startLat"`
	StartLng          float64            `json:"startLng"`
	StartTime         string             `json:"startTime"`
	EndTime           string             `json:"endTime"`
	Preferences       map[string]float64 `json:"preferences"`
	IncludeLunchBreak bool               `json:"includeLunchBreak"`
}
