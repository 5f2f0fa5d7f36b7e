package domain_models

const BreakTypeLunch = "LUNCH"

// ScheduledStop is one timed visit within a sightseeing day.
type ScheduledStop struct {
	Attraction    Attraction `json:"attraction"`
	ArrivalTime   string     `json:"arrivalTime"`
	DepartureTime string     `json:"departureTime"`
	VisitMinutes  int        `json:"visitMinutes"`
	TravelMinutes int        `json:"travelMinutes"`
}

// Break is a pause between visits, currently only lunch.
type Break struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Type            string `json:"type"`
	Suggestion      string `json:"suggestion"`
}

// Schedule is a full sightseeing day: chronologically consistent stops
// and breaks plus the elapsed total.
type Schedule struct {
	Stops        []ScheduledStop `json:"stops"`
	Breaks       []Break         `json:"breaks"`
	TotalMinutes int             `json:"totalMinutes"`
	Polyline     string          `json:"polyline,omitempty"`
}

func NewSchedule() Schedule {
	return Schedule{
		Stops:  []ScheduledStop{},
		Breaks: []Break{},
	}
}
