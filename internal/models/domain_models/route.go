package domain_models

// Route is an ordered walking route. Totals always match the POI list;
// warnings may be appended during construction only.
type Route struct {
	Points     []POI    `json:"points"`
	TotalScore float64  `json:"totalScore"`
	TotalTime  int      `json:"totalTime"`
	Polyline   string   `json:"polyline"`
	Warnings   []string `json:"warnings"`
}

func NewRoute(points []POI, totalScore float64, totalTime int, polyline string) Route {
	return Route{
		Points:     points,
		TotalScore: totalScore,
		TotalTime:  totalTime,
		Polyline:   polyline,
		Warnings:   []string{},
	}
}

func EmptyRoute() Route {
	return NewRoute([]POI{}, 0, 0, "")
}

func (r *Route) AddWarning(warning string) {
	r.Warnings = append(r.Warnings, warning)
}
