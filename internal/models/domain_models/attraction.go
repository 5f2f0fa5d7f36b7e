package domain_models

// Attraction decorates a POI with sightseeing-specific derived fields.
// Both are computed from the wrapped POI when the attraction is built;
// the importance score may be rewritten by preference boosting.
type Attraction struct {
	POI
	ImportanceScore int `json:"importanceScore"`
	VisitMinutes    int `json:"visitMinutes"`
}
