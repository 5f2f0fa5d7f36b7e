package domain_models

// RouteShape selects the planning algorithm.
type RouteShape string

const (
	ShapeLoop         RouteShape = "LOOP"
	ShapeOneWay       RouteShape = "ONE_WAY"
	ShapePointToPoint RouteShape = "POINT_TO_POINT"
)

// ParseRouteShape resolves a shape name; unknown names fall back to LOOP.
func ParseRouteShape(name string) RouteShape {
	switch RouteShape(name) {
	case ShapeLoop, ShapeOneWay, ShapePointToPoint:
		return RouteShape(name)
	}
	return ShapeLoop
}

// UserPreferences holds the requested route shape, the optional end
// coordinate, and per-category weights. Weight 0 excludes a category,
// 1.0 is neutral, >1 boosts.
type UserPreferences struct {
	RouteShape      RouteShape
	EndLat          *float64
	EndLng          *float64
	CategoryWeights map[POICategory]float64
}

// NewUserPreferences starts every category at the neutral weight.
func NewUserPreferences() *UserPreferences {
	weights := make(map[POICategory]float64)
	for _, category := range AllCategories() {
		weights[category] = 1.0
	}
	return &UserPreferences{
		RouteShape:      ShapeLoop,
		CategoryWeights: weights,
	}
}

func (p *UserPreferences) HasEndPoint() bool {
	return p.EndLat != nil && p.EndLng != nil
}

func (p *UserPreferences) CategoryWeight(category POICategory) float64 {
	if w, ok := p.CategoryWeights[category]; ok {
		return w
	}
	return 1.0
}

func (p *UserPreferences) SetCategoryWeight(category POICategory, weight float64) {
	p.CategoryWeights[category] = weight
}

// HasCustomPreferences reports whether any weight deviates from neutral.
func (p *UserPreferences) HasCustomPreferences() bool {
	for _, w := range p.CategoryWeights {
		if w != 1.0 {
			return true
		}
	}
	return false
}

// BoostedCategories returns the categories with weight above neutral.
func (p *UserPreferences) BoostedCategories() map[POICategory]float64 {
	boosted := make(map[POICategory]float64)
	for category, w := range p.CategoryWeights {
		if w > 1.0 {
			boosted[category] = w
		}
	}
	return boosted
}
