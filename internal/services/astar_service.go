package services

import (
	"container/heap"
	"context"
	"fmt"
	"math"
	"sort"

	"walkabout/internal/models/domain_models"
	"walkabout/pkg/utils"
)

const (
	astarPoolSize      = 20
	astarMaxIterations = 100000
	astarDwellMinutes  = 5

	// Average urban walking pace in meters per minute.
	walkMetersPerMinute = 83.0
)

// AStarService plans point-to-point routes: maximize visited POIs between
// a fixed start and end without exceeding the time budget. Search runs on
// straight-line estimates; the returned route carries provider times.
type AStarService struct {
	travel TravelService
}

func NewAStarService(travel TravelService) *AStarService {
	return &AStarService{travel: travel}
}

type searchNode struct {
	name  string
	lat   float64
	lng   float64
	score float64
	isEnd bool
}

func (n searchNode) key() string {
	return fmt.Sprintf("%s|%.6f|%.6f", n.name, n.lat, n.lng)
}

type searchState struct {
	node     searchNode
	elapsed  int
	poiCount int
	score    float64
	estimate int
	path     []searchNode
	visited  map[string]bool
}

// Lower projected finish wins; ties prefer more POIs, then higher score.
type stateQueue []*searchState

func (q stateQueue) Len() int { return len(q) }
func (q stateQueue) Less(i, j int) bool {
	if q[i].estimate != q[j].estimate {
		return q[i].estimate < q[j].estimate
	}
	if q[i].poiCount != q[j].poiCount {
		return q[i].poiCount > q[j].poiCount
	}
	return q[i].score > q[j].score
}
func (q stateQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *stateQueue) Push(x any)         { *q = append(*q, x.(*searchState)) }
func (q *stateQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

func (s *AStarService) FindRoute(
	ctx context.Context,
	startLat, startLng, endLat, endLng float64,
	minutes int,
	pois []domain_models.POI,
	preferences *domain_models.UserPreferences,
	guaranteed []domain_models.POI,
) (domain_models.Route, error) {
	start := searchNode{name: "START", lat: startLat, lng: startLng}
	end := searchNode{name: "END", lat: endLat, lng: endLng, isEnd: true}
	candidates := buildSearchPool(pois, preferences, guaranteed)
	candidates = append(candidates, end)

	best := s.search(start, end, candidates, minutes)
	if best == nil || len(best.path) < 2 {
		return domain_models.EmptyRoute(), nil
	}

	// Drop the START and END markers and map back to the original POIs.
	var points []domain_models.POI
	totalScore := 0.0
	for _, node := range best.path[1 : len(best.path)-1] {
		if poi, ok := findPOI(pois, node.name, node.lat, node.lng); ok {
			points = append(points, poi)
			totalScore += poi.Score
		}
	}

	polyline, err := s.travel.PolylinePointToPoint(ctx, startLat, startLng, endLat, endLng, points)
	if err != nil {
		return domain_models.EmptyRoute(), err
	}

	totalTime, err := s.actualTime(ctx, startLat, startLng, endLat, endLng, points)
	if err != nil {
		return domain_models.EmptyRoute(), err
	}

	return domain_models.NewRoute(points, totalScore, totalTime, polyline), nil
}

func (s *AStarService) search(start, end searchNode, candidates []searchNode, minutes int) *searchState {
	pq := &stateQueue{}
	heap.Init(pq)
	heap.Push(pq, &searchState{
		node:     start,
		estimate: heuristicMinutes(start, end),
		path:     []searchNode{start},
		visited:  map[string]bool{},
	})

	// States collapse on (node, poiCount): a later arrival with the same
	// count never beats an earlier one out of this queue.
	closed := make(map[string]bool)

	var best *searchState
	for iterations := 0; pq.Len() > 0 && iterations < astarMaxIterations; iterations++ {
		current := heap.Pop(pq).(*searchState)

		// Every END arrival competes for the answer; the closed set only
		// collapses interior states, or later arrivals with a better score
		// would never be compared.
		if current.node.isEnd {
			if current.elapsed <= minutes && (best == nil || betterState(current, best)) {
				best = current
			}
			continue
		}

		stateKey := fmt.Sprintf("%s|%d", current.node.key(), current.poiCount)
		if closed[stateKey] {
			continue
		}
		closed[stateKey] = true

		for _, next := range candidates {
			if !next.isEnd && current.visited[next.key()] {
				continue
			}

			dwell := astarDwellMinutes
			if next.isEnd {
				dwell = 0
			}
			elapsed := current.elapsed + edgeMinutes(current.node, next) + dwell
			remaining := heuristicMinutes(next, end)
			if elapsed+remaining > minutes {
				continue
			}

			poiCount := current.poiCount
			score := current.score
			if !next.isEnd {
				poiCount++
				score += next.score
			}
			if !next.isEnd && closed[fmt.Sprintf("%s|%d", next.key(), poiCount)] {
				continue
			}

			path := make([]searchNode, len(current.path), len(current.path)+1)
			copy(path, current.path)
			visited := make(map[string]bool, len(current.visited)+1)
			for k := range current.visited {
				visited[k] = true
			}
			visited[next.key()] = true

			heap.Push(pq, &searchState{
				node:     next,
				elapsed:  elapsed,
				poiCount: poiCount,
				score:    score,
				estimate: elapsed + remaining,
				path:     append(path, next),
				visited:  visited,
			})
		}
	}

	return best
}

// betterState prefers more POIs, then a clearly higher score, then less time.
func betterState(a, b *searchState) bool {
	if a.poiCount != b.poiCount {
		return a.poiCount > b.poiCount
	}
	if math.Abs(a.score-b.score) > 0.01 {
		return a.score > b.score
	}
	return a.elapsed < b.elapsed
}

// buildSearchPool keeps the guaranteed POIs plus the best of the rest,
// weighting each score by the preference for its primary category.
func buildSearchPool(
	pois []domain_models.POI,
	preferences *domain_models.UserPreferences,
	guaranteed []domain_models.POI,
) []searchNode {
	pinned := make(map[string]bool, len(guaranteed))
	var pool []searchNode
	for _, poi := range guaranteed {
		pinned[poi.Key()] = true
		pool = append(pool, poiNode(poi, preferences))
	}

	var rest []domain_models.POI
	for _, poi := range pois {
		if !pinned[poi.Key()] {
			rest = append(rest, poi)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].Score > rest[j].Score
	})

	for _, poi := range rest {
		if len(pool) >= astarPoolSize {
			break
		}
		pool = append(pool, poiNode(poi, preferences))
	}
	return pool
}

func poiNode(poi domain_models.POI, preferences *domain_models.UserPreferences) searchNode {
	return searchNode{
		name:  poi.Name,
		lat:   poi.Latitude,
		lng:   poi.Longitude,
		score: poi.Score * preferences.CategoryWeight(poi.PrimaryCategory()),
	}
}

// edgeMinutes estimates a walking leg from the great-circle distance with
// a 1.5x street-grid detour factor.
func edgeMinutes(from, to searchNode) int {
	meters := utils.HaversineMeters(from.lat, from.lng, to.lat, to.lng)
	return int(math.Ceil(meters / walkMetersPerMinute * 1.5))
}

// heuristicMinutes is an optimistic straight-line bound toward the end,
// softened with a 1.3x factor. It stays admissible enough in practice
// because edges carry the larger 1.5x factor.
func heuristicMinutes(from, end searchNode) int {
	dLat := from.lat - end.lat
	dLng := from.lng - end.lng
	degrees := math.Sqrt(dLat*dLat + dLng*dLng)
	return int(degrees * 111000 / walkMetersPerMinute * 1.3)
}

func findPOI(pois []domain_models.POI, name string, lat, lng float64) (domain_models.POI, bool) {
	for _, poi := range pois {
		if poi.Name == name &&
			math.Abs(poi.Latitude-lat) < 1e-4 &&
			math.Abs(poi.Longitude-lng) < 1e-4 {
			return poi, true
		}
	}
	return domain_models.POI{}, false
}

// actualTime replays the route through the travel provider: every leg plus
// a short stop per POI. A route with no POIs is the direct walk.
func (s *AStarService) actualTime(ctx context.Context, startLat, startLng, endLat, endLng float64, points []domain_models.POI) (int, error) {
	if len(points) == 0 {
		return s.travel.WalkingTimeMinutes(ctx, startLat, startLng, endLat, endLng)
	}

	total := 0
	curLat, curLng := startLat, startLng
	for _, poi := range points {
		leg, err := s.travel.WalkingTimeMinutes(ctx, curLat, curLng, poi.Latitude, poi.Longitude)
		if err != nil {
			return 0, err
		}
		total += leg + astarDwellMinutes
		curLat, curLng = poi.Latitude, poi.Longitude
	}

	leg, err := s.travel.WalkingTimeMinutes(ctx, curLat, curLng, endLat, endLng)
	if err != nil {
		return 0, err
	}
	return total + leg, nil
}
