package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walkabout/internal/models/domain_models"
	"walkabout/pkg/utils"
)

func sightseeingPOIs() []domain_models.POI {
	return []domain_models.POI{
		{
			Name: "City Museum of History", Latitude: 40.001, Longitude: -74.0,
			Tags: []string{"museum", "tourist_attraction"}, ReviewCount: 60000, Rating: 4.8,
		},
		{
			Name: "Riverside Park", Latitude: 40.002, Longitude: -74.0,
			Tags: []string{"park", "tourist_attraction", "point_of_interest"}, ReviewCount: 60000, Rating: 4.6,
		},
	}
}

func newTestScheduler(places *fakePlaces, travel *stubTravel) *SchedulerService {
	return NewSchedulerService(places, NewImportanceScorer(), travel)
}

func TestPlanDayBuildsChronologicalSchedule(t *testing.T) {
	places := &fakePlaces{pois: sightseeingPOIs()}
	scheduler := newTestScheduler(places, newStubTravel())

	schedule, err := scheduler.PlanDay(context.Background(), 40.0, -74.0,
		"09:00", "18:00", domain_models.NewUserPreferences(), false)
	require.NoError(t, err)

	require.Len(t, schedule.Stops, 2)
	assert.Empty(t, schedule.Breaks)

	previous := utils.ClockTime(0)
	for _, stop := range schedule.Stops {
		arrival, err := utils.ParseClock(stop.ArrivalTime)
		require.NoError(t, err)
		departure, err := utils.ParseClock(stop.DepartureTime)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, arrival.Sub(previous), 0)
		assert.Equal(t, stop.VisitMinutes, departure.Sub(arrival))
		previous = departure
	}

	assert.Greater(t, schedule.TotalMinutes, 0)
	assert.LessOrEqual(t, schedule.TotalMinutes, 540)
	assert.Equal(t, "stub_polyline", schedule.Polyline)
}

func TestPlanDayInsertsSingleLunchBreak(t *testing.T) {
	places := &fakePlaces{pois: sightseeingPOIs()}
	scheduler := newTestScheduler(places, newStubTravel())

	schedule, err := scheduler.PlanDay(context.Background(), 40.0, -74.0,
		"09:00", "18:00", domain_models.NewUserPreferences(), true)
	require.NoError(t, err)

	require.Len(t, schedule.Breaks, 1)
	assert.Equal(t, domain_models.BreakTypeLunch, schedule.Breaks[0].Type)
	assert.Equal(t, lunchMinutes, schedule.Breaks[0].DurationMinutes)

	lunchStart, err := utils.ParseClock(schedule.Breaks[0].StartTime)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, lunchStart.Hour(), 11)
}

func TestPlanDayRejectsInvalidWindow(t *testing.T) {
	places := &fakePlaces{pois: sightseeingPOIs()}
	scheduler := newTestScheduler(places, newStubTravel())

	_, err := scheduler.PlanDay(context.Background(), 40.0, -74.0,
		"18:00", "09:00", domain_models.NewUserPreferences(), false)
	assert.Equal(t, utils.CodeInvalidTimeWindow, planningCode(t, err))

	_, err = scheduler.PlanDay(context.Background(), 40.0, -74.0,
		"not-a-clock", "18:00", domain_models.NewUserPreferences(), false)
	assert.Equal(t, utils.CodeInvalidTimeWindow, planningCode(t, err))
}

func TestPlanDayHonorsExclusions(t *testing.T) {
	places := &fakePlaces{pois: sightseeingPOIs()}
	scheduler := newTestScheduler(places, newStubTravel())

	preferences := domain_models.NewUserPreferences()
	preferences.SetCategoryWeight(domain_models.CategoryMuseum, 0)

	schedule, err := scheduler.PlanDay(context.Background(), 40.0, -74.0,
		"09:00", "18:00", preferences, false)
	require.NoError(t, err)

	require.Len(t, schedule.Stops, 1)
	assert.Equal(t, "Riverside Park", schedule.Stops[0].Attraction.Name)
}

func TestPlanDayEmptyPoolYieldsEmptySchedule(t *testing.T) {
	places := &fakePlaces{}
	scheduler := newTestScheduler(places, newStubTravel())

	schedule, err := scheduler.PlanDay(context.Background(), 40.0, -74.0,
		"09:00", "18:00", domain_models.NewUserPreferences(), false)
	require.NoError(t, err)

	assert.Empty(t, schedule.Stops)
	assert.Empty(t, schedule.Breaks)
	assert.Equal(t, 0, schedule.TotalMinutes)
}

func TestPlanDayPropagatesPolylineFailure(t *testing.T) {
	places := &fakePlaces{pois: sightseeingPOIs()}
	travel := newStubTravel()
	travel.polyErr = errors.New("provider down")
	scheduler := newTestScheduler(places, travel)

	_, err := scheduler.PlanDay(context.Background(), 40.0, -74.0,
		"09:00", "18:00", domain_models.NewUserPreferences(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, travel.polyErr)
}

func TestPlanDayGuaranteesBoostedCategories(t *testing.T) {
	places := &fakePlaces{pois: sightseeingPOIs()}
	scheduler := newTestScheduler(places, newStubTravel())

	preferences := domain_models.NewUserPreferences()
	preferences.SetCategoryWeight(domain_models.CategoryPark, 2.5)

	schedule, err := scheduler.PlanDay(context.Background(), 40.0, -74.0,
		"09:00", "18:00", preferences, false)
	require.NoError(t, err)

	require.NotEmpty(t, schedule.Stops)
	names := make([]string, 0, len(schedule.Stops))
	for _, stop := range schedule.Stops {
		names = append(names, stop.Attraction.Name)
	}
	assert.Contains(t, names, "Riverside Park")
}
