package repositories

import (
	"context"

	"gorm.io/gorm"

	"walkabout/internal/models/db_models"
)

type POIRepository interface {
	FindNearby(ctx context.Context, lat, lng, radiusMeters float64) ([]db_models.CuratedPOI, error)
	FindByTag(ctx context.Context, lat, lng float64, tag string) ([]db_models.CuratedPOI, error)
}

type poiRepository struct {
	db *gorm.DB
}

func NewPOIRepository(db *gorm.DB) POIRepository {
	return &poiRepository{db: db}
}

// One degree of latitude is ~111 km; longitude is not corrected for
// latitude, so the box is slightly generous away from the equator.
const metersPerDegree = 111000.0

func (r *poiRepository) FindNearby(ctx context.Context, lat, lng, radiusMeters float64) ([]db_models.CuratedPOI, error) {
	delta := radiusMeters / metersPerDegree

	var pois []db_models.CuratedPOI
	err := r.db.WithContext(ctx).
		Where("latitude BETWEEN ? AND ?", lat-delta, lat+delta).
		Where("longitude BETWEEN ? AND ?", lng-delta, lng+delta).
		Order("score DESC").
		Find(&pois).Error
	if err != nil {
		return nil, err
	}
	return pois, nil
}

func (r *poiRepository) FindByTag(ctx context.Context, lat, lng float64, tag string) ([]db_models.CuratedPOI, error) {
	delta := 1500.0 / metersPerDegree

	var pois []db_models.CuratedPOI
	err := r.db.WithContext(ctx).
		Where("latitude BETWEEN ? AND ?", lat-delta, lat+delta).
		Where("longitude BETWEEN ? AND ?", lng-delta, lng+delta).
		Where("tags LIKE ?", "%"+tag+"%").
		Order("score DESC").
		Find(&pois).Error
	if err != nil {
		return nil, err
	}
	return pois, nil
}
