package db_models

import "github.com/google/uuid"

// CuratedPOI is a provider-scored point of interest in the curated
// directory, used when POI_SOURCE=db. Tags holds the raw provider tags
// as a comma-separated list.
type CuratedPOI struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"not null"`
	Latitude    float64   `gorm:"not null;index"`
	Longitude   float64   `gorm:"not null;index"`
	Score       float64
	Tags        string
	ReviewCount int
	Rating      float64
	PhotoURL    string
}

func (CuratedPOI) TableName() string {
	return "curated_pois"
}
