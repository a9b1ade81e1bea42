package model

import "time"

// Store sort keys.
const (
	SortByRating   = "rating"
	SortByDistance = "distance"
	SortByName     = "name"
)

// Store represents a physical herbal store in the directory. Records are
// owned by the directory-management side; this service only reads them.
type Store struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Name             string    `json:"name" gorm:"size:255;not null;index"`
	Description      string    `json:"description" gorm:"type:text"`
	Address          string    `json:"address" gorm:"size:255"`
	City             string    `json:"city" gorm:"size:100;index"`
	State            string    `json:"state" gorm:"size:100;index"`
	Country          string    `json:"country" gorm:"size:100"`
	PostalCode       string    `json:"postal_code" gorm:"size:20"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	Phone            string    `json:"phone" gorm:"size:50"`
	Website          string    `json:"website,omitempty" gorm:"size:1024"`
	HoursOfOperation string    `json:"hours_of_operation" gorm:"size:255"`
	Specialties      []string  `json:"specialties" gorm:"serializer:json"`
	Rating           float64   `json:"rating"`
	CreatedAt        time.Time `json:"created_at"`
}

// Coordinate is a WGS84 point in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// StoreFilter narrows and orders a store listing. The geofilter applies only
// when both Location and RadiusKm are set.
type StoreFilter struct {
	SearchQuery string
	City        string
	State       string
	Specialty   string
	RadiusKm    float64
	Location    *Coordinate
	SortBy      string
}

// StoreLocation is a distinct (city, state) pair offered as a filter choice.
type StoreLocation struct {
	City  string `json:"city"`
	State string `json:"state"`
}
