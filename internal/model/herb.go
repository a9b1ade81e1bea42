package model

import "time"

// Herb represents a single entry of the herb directory.
type Herb struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Name               string    `json:"name" gorm:"size:255;not null;index"`
	ScientificName     string    `json:"scientific_name" gorm:"size:255"`
	Description        string    `json:"description" gorm:"type:text"`
	Benefits           []string  `json:"benefits" gorm:"serializer:json"`
	Category           string    `json:"category" gorm:"size:100;index"`
	PreparationMethods []string  `json:"preparation_methods" gorm:"serializer:json"`
	TreatsIllnesses    []string  `json:"treats_illnesses" gorm:"serializer:json"`
	ImageURL           string    `json:"image_url" gorm:"size:1024"`
	IsPremium          bool      `json:"is_premium" gorm:"default:false;index"`
	CreatedAt          time.Time `json:"created_at"`
}

// HerbFilter narrows a herb listing. Zero values mean "no constraint";
// IsPremium is tri-state so callers can filter either way or not at all.
type HerbFilter struct {
	Category    string
	IsPremium   *bool
	SearchQuery string
	Illness     string
}

// Pagination describes a counted page request.
type Pagination struct {
	Page     int
	PageSize int
}

// Offset returns the row offset of the page, clamping page to 1.
func (p Pagination) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.PageSize
}
