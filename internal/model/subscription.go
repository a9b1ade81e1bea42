package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SubscriptionPrice is the monthly premium price in USD.
var SubscriptionPrice = decimal.NewFromFloat(4.99)

// Subscription tracks the billing record of a profile. Exactly one row per
// user; webhook events upsert it with last-event-wins semantics per type.
type Subscription struct {
	ID                 uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	UserID             uuid.UUID  `json:"user_id" gorm:"type:char(36);uniqueIndex;not null"`
	Status             string     `json:"status" gorm:"size:50;not null;index"`
	PriceID            string     `json:"price_id,omitempty" gorm:"size:255"`
	CurrentPeriodStart *time.Time `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd  bool       `json:"cancel_at_period_end" gorm:"default:false"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
