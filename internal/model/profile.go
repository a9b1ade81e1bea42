package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles assignable to a profile.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Subscription statuses delivered by the payment processor. An empty status
// means the profile has never subscribed.
const (
	SubscriptionActive   = "active"
	SubscriptionTrial    = "trial"
	SubscriptionCanceled = "canceled"
	SubscriptionPastDue  = "past_due"
	SubscriptionUnpaid   = "unpaid"
)

// Profile represents a registered user of the directory. It is created on
// signup and its subscription status is mutated only by payment webhook
// events; profiles are never deleted by this system.
type Profile struct {
	ID                 uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Email              string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name               string    `json:"name" gorm:"size:255;not null"`
	PasswordHash       string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role               string    `json:"role" gorm:"size:50;default:'user';index"`
	SubscriptionStatus string    `json:"subscription_status,omitempty" gorm:"size:50;index"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the profile carries the admin role.
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// HasActiveSubscription reports whether the profile may access
// subscriber-only content. Trial and delinquent statuses do not qualify.
func (p *Profile) HasActiveSubscription() bool {
	return p.SubscriptionStatus == SubscriptionActive
}
