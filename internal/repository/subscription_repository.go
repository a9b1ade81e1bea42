package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/artifaks/herbal-wisdom/internal/model"
)

// SubscriptionRepository defines subscription persistence operations.
type SubscriptionRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Subscription, error)
	UpsertStatus(ctx context.Context, userID uuid.UUID, status, priceID string) error
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository.
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// FindByUserID finds the subscription record of a user.
func (r *subscriptionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Subscription, error) {
	var sub model.Subscription
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpsertStatus inserts or updates the subscription row of a user, keyed by
// user ID. Webhook deliveries are at-least-once, so applying the same status
// again must be a no-op; the status assignment makes replays harmless.
func (r *subscriptionRepository) UpsertStatus(ctx context.Context, userID uuid.UUID, status, priceID string) error {
	sub := &model.Subscription{
		UserID:  userID,
		Status:  status,
		PriceID: priceID,
	}
	assignments := map[string]interface{}{"status": status}
	if priceID != "" {
		assignments["price_id"] = priceID
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(sub).Error
}
