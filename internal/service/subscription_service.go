package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/artifaks/herbal-wisdom/internal/errors"
	"github.com/artifaks/herbal-wisdom/internal/model"
	"github.com/artifaks/herbal-wisdom/internal/payment"
	"github.com/artifaks/herbal-wisdom/internal/repository"
)

// ErrUnmappedWebhookEvent is returned when an event carries no usable
// principal mapping.
var ErrUnmappedWebhookEvent = errors.New("webhook event has no user mapping")

// PaymentProvider is the slice of the payment processor API this service
// consumes.
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, params payment.CheckoutSessionParams) (*payment.CheckoutSession, error)
	RetrieveCustomer(ctx context.Context, customerID string) (*payment.Customer, error)
}

// SubscriptionService handles premium subscription checkout and webhook
// driven status updates.
type SubscriptionService interface {
	CreateCheckoutSession(ctx context.Context, userID uuid.UUID) (*payment.CheckoutSession, error)
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
	GetForUser(ctx context.Context, userID uuid.UUID) (*model.Subscription, error)
}

type subscriptionService struct {
	profileRepo      repository.ProfileRepository
	subscriptionRepo repository.SubscriptionRepository
	provider         PaymentProvider
	webhookSecret    string
	priceID          string
	appBaseURL       string
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(
	profileRepo repository.ProfileRepository,
	subscriptionRepo repository.SubscriptionRepository,
	provider PaymentProvider,
	webhookSecret, priceID, appBaseURL string,
) SubscriptionService {
	return &subscriptionService{
		profileRepo:      profileRepo,
		subscriptionRepo: subscriptionRepo,
		provider:         provider,
		webhookSecret:    webhookSecret,
		priceID:          priceID,
		appBaseURL:       appBaseURL,
	}
}

// CreateCheckoutSession creates a hosted checkout session for the monthly
// premium subscription. The profile ID travels in session metadata so the
// completion webhook can be mapped back to the principal.
func (s *subscriptionService) CreateCheckoutSession(ctx context.Context, userID uuid.UUID) (*payment.CheckoutSession, error) {
	profile, err := s.profileRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	session, err := s.provider.CreateCheckoutSession(ctx, payment.CheckoutSessionParams{
		CustomerEmail: profile.Email,
		UserID:        profile.ID.String(),
		ProductName:   "Herbal Wisdom Premium Subscription",
		Description:   "Monthly subscription to Herbal Wisdom premium features",
		Price:         model.SubscriptionPrice,
		Currency:      "usd",
		SuccessURL:    s.appBaseURL + "/subscribe/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.appBaseURL + "/subscribe?canceled=true",
	})
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return session, nil
}

// HandleWebhook verifies and applies a webhook delivery. Deliveries are
// at-least-once; every applied update is an idempotent upsert keyed by the
// profile ID, so replays are no-ops. Unknown event types are acknowledged
// and ignored.
func (s *subscriptionService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	if err := payment.VerifySignature(payload, signatureHeader, s.webhookSecret, payment.DefaultSignatureTolerance); err != nil {
		return err
	}

	event, err := payment.ParseEvent(payload)
	if err != nil {
		return apperrors.ErrInvalidWebhookSignature
	}

	switch event.Type {
	case payment.EventCheckoutSessionCompleted:
		return s.applyCheckoutCompleted(ctx, event)
	case payment.EventSubscriptionDeleted:
		return s.applySubscriptionDeleted(ctx, event)
	default:
		log.Printf("ignoring webhook event type %q", event.Type)
		return nil
	}
}

func (s *subscriptionService) applyCheckoutCompleted(ctx context.Context, event *payment.Event) error {
	var session payment.CheckoutSessionObject
	if err := decodeEventObject(event, &session); err != nil {
		return err
	}
	userID, err := uuid.Parse(session.Metadata["userId"])
	if err != nil {
		return ErrUnmappedWebhookEvent
	}
	return s.setStatus(ctx, userID, model.SubscriptionActive)
}

func (s *subscriptionService) applySubscriptionDeleted(ctx context.Context, event *payment.Event) error {
	var sub payment.SubscriptionObject
	if err := decodeEventObject(event, &sub); err != nil {
		return err
	}

	// The user ID is carried on the customer, not the subscription object.
	userIDRaw := sub.Metadata["userId"]
	if userIDRaw == "" && sub.Customer != "" {
		customer, err := s.provider.RetrieveCustomer(ctx, sub.Customer)
		if err != nil {
			return fmt.Errorf("retrieve customer: %w", err)
		}
		userIDRaw = customer.Metadata["userId"]
	}

	userID, err := uuid.Parse(userIDRaw)
	if err != nil {
		return ErrUnmappedWebhookEvent
	}
	return s.setStatus(ctx, userID, model.SubscriptionCanceled)
}

// setStatus applies a status to both the profile flag and the subscription
// row. Last event wins by type; no delivery-order guarantee is assumed.
func (s *subscriptionService) setStatus(ctx context.Context, userID uuid.UUID, status string) error {
	if err := s.profileRepo.UpdateSubscriptionStatus(ctx, userID, status); err != nil {
		return fmt.Errorf("update profile status: %w", err)
	}
	if err := s.subscriptionRepo.UpsertStatus(ctx, userID, status, s.priceID); err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}

// GetForUser returns the subscription record of a user.
func (s *subscriptionService) GetForUser(ctx context.Context, userID uuid.UUID) (*model.Subscription, error) {
	sub, err := s.subscriptionRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return sub, nil
}

func decodeEventObject(event *payment.Event, dest interface{}) error {
	if len(event.Data.Object) == 0 {
		return ErrUnmappedWebhookEvent
	}
	if err := json.Unmarshal(event.Data.Object, dest); err != nil {
		return fmt.Errorf("decode event object: %w", err)
	}
	return nil
}
