package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/artifaks/herbal-wisdom/internal/errors"
	"github.com/artifaks/herbal-wisdom/internal/model"
	"github.com/artifaks/herbal-wisdom/internal/payment"
)

// MockSubscriptionRepository is a mock implementation of SubscriptionRepository.
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) UpsertStatus(ctx context.Context, userID uuid.UUID, status, priceID string) error {
	args := m.Called(ctx, userID, status, priceID)
	return args.Error(0)
}

// MockPaymentProvider is a mock implementation of PaymentProvider.
type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) CreateCheckoutSession(ctx context.Context, params payment.CheckoutSessionParams) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutSession), args.Error(1)
}

func (m *MockPaymentProvider) RetrieveCustomer(ctx context.Context, customerID string) (*payment.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Customer), args.Error(1)
}

const webhookTestSecret = "whsec_test"

func signedHeader(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func newTestSubscriptionService(profileRepo *MockProfileRepository, subRepo *MockSubscriptionRepository, provider *MockPaymentProvider) SubscriptionService {
	return NewSubscriptionService(profileRepo, subRepo, provider, webhookTestSecret, "price_premium", "https://herbalwisdom.example.com")
}

func TestSubscriptionService_CreateCheckoutSession(t *testing.T) {
	userID := uuid.New()

	mockProfiles := new(MockProfileRepository)
	mockSubs := new(MockSubscriptionRepository)
	mockProvider := new(MockPaymentProvider)

	mockProfiles.On("FindByID", mock.Anything, userID).Return(&model.Profile{
		ID:    userID,
		Email: "subscriber@example.com",
	}, nil)
	mockProvider.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(params payment.CheckoutSessionParams) bool {
		return params.CustomerEmail == "subscriber@example.com" &&
			params.UserID == userID.String() &&
			params.Price.Equal(model.SubscriptionPrice)
	})).Return(&payment.CheckoutSession{ID: "cs_123", URL: "https://pay.example.com/cs_123"}, nil)

	service := newTestSubscriptionService(mockProfiles, mockSubs, mockProvider)
	session, err := service.CreateCheckoutSession(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, "cs_123", session.ID)
	assert.NotEmpty(t, session.URL)

	mockProfiles.AssertExpectations(t)
	mockProvider.AssertExpectations(t)
}

func TestSubscriptionService_HandleWebhook_CheckoutCompleted(t *testing.T) {
	userID := uuid.New()
	payloadJSON := []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_1", "metadata": {"userId": %q}}}
	}`, userID))

	mockProfiles := new(MockProfileRepository)
	mockSubs := new(MockSubscriptionRepository)
	mockProvider := new(MockPaymentProvider)

	mockProfiles.On("UpdateSubscriptionStatus", mock.Anything, userID, model.SubscriptionActive).Return(nil)
	mockSubs.On("UpsertStatus", mock.Anything, userID, model.SubscriptionActive, "price_premium").Return(nil)

	service := newTestSubscriptionService(mockProfiles, mockSubs, mockProvider)
	err := service.HandleWebhook(context.Background(), payloadJSON, signedHeader(payloadJSON, webhookTestSecret))

	assert.NoError(t, err)
	mockProfiles.AssertExpectations(t)
	mockSubs.AssertExpectations(t)
}

func TestSubscriptionService_HandleWebhook_Replay(t *testing.T) {
	// At-least-once delivery: the same event applied twice must land on the
	// same state, so both deliveries issue the same idempotent writes.
	userID := uuid.New()
	payloadJSON := []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_1", "metadata": {"userId": %q}}}
	}`, userID))
	header := signedHeader(payloadJSON, webhookTestSecret)

	mockProfiles := new(MockProfileRepository)
	mockSubs := new(MockSubscriptionRepository)
	mockProvider := new(MockPaymentProvider)

	mockProfiles.On("UpdateSubscriptionStatus", mock.Anything, userID, model.SubscriptionActive).Return(nil).Twice()
	mockSubs.On("UpsertStatus", mock.Anything, userID, model.SubscriptionActive, "price_premium").Return(nil).Twice()

	service := newTestSubscriptionService(mockProfiles, mockSubs, mockProvider)
	assert.NoError(t, service.HandleWebhook(context.Background(), payloadJSON, header))
	assert.NoError(t, service.HandleWebhook(context.Background(), payloadJSON, header))

	mockProfiles.AssertExpectations(t)
	mockSubs.AssertExpectations(t)
}

func TestSubscriptionService_HandleWebhook_SubscriptionDeleted(t *testing.T) {
	userID := uuid.New()

	t.Run("user id on subscription metadata", func(t *testing.T) {
		payloadJSON := []byte(fmt.Sprintf(`{
			"id": "evt_2",
			"type": "customer.subscription.deleted",
			"data": {"object": {"id": "sub_1", "customer": "cus_1", "metadata": {"userId": %q}}}
		}`, userID))

		mockProfiles := new(MockProfileRepository)
		mockSubs := new(MockSubscriptionRepository)
		mockProvider := new(MockPaymentProvider)

		mockProfiles.On("UpdateSubscriptionStatus", mock.Anything, userID, model.SubscriptionCanceled).Return(nil)
		mockSubs.On("UpsertStatus", mock.Anything, userID, model.SubscriptionCanceled, "price_premium").Return(nil)

		service := newTestSubscriptionService(mockProfiles, mockSubs, mockProvider)
		err := service.HandleWebhook(context.Background(), payloadJSON, signedHeader(payloadJSON, webhookTestSecret))

		assert.NoError(t, err)
		mockProfiles.AssertExpectations(t)
		mockSubs.AssertExpectations(t)
	})

	t.Run("user id resolved through customer lookup", func(t *testing.T) {
		payloadJSON := []byte(`{
			"id": "evt_3",
			"type": "customer.subscription.deleted",
			"data": {"object": {"id": "sub_1", "customer": "cus_1"}}
		}`)

		mockProfiles := new(MockProfileRepository)
		mockSubs := new(MockSubscriptionRepository)
		mockProvider := new(MockPaymentProvider)

		mockProvider.On("RetrieveCustomer", mock.Anything, "cus_1").Return(&payment.Customer{
			ID:       "cus_1",
			Metadata: map[string]string{"userId": userID.String()},
		}, nil)
		mockProfiles.On("UpdateSubscriptionStatus", mock.Anything, userID, model.SubscriptionCanceled).Return(nil)
		mockSubs.On("UpsertStatus", mock.Anything, userID, model.SubscriptionCanceled, "price_premium").Return(nil)

		service := newTestSubscriptionService(mockProfiles, mockSubs, mockProvider)
		err := service.HandleWebhook(context.Background(), payloadJSON, signedHeader(payloadJSON, webhookTestSecret))

		assert.NoError(t, err)
		mockProvider.AssertExpectations(t)
		mockProfiles.AssertExpectations(t)
		mockSubs.AssertExpectations(t)
	})

	t.Run("no user mapping anywhere", func(t *testing.T) {
		payloadJSON := []byte(`{
			"id": "evt_4",
			"type": "customer.subscription.deleted",
			"data": {"object": {"id": "sub_1"}}
		}`)

		mockProfiles := new(MockProfileRepository)
		mockSubs := new(MockSubscriptionRepository)
		mockProvider := new(MockPaymentProvider)

		service := newTestSubscriptionService(mockProfiles, mockSubs, mockProvider)
		err := service.HandleWebhook(context.Background(), payloadJSON, signedHeader(payloadJSON, webhookTestSecret))

		assert.Equal(t, ErrUnmappedWebhookEvent, err)
	})
}

func TestSubscriptionService_HandleWebhook_BadSignature(t *testing.T) {
	payloadJSON := []byte(`{"id": "evt_5", "type": "checkout.session.completed"}`)

	mockProfiles := new(MockProfileRepository)
	mockSubs := new(MockSubscriptionRepository)
	mockProvider := new(MockPaymentProvider)

	service := newTestSubscriptionService(mockProfiles, mockSubs, mockProvider)
	err := service.HandleWebhook(context.Background(), payloadJSON, signedHeader(payloadJSON, "whsec_wrong"))

	// Nothing is written when the signature fails.
	assert.Equal(t, apperrors.ErrInvalidWebhookSignature, err)
	mockProfiles.AssertExpectations(t)
	mockSubs.AssertExpectations(t)
}

func TestSubscriptionService_HandleWebhook_UnknownEventIgnored(t *testing.T) {
	payloadJSON := []byte(`{"id": "evt_6", "type": "invoice.paid", "data": {"object": {}}}`)

	mockProfiles := new(MockProfileRepository)
	mockSubs := new(MockSubscriptionRepository)
	mockProvider := new(MockPaymentProvider)

	service := newTestSubscriptionService(mockProfiles, mockSubs, mockProvider)
	err := service.HandleWebhook(context.Background(), payloadJSON, signedHeader(payloadJSON, webhookTestSecret))

	assert.NoError(t, err)
	mockProfiles.AssertExpectations(t)
	mockSubs.AssertExpectations(t)
}

func TestSubscriptionService_GetForUser(t *testing.T) {
	userID := uuid.New()

	mockProfiles := new(MockProfileRepository)
	mockSubs := new(MockSubscriptionRepository)
	mockProvider := new(MockPaymentProvider)

	mockSubs.On("FindByUserID", mock.Anything, userID).Return(&model.Subscription{
		UserID: userID,
		Status: model.SubscriptionActive,
	}, nil)

	service := newTestSubscriptionService(mockProfiles, mockSubs, mockProvider)
	sub, err := service.GetForUser(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, model.SubscriptionActive, sub.Status)
	mockSubs.AssertExpectations(t)
}
