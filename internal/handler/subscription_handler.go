package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/artifaks/herbal-wisdom/internal/errors"
	"github.com/artifaks/herbal-wisdom/internal/service"
)

// SignatureHeader carries the webhook payload signature.
const SignatureHeader = "Webhook-Signature"

// SubscriptionHandler handles checkout and webhook endpoints.
type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
}

// NewSubscriptionHandler creates a new subscription handler.
func NewSubscriptionHandler(subscriptionService service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// CheckoutSessionResponse represents a created checkout session.
type CheckoutSessionResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url,omitempty"`
}

// CreateCheckoutSession godoc
// @Summary Create a premium subscription checkout session
// @Tags subscription
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CheckoutSessionResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /checkout-session [post]
func (h *SubscriptionHandler) CreateCheckoutSession(c echo.Context) error {
	userID := PrincipalID(c)
	if userID == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	session, err := h.subscriptionService.CreateCheckoutSession(c.Request().Context(), *userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, CheckoutSessionResponse{SessionID: session.ID, URL: session.URL})
}

// GetSubscription godoc
// @Summary Get the authenticated user's subscription
// @Tags subscription
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Subscription
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /subscription [get]
func (h *SubscriptionHandler) GetSubscription(c echo.Context) error {
	userID := PrincipalID(c)
	if userID == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	sub, err := h.subscriptionService.GetForUser(c.Request().Context(), *userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, sub)
}

// Webhook godoc
// @Summary Receive payment processor webhook events
// @Tags subscription
// @Accept json
// @Produce json
// @Param Webhook-Signature header string true "Payload signature"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /webhooks/payment [post]
func (h *SubscriptionHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "unreadable payload",
			Code:  "INVALID_PAYLOAD",
		})
	}

	signature := c.Request().Header.Get(SignatureHeader)
	if err := h.subscriptionService.HandleWebhook(c.Request().Context(), payload, signature); err != nil {
		if err == service.ErrUnmappedWebhookEvent {
			// Acknowledge: retrying will never attach a user to this event.
			return c.JSON(http.StatusOK, map[string]string{"status": "ignored"})
		}
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "received"})
}
