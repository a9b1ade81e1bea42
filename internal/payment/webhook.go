package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/artifaks/herbal-wisdom/internal/errors"
)

// Webhook event types this service reacts to. Anything else is acknowledged
// and ignored.
const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventSubscriptionDeleted      = "customer.subscription.deleted"
)

// DefaultSignatureTolerance bounds the accepted age of a signed payload.
const DefaultSignatureTolerance = 5 * time.Minute

// Event is a webhook envelope delivered by the payment processor.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// CheckoutSessionObject is the event payload for completed checkouts.
type CheckoutSessionObject struct {
	ID       string            `json:"id"`
	Customer string            `json:"customer"`
	Metadata map[string]string `json:"metadata"`
}

// SubscriptionObject is the event payload for subscription lifecycle events.
type SubscriptionObject struct {
	ID       string            `json:"id"`
	Customer string            `json:"customer"`
	Metadata map[string]string `json:"metadata"`
}

// ParseEvent decodes a webhook payload into an Event.
func ParseEvent(payload []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("decode webhook event: %w", err)
	}
	return &event, nil
}

// VerifySignature checks the webhook signature header against the payload.
// The header carries a unix timestamp and one or more hex HMAC-SHA256
// signatures of "<timestamp>.<payload>":
//
//	t=1696000000,v1=5257a869e7...
//
// Signatures older than tolerance are rejected to limit replay.
func VerifySignature(payload []byte, header, secret string, tolerance time.Duration) error {
	timestamp, signatures := parseSignatureHeader(header)
	if timestamp == 0 || len(signatures) == 0 {
		return apperrors.ErrInvalidWebhookSignature
	}

	if tolerance > 0 {
		age := time.Since(time.Unix(timestamp, 0))
		if age > tolerance || age < -tolerance {
			return apperrors.ErrInvalidWebhookSignature
		}
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, sig := range signatures {
		decoded, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return nil
		}
	}
	return apperrors.ErrInvalidWebhookSignature
}

func parseSignatureHeader(header string) (timestamp int64, signatures []string) {
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err == nil {
				timestamp = ts
			}
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}
	return timestamp, signatures
}
