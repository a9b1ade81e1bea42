package service

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/artifaks/herbal-wisdom/internal/model"
	"github.com/artifaks/herbal-wisdom/internal/repository"
)

// Requirement classifies a route or content item.
type Requirement string

const (
	// RequireAdmin restricts a resource to admin profiles.
	RequireAdmin Requirement = "admin"
	// RequireSubscription restricts a resource to active subscribers.
	RequireSubscription Requirement = "subscription"
)

// Redirect targets used by deny decisions.
const (
	SignInPath       = "/signin"
	UnauthorizedPath = "/unauthorized"
	SubscribePath    = "/subscribe"
)

// DenyReason explains why access was denied.
type DenyReason string

const (
	// DenyUnauthenticated means no principal was present.
	DenyUnauthenticated DenyReason = "unauthenticated"
	// DenyNotAdmin means the principal lacks the admin role.
	DenyNotAdmin DenyReason = "not_admin"
	// DenySubscriptionRequired means the principal has no active subscription.
	DenySubscriptionRequired DenyReason = "subscription_required"
	// DenyLookupFailed means the profile lookup failed; access is denied
	// rather than failing open.
	DenyLookupFailed DenyReason = "lookup_failed"
)

// Decision is the outcome of an entitlement check: either Allow, or a
// redirect to Target with a machine-readable Reason.
type Decision struct {
	Allow  bool
	Reason DenyReason
	Target string
}

// EntitlementResolver decides, for a (principal, resource) pair, whether the
// request may proceed. It is read-only and safe to invoke on every
// navigation; it is the single decision point for all route and content
// guards.
type EntitlementResolver interface {
	Resolve(ctx context.Context, principalID *uuid.UUID, requestedPath string, requirements ...Requirement) Decision
}

type entitlementResolver struct {
	profileRepo repository.ProfileRepository
}

// NewEntitlementResolver creates a new entitlement resolver.
func NewEntitlementResolver(profileRepo repository.ProfileRepository) EntitlementResolver {
	return &entitlementResolver{profileRepo: profileRepo}
}

// Resolve applies the guard rules in order; the first matching rule wins.
//
//  1. A resource with no requirements is public.
//  2. An anonymous principal is sent to sign in, carrying the requested path
//     so the caller can come back after authenticating.
//  3. An admin requirement is satisfied only by the admin role; an active
//     subscription does not relax it.
//  4. A subscription requirement is satisfied by the admin role or an
//     active subscription status.
//
// A failed profile lookup denies access (fail-closed).
func (r *entitlementResolver) Resolve(ctx context.Context, principalID *uuid.UUID, requestedPath string, requirements ...Requirement) Decision {
	if len(requirements) == 0 {
		return Decision{Allow: true}
	}

	if principalID == nil {
		return Decision{
			Reason: DenyUnauthenticated,
			Target: SignInPath + "?redirectTo=" + url.QueryEscape(requestedPath),
		}
	}

	profile, err := r.profileRepo.FindByID(ctx, *principalID)
	if err != nil {
		return Decision{Reason: DenyLookupFailed, Target: UnauthorizedPath}
	}

	if hasRequirement(requirements, RequireAdmin) {
		if profile.IsAdmin() {
			return Decision{Allow: true}
		}
		return Decision{Reason: DenyNotAdmin, Target: UnauthorizedPath}
	}

	if hasRequirement(requirements, RequireSubscription) {
		if profile.IsAdmin() || profile.HasActiveSubscription() {
			return Decision{Allow: true}
		}
		return Decision{Reason: DenySubscriptionRequired, Target: SubscribePath}
	}

	return Decision{Allow: true}
}

func hasRequirement(requirements []Requirement, want Requirement) bool {
	for _, req := range requirements {
		if req == want {
			return true
		}
	}
	return false
}

// RequirementsForHerb returns the content classification of a herb entry.
func RequirementsForHerb(herb *model.Herb) []Requirement {
	if herb != nil && herb.IsPremium {
		return []Requirement{RequireSubscription}
	}
	return nil
}
