package router

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/artifaks/herbal-wisdom/internal/auth"
	"github.com/artifaks/herbal-wisdom/internal/handler"
	"github.com/artifaks/herbal-wisdom/internal/service"
)

// ParseTokenFunc validates a bearer token, rejects revoked tokens, and
// returns the claims stored under "user" in the request context.
func ParseTokenFunc(jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) func(c echo.Context, token string) (interface{}, error) {
	return func(c echo.Context, token string) (interface{}, error) {
		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			return nil, err
		}
		if blacklisted, _ := tokenStore.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID); blacklisted {
			return nil, errors.New("token revoked")
		}
		return claims, nil
	}
}

// Guard invokes the entitlement resolver once per navigation for the given
// resource classification and turns deny decisions into redirects. It is the
// only place route-level access decisions are made.
func Guard(resolver service.EntitlementResolver, requirements ...service.Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := resolver.Resolve(
				c.Request().Context(),
				handler.PrincipalID(c),
				c.Request().URL.Path,
				requirements...,
			)
			if !decision.Allow {
				return c.Redirect(http.StatusSeeOther, decision.Target)
			}
			return next(c)
		}
	}
}
