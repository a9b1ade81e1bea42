package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/artifaks/herbal-wisdom/internal/auth"
)

// PrincipalID returns the authenticated user's ID, or nil for anonymous
// requests. The JWT middleware stores validated claims under "user".
func PrincipalID(c echo.Context) *uuid.UUID {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok || claims.UserID == uuid.Nil {
		return nil
	}
	id := claims.UserID
	return &id
}
