package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/resolvenow/complaint-system/internal/core/domain"
	"github.com/resolvenow/complaint-system/internal/core/ports"
)

// ctxActor builds the acting user from the claims injected by the Auth
// middleware. A missing user_id or role means the middleware did not run
// on this route, so the request is rejected before any service call.
func ctxActor(c echo.Context) (ports.Actor, error) {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" || role == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	name, _ := c.Get("name").(string)
	return ports.Actor{
		ID:   userID,
		Name: name,
		Role: domain.Role(role),
	}, nil
}
