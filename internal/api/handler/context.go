package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUserID extracts the acting user id injected by the Auth middleware and
// fast-fails before any service call: presence proves the middleware ran, and
// no repository or view operation may execute without a resolved identity.
func ctxUserID(c echo.Context) (int64, error) {
	userID, ok := c.Get("user_id").(int64)
	if !ok || userID <= 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}
