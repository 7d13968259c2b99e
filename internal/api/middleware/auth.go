package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/applitrack/applitrack/internal/core/ports"
)

// Auth validates the bearer token and injects the resolved identity into the
// request context. Nothing behind this middleware runs without a user id.
// Denylisted token ids (logged-out sessions) are rejected even while the
// token itself is still within its validity window.
func Auth(jwtSecret string, sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sub, ok := claims["sub"].(float64)
			if !ok || sub <= 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
			}

			jti, _ := claims["jti"].(string)
			if jti != "" {
				revoked, err := sessions.IsRevoked(c.Request().Context(), jti)
				if err != nil {
					return echo.NewHTTPError(http.StatusServiceUnavailable, "session check failed")
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
				}
			}

			c.Set("user_id", int64(sub))
			c.Set("username", claims["username"])
			c.Set("jti", jti)
			if exp, ok := claims["exp"].(float64); ok {
				c.Set("token_exp", time.Unix(int64(exp), 0))
			}

			return next(c)
		}
	}
}
