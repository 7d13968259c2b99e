package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/applitrack/applitrack/internal/api/metrics"
	"github.com/applitrack/applitrack/internal/core/domain"
	"github.com/applitrack/applitrack/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type updateCredentialsRequest struct {
	Username *string `json:"username" form:"username"`
	Password *string `json:"password" form:"password"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Logout revokes the current bearer token.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204  "token revoked"
// @Failure      401  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	jti, _ := c.Get("jti").(string)
	exp, _ := c.Get("token_exp").(time.Time)
	if jti != "" {
		if err := h.authService.Logout(c.Request().Context(), jti, exp); err != nil {
			return err
		}
	}

	return c.NoContent(http.StatusNoContent)
}

// UpdateCredentials changes the username and/or password of the current user.
//
// @Summary      Update account settings
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        body  body      updateCredentialsRequest  true  "New credentials; omitted fields stay unchanged"
// @Success      204   "credentials updated"
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/credentials [put]
func (h *AuthHandler) UpdateCredentials(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateCredentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err = h.authService.UpdateCredentials(c.Request().Context(), userID, ports.UpdateCredentialsInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
