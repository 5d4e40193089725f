package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vetclinic/clinic-api/internal/api/metrics"
	"github.com/vetclinic/clinic-api/internal/core/domain"
	"github.com/vetclinic/clinic-api/internal/core/ports"
)

type AuthHandler struct {
	registration ports.RegistrationService
}

func NewAuthHandler(registration ports.RegistrationService) *AuthHandler {
	return &AuthHandler{registration: registration}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	start := time.Now()

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.registration.Register(c.Request().Context(), domain.Registration{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	observeRegistration(resultLabel(err), start)
	if err != nil {
		return h.registrationError(c, err)
	}

	return c.JSON(http.StatusCreated, registerResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.Roles,
	})
}

// registrationError maps the service's error taxonomy onto status codes.
// Anything outside the taxonomy escapes to the central error handler, which
// logs it and answers 500.
func (h *AuthHandler) registrationError(c echo.Context, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: ve.Error(), Field: ve.Field})
	case errors.Is(err, domain.ErrUserExists):
		return c.JSON(http.StatusConflict, errorResponse{Error: "username already taken"})
	case errors.Is(err, domain.ErrStoreUnavailable):
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "service temporarily unavailable"})
	}
	return err
}

func resultLabel(err error) string {
	var ve *domain.ValidationError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &ve):
		return "validation_error"
	case errors.Is(err, domain.ErrUserExists):
		return "conflict"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "store_unavailable"
	}
	return "error"
}

func observeRegistration(result string, start time.Time) {
	metrics.RegistrationsTotal.WithLabelValues(result).Inc()
	metrics.RegistrationDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
