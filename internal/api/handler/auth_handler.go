package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staysmart/hospitality-platform/internal/api/metrics"
	"github.com/staysmart/hospitality-platform/internal/core/domain"
	"github.com/staysmart/hospitality-platform/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Scope    string `json:"scope,omitempty"`
	Redirect string `json:"redirect"`
}

// Login resolves a credential pair to a role, property scope and token.
//
// @Summary      Authenticate
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, identity, err := h.authService.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Token:    token,
		Role:     identity.Role,
		Scope:    identity.PropertyID,
		Redirect: identity.RedirectHint,
	})
}

func loginResult(err error) string {
	switch err {
	case domain.ErrPendingApproval:
		return "pending"
	case domain.ErrTooManyAttempts:
		return "throttled"
	default:
		return "invalid"
	}
}
