package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/agencydesk/crm-api/internal/api/metrics"
	apimiddleware "github.com/agencydesk/crm-api/internal/api/middleware"
	"github.com/agencydesk/crm-api/internal/core/domain"
	"github.com/agencydesk/crm-api/internal/core/ports"
	"github.com/agencydesk/crm-api/internal/core/session"
)

// AuthHandler handles registration, login, and the session endpoints.
type AuthHandler struct {
	authService ports.AuthService
	sessions    *session.Manager
}

func NewAuthHandler(authService ports.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin admin_member client client_member"`
	ClientID string `json:"client_id"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      *domain.User `json:"user"`
}

type sessionResponse struct {
	Resolving bool             `json:"resolving"`
	Identity  *domain.Identity `json:"identity"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  domain.User
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

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		ClientID: req.ClientID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// Login authenticates a user and returns a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failed").Inc()
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.UTC().Format(time.RFC3339),
		User:      result.User,
	})
}

// GetSession reports the caller's resolved session state.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Router       /v1/session [get]
func (h *AuthHandler) GetSession(c echo.Context) error {
	ident, _ := c.Get(apimiddleware.CtxIdentity).(*domain.Identity)
	return c.JSON(http.StatusOK, sessionResponse{Resolving: false, Identity: ident})
}

// SignOut ends the caller's session. The local session is cleared before
// this handler returns; the remote revocation is best-effort and a failure
// there does not surface here.
//
// @Summary      Sign out
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Router       /v1/session [delete]
func (h *AuthHandler) SignOut(c echo.Context) error {
	sessionID, _ := c.Get(apimiddleware.CtxSessionID).(string)
	store, _ := c.Get(apimiddleware.CtxSessionStore).(*session.Store)
	if store != nil {
		store.SignOut(c.Request().Context())
	}
	if sessionID != "" {
		h.sessions.Remove(sessionID)
	}
	metrics.ActiveSessions.Set(float64(h.sessions.Len()))
	return c.NoContent(http.StatusNoContent)
}
