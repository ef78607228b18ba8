package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/astralgate/auth-system/internal/api/metrics"
	"github.com/astralgate/auth-system/internal/api/middleware"
	"github.com/astralgate/auth-system/internal/core/domain"
	"github.com/astralgate/auth-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	challenges  ports.ChallengeVerifier
	// secureCookies controls the Secure flag on session cookies; disabled
	// only for plain-HTTP development setups.
	secureCookies bool
}

func NewAuthHandler(authService ports.AuthService, challenges ports.ChallengeVerifier, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		challenges:    challenges,
		secureCookies: secureCookies,
	}
}

// Register creates a new account and issues its first session.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	satisfied, err := h.challenges.Redeem(c.Request().Context(), req.ChallengeID, req.ChallengeAnswer)
	if err != nil {
		return err
	}

	account, session, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username:           req.Username,
		Password:           req.Password,
		ConfirmPassword:    req.ConfirmPassword,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		Phone:              req.Phone,
		AuthCode:           req.AuthCode,
		ChallengeSatisfied: satisfied,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registerResult(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	metrics.SessionsIssuedTotal.WithLabelValues("register").Inc()

	h.setSessionCookie(c, session)
	return c.JSON(http.StatusCreated, authResponse{
		Account: account,
		Session: sessionResponse{Token: session.ID, ExpiresAt: session.ExpiresAt},
	})
}

// Login authenticates an account and issues a fresh session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
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

	satisfied, err := h.challenges.Redeem(c.Request().Context(), req.ChallengeID, req.ChallengeAnswer)
	if err != nil {
		return err
	}

	account, session, err := h.authService.Login(c.Request().Context(), req.Username, req.Password, satisfied)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionsIssuedTotal.WithLabelValues("login").Inc()

	h.setSessionCookie(c, session)
	return c.JSON(http.StatusOK, authResponse{
		Account: account,
		Session: sessionResponse{Token: session.ID, ExpiresAt: session.ExpiresAt},
	})
}

// Logout destroys the request's session. Always succeeds: logging out an
// absent or already-destroyed session is not an error.
//
// @Summary      Log out
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token := middleware.SessionToken(c)
	if token != "" {
		if err := h.authService.Logout(c.Request().Context(), token); err != nil {
			return err
		}
	}

	h.clearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// CurrentUser returns the account owning the request's live session.
//
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Account
// @Failure      401  {object}  map[string]string
// @Router       /auth/current-user [get]
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

func (h *AuthHandler) setSessionCookie(c echo.Context, session *domain.Session) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func registerResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation_error"
	case errors.Is(err, domain.ErrChallengeFailed):
		return "challenge_failed"
	case errors.Is(err, domain.ErrDuplicateUsername):
		return "duplicate_username"
	default:
		return "error"
	}
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrChallengeFailed):
		return "challenge_failed"
	default:
		return "error"
	}
}
