package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/astralgate/auth-system/internal/api/metrics"
	"github.com/astralgate/auth-system/internal/core/ports"
)

// ChallengeHandler issues verification challenges consumed by registration
// and login. The code stands in for a rendered CAPTCHA; presenting it to a
// human is the frontend's concern.
type ChallengeHandler struct {
	challenges ports.ChallengeVerifier
}

func NewChallengeHandler(challenges ports.ChallengeVerifier) *ChallengeHandler {
	return &ChallengeHandler{challenges: challenges}
}

// Issue hands out a fresh single-use challenge.
//
// @Summary      Issue a verification challenge
// @Tags         auth
// @Produce      json
// @Success      200  {object}  challengeResponse
// @Failure      500  {object}  map[string]string
// @Router       /auth/challenge [get]
func (h *ChallengeHandler) Issue(c echo.Context) error {
	id, code, err := h.challenges.Issue(c.Request().Context())
	if err != nil {
		return err
	}

	metrics.ChallengesIssuedTotal.Inc()
	return c.JSON(http.StatusOK, challengeResponse{ID: id, Code: code})
}
