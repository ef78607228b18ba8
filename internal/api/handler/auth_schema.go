package handler

import (
	"time"

	"github.com/astralgate/auth-system/internal/core/domain"
)

// --- Request / Response types ---

type registerRequest struct {
	Username        string `json:"username"         validate:"required"`
	Password        string `json:"password"         validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	FirstName       string `json:"first_name"       validate:"required"`
	LastName        string `json:"last_name"        validate:"required"`
	Email           string `json:"email,omitempty"  validate:"omitempty,email"`
	Phone           string `json:"phone,omitempty"`
	AuthCode        string `json:"auth_code,omitempty"`
	ChallengeID     string `json:"challenge_id"     validate:"required"`
	ChallengeAnswer string `json:"challenge_answer" validate:"required"`
}

type loginRequest struct {
	Username        string `json:"username"         validate:"required"`
	Password        string `json:"password"         validate:"required"`
	ChallengeID     string `json:"challenge_id"     validate:"required"`
	ChallengeAnswer string `json:"challenge_answer" validate:"required"`
}

type sessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type authResponse struct {
	Account *domain.Account `json:"account"`
	Session sessionResponse `json:"session"`
}

type challengeResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}
