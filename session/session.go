// Package session is the single source of truth for "is someone logged in,
// and as whom". It owns the high-level auth operations and hydrates from the
// credential store at startup; all writers of authentication state live here.
package session

import (
	"time"

	"github.com/bandungjournal/bandung-client/users"
)

// State is the controller's authentication state.
type State string

const (
	// StateInitializing exists only between construction and the synchronous
	// hydration from the credential store.
	StateInitializing State = "initializing"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyEmailRequest struct {
	UserID string `json:"userId"`
	Code   string `json:"code"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

type loginResult struct {
	AccessToken string     `json:"accessToken"`
	User        users.User `json:"user"`
}

// RegisteredUser is the pending-verification account returned by Register.
type RegisteredUser struct {
	ID    string         `json:"id"`
	Email string         `json:"email"`
	Name  string         `json:"name"`
	Role  users.RoleType `json:"role"`
}

// Registration is the register endpoint's payload: the created account plus
// the one-time-code expiry window the caller needs for the verification step.
// Registering does not authenticate.
type Registration struct {
	User         RegisteredUser `json:"user"`
	OTPExpiresIn int            `json:"otpExpiresIn"`
	OTPExpiresAt time.Time      `json:"otpExpiresAt"`
}
