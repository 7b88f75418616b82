package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/bandungjournal/bandung-client/apiclient"
	"github.com/bandungjournal/bandung-client/credstore"
	errs "github.com/bandungjournal/bandung-client/internal/errors"
	"github.com/bandungjournal/bandung-client/users"
)

// Controller exposes login/register/verify/logout and the current
// authentication state. Operations are independent; no de-duplication of
// concurrent identical calls is performed, and the last one to resolve wins
// for in-memory state.
type Controller struct {
	api   *apiclient.Client
	creds credstore.Store

	mu    sync.RWMutex
	state State
	user  *users.User
}

// NewController hydrates synchronously from the credential store: a stored
// session means Authenticated, anything else means Anonymous. No network
// call is made.
func NewController(api *apiclient.Client, creds credstore.Store) (*Controller, error) {
	if api == nil {
		return nil, fmt.Errorf("[NewController] api client is required")
	}
	if creds == nil {
		return nil, fmt.Errorf("[NewController] credential store is required")
	}

	c := &Controller{api: api, creds: creds, state: StateInitializing}
	c.hydrate()
	return c, nil
}

func (c *Controller) hydrate() {
	user, _ := c.creds.Load()

	c.mu.Lock()
	defer c.mu.Unlock()
	if user != nil {
		c.state = StateAuthenticated
		c.user = user
		return
	}
	c.state = StateAnonymous
}

// State returns the current authentication state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// User returns a copy of the current user record, or nil when anonymous.
func (c *Controller) User() *users.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

func (c *Controller) IsAuthenticated() bool {
	return c.State() == StateAuthenticated
}

// Token returns the persisted access token, or "" when anonymous. The token
// may be stale; the client refreshes it transparently on first use.
func (c *Controller) Token() string {
	return c.creds.Token()
}

// Login exchanges credentials for a session. On success the user record and
// access token are persisted and the state becomes Authenticated; on failure
// the state is unchanged and the error is surfaced for the caller to display.
func (c *Controller) Login(ctx context.Context, email, password string) (*users.User, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	var result loginResult
	if err := c.api.Post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &result); err != nil {
		if apiclient.IsStatus(err, http.StatusUnauthorized) {
			return nil, fmt.Errorf("[Controller Login] %w: %w", errs.ErrInvalidCredentials, err)
		}
		return nil, fmt.Errorf("[Controller Login] %w", err)
	}

	if err := c.creds.Save(&result.User, result.AccessToken); err != nil {
		return nil, fmt.Errorf("[Controller Login] failed to persist session: %w", err)
	}

	c.mu.Lock()
	c.state = StateAuthenticated
	user := result.User
	c.user = &user
	c.mu.Unlock()

	log.Debug().Str("user_id", result.User.ID).Msg("session: login succeeded")
	u := result.User
	return &u, nil
}

// Register creates a pending-verification account. Authentication state does
// not change; the returned Registration carries the one-time-code expiry the
// caller needs for the verification step.
func (c *Controller) Register(ctx context.Context, name, email, password string) (*Registration, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", errs.ErrInvalidInput)
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidateNewPassword(password); err != nil {
		return nil, err
	}

	var result Registration
	if err := c.api.Post(ctx, "/auth/register", registerRequest{Name: name, Email: email, Password: password}, &result); err != nil {
		return nil, fmt.Errorf("[Controller Register] %w", err)
	}
	return &result, nil
}

// VerifyEmail confirms an account with its one-time code. Verification does
// not authenticate; a login must follow.
func (c *Controller) VerifyEmail(ctx context.Context, userID, code string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", errs.ErrInvalidInput)
	}
	if err := ValidateCode(code); err != nil {
		return err
	}

	if err := c.api.Post(ctx, "/auth/verify-email", verifyEmailRequest{UserID: userID, Code: code}, nil); err != nil {
		return fmt.Errorf("[Controller VerifyEmail] %w", err)
	}
	return nil
}

// Logout ends the session. The server call is best-effort: whatever it
// returns, the credential store is cleared and the state becomes Anonymous,
// because the user's intent to leave is always honored locally.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.api.Post(ctx, "/auth/logout", nil, nil); err != nil {
		log.Debug().Err(err).Msg("session: server-side logout failed, clearing locally anyway")
	}

	c.creds.Clear()

	c.mu.Lock()
	c.state = StateAnonymous
	c.user = nil
	c.mu.Unlock()
}

// ForgotPassword requests a reset code. The backend answers success-shaped
// regardless of account existence.
func (c *Controller) ForgotPassword(ctx context.Context, email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := c.api.Post(ctx, "/auth/forgot-password", map[string]string{"email": email}, nil); err != nil {
		return fmt.Errorf("[Controller ForgotPassword] %w", err)
	}
	return nil
}

// ResetPassword sets a new password using the emailed code.
func (c *Controller) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidateCode(code); err != nil {
		return err
	}
	if err := ValidateNewPassword(newPassword); err != nil {
		return err
	}

	req := resetPasswordRequest{Email: email, Code: code, NewPassword: newPassword}
	if err := c.api.Post(ctx, "/auth/reset-password", req, nil); err != nil {
		return fmt.Errorf("[Controller ResetPassword] %w", err)
	}
	return nil
}

// ResendVerification requests a fresh verification code and returns the
// user id the code was issued for.
func (c *Controller) ResendVerification(ctx context.Context, email string) (string, error) {
	if err := ValidateEmail(email); err != nil {
		return "", err
	}

	var result struct {
		UserID string `json:"userId"`
	}
	if err := c.api.Post(ctx, "/auth/resend-verification", map[string]string{"email": email}, &result); err != nil {
		return "", fmt.Errorf("[Controller ResendVerification] %w", err)
	}
	return result.UserID, nil
}

// ResendResetCode requests a fresh password-reset code.
func (c *Controller) ResendResetCode(ctx context.Context, email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := c.api.Post(ctx, "/auth/resend-reset-code", map[string]string{"email": email}, nil); err != nil {
		return fmt.Errorf("[Controller ResendResetCode] %w", err)
	}
	return nil
}

// ReplaceUser swaps the session's user record wholesale, keeping the current
// access token. Used after a profile update.
func (c *Controller) ReplaceUser(user *users.User) error {
	if user == nil {
		return fmt.Errorf("%w: user is required", errs.ErrInvalidInput)
	}

	token := c.creds.Token()
	if token == "" {
		return fmt.Errorf("[Controller ReplaceUser] no active session")
	}
	if err := c.creds.Save(user, token); err != nil {
		return fmt.Errorf("[Controller ReplaceUser] failed to persist user record: %w", err)
	}

	c.mu.Lock()
	u := *user
	c.user = &u
	c.state = StateAuthenticated
	c.mu.Unlock()
	return nil
}
