package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bandungjournal/bandung-client/apiclient"
	"github.com/bandungjournal/bandung-client/credstore"
	errs "github.com/bandungjournal/bandung-client/internal/errors"
	"github.com/bandungjournal/bandung-client/session"
	"github.com/bandungjournal/bandung-client/users"
)

func writeEnvelope(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"message": message,
		"data":    data,
	})
}

func newController(t *testing.T, handler http.Handler, store credstore.Store) *session.Controller {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	api, err := apiclient.NewClient(server.URL, store)
	require.NoError(t, err)

	ctrl, err := session.NewController(api, store)
	require.NoError(t, err)
	return ctrl
}

func TestController_Hydration(t *testing.T) {
	noNetwork := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("hydration must not hit the network")
	})

	t.Run("stored session hydrates to authenticated", func(t *testing.T) {
		store := credstore.NewMemStore()
		require.NoError(t, store.Save(&users.User{ID: "u1", Email: "a@b.com", Name: "A", Role: users.RoleUser}, "tok1"))

		ctrl := newController(t, noNetwork, store)
		require.Equal(t, session.StateAuthenticated, ctrl.State())
		require.True(t, ctrl.IsAuthenticated())
		require.Equal(t, "u1", ctrl.User().ID)
	})

	t.Run("empty store hydrates to anonymous", func(t *testing.T) {
		ctrl := newController(t, noNetwork, credstore.NewMemStore())
		require.Equal(t, session.StateAnonymous, ctrl.State())
		require.Nil(t, ctrl.User())
	})

	t.Run("corrupt user record hydrates to anonymous", func(t *testing.T) {
		store := credstore.NewMemStore()
		store.SetRaw("{broken", "tok1")

		ctrl := newController(t, noNetwork, store)
		require.Equal(t, session.StateAnonymous, ctrl.State())
	})
}

func TestController_Login(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Email != "a@b.com" || req.Password != "secret123" {
			writeEnvelope(w, http.StatusUnauthorized, false, "invalid credentials", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, true, "ok", map[string]any{
			"accessToken": "tok1",
			"user": map[string]string{
				"id":    "u1",
				"email": "a@b.com",
				"name":  "A",
				"role":  "user",
			},
		})
	})
	// Failed logins must not trip the refresh path into a retry storm.
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, false, "no refresh cookie", nil)
	})

	t.Run("success transitions to authenticated", func(t *testing.T) {
		store := credstore.NewMemStore()
		ctrl := newController(t, mux, store)

		user, err := ctrl.Login(context.Background(), "a@b.com", "secret123")
		require.NoError(t, err)
		require.Equal(t, session.StateAuthenticated, ctrl.State())
		require.Equal(t, "u1", user.ID)
		require.Equal(t, "a@b.com", user.Email)
		require.Equal(t, users.RoleUser, user.Role)

		stored, token := store.Load()
		require.NotNil(t, stored)
		require.Equal(t, "u1", stored.ID)
		require.Equal(t, "tok1", token)
	})

	t.Run("failure leaves state anonymous", func(t *testing.T) {
		store := credstore.NewMemStore()
		ctrl := newController(t, mux, store)

		_, err := ctrl.Login(context.Background(), "a@b.com", "wrong-password")
		require.ErrorIs(t, err, errs.ErrInvalidCredentials)
		require.Equal(t, session.StateAnonymous, ctrl.State())
		require.Empty(t, store.Token())
	})

	t.Run("malformed email rejected before the network", func(t *testing.T) {
		ctrl := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("request should not be sent")
		}), credstore.NewMemStore())

		_, err := ctrl.Login(context.Background(), "not-an-email", "secret123")
		require.ErrorIs(t, err, errs.ErrInvalidEmail)
	})
}

func TestController_Register(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusCreated, true, "ok", map[string]any{
			"user": map[string]string{
				"id":    "u2",
				"email": "new@b.com",
				"name":  "New",
				"role":  "user",
			},
			"otpExpiresIn": 600,
			"otpExpiresAt": "2026-08-31T12:10:00Z",
		})
	})

	store := credstore.NewMemStore()
	ctrl := newController(t, mux, store)

	reg, err := ctrl.Register(context.Background(), "New", "new@b.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, "u2", reg.User.ID)
	require.Equal(t, 600, reg.OTPExpiresIn)
	require.False(t, reg.OTPExpiresAt.IsZero())

	// Registration produces a pending-verification user, not a session.
	require.Equal(t, session.StateAnonymous, ctrl.State())
	require.Empty(t, store.Token())
}

func TestController_VerifyEmail(t *testing.T) {
	var gotCode string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/verify-email", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID string `json:"userId"`
			Code   string `json:"code"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotCode = req.Code
		writeEnvelope(w, http.StatusOK, true, "verified", nil)
	})

	ctrl := newController(t, mux, credstore.NewMemStore())

	require.NoError(t, ctrl.VerifyEmail(context.Background(), "u2", "123456"))
	require.Equal(t, "123456", gotCode)

	// Verification success still requires a subsequent login.
	require.Equal(t, session.StateAnonymous, ctrl.State())

	t.Run("rejects non six digit codes", func(t *testing.T) {
		require.ErrorIs(t, ctrl.VerifyEmail(context.Background(), "u2", "12345"), errs.ErrInvalidCode)
		require.ErrorIs(t, ctrl.VerifyEmail(context.Background(), "u2", "12345x"), errs.ErrInvalidCode)
	})
}

func TestController_LogoutAlwaysClears(t *testing.T) {
	t.Run("server logout succeeds", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusOK, true, "bye", nil)
		})

		store := credstore.NewMemStore()
		require.NoError(t, store.Save(&users.User{ID: "u1", Role: users.RoleUser}, "tok1"))
		ctrl := newController(t, mux, store)
		require.True(t, ctrl.IsAuthenticated())

		ctrl.Logout(context.Background())
		require.Equal(t, session.StateAnonymous, ctrl.State())
		require.Nil(t, ctrl.User())
		require.Empty(t, store.Token())
	})

	t.Run("offline logout still clears", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // every call now fails with a network error

		store := credstore.NewMemStore()
		require.NoError(t, store.Save(&users.User{ID: "u1", Role: users.RoleUser}, "tok1"))

		api, err := apiclient.NewClient(server.URL, store)
		require.NoError(t, err)
		ctrl, err := session.NewController(api, store)
		require.NoError(t, err)

		ctrl.Logout(context.Background())
		require.Equal(t, session.StateAnonymous, ctrl.State())
		require.Empty(t, store.Token())
	})
}

func TestController_PasswordRecovery(t *testing.T) {
	var resetBody map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/forgot-password", func(w http.ResponseWriter, r *http.Request) {
		// Enumeration-safe: success-shaped regardless of account existence.
		writeEnvelope(w, http.StatusOK, true, "if the account exists, a code was sent", nil)
	})
	mux.HandleFunc("POST /auth/reset-password", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&resetBody))
		writeEnvelope(w, http.StatusOK, true, "password updated", nil)
	})

	ctrl := newController(t, mux, credstore.NewMemStore())

	require.NoError(t, ctrl.ForgotPassword(context.Background(), "a@b.com"))
	require.NoError(t, ctrl.ResetPassword(context.Background(), "a@b.com", "654321", "newsecret1"))
	require.Equal(t, map[string]string{
		"email":       "a@b.com",
		"code":        "654321",
		"newPassword": "newsecret1",
	}, resetBody)

	t.Run("short replacement password rejected", func(t *testing.T) {
		err := ctrl.ResetPassword(context.Background(), "a@b.com", "654321", "short")
		require.ErrorIs(t, err, errs.ErrInvalidPassword)
	})
}

func TestController_ReplaceUser(t *testing.T) {
	store := credstore.NewMemStore()
	require.NoError(t, store.Save(&users.User{ID: "u1", Name: "A", Role: users.RoleUser}, "tok1"))

	ctrl := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), store)

	updated := &users.User{ID: "u1", Name: "A Renamed", Role: users.RoleUser}
	require.NoError(t, ctrl.ReplaceUser(updated))
	require.Equal(t, "A Renamed", ctrl.User().Name)

	stored, token := store.Load()
	require.Equal(t, "A Renamed", stored.Name)
	require.Equal(t, "tok1", token)
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.com", "first.last@news.bandung.id"}
	for _, email := range valid {
		require.NoError(t, session.ValidateEmail(email), email)
	}

	invalid := []string{"", "plain", "@b.com", "a@", "a@nodot", "a@@b.com", "a@.com", "a@b."}
	for _, email := range invalid {
		require.Error(t, session.ValidateEmail(email), email)
	}
}
