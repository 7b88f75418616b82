// Package credstore persists the access token and the serialized user record
// across process runs. It is the only shared mutable state in the client;
// writes are whole-value and last-writer-wins.
package credstore

import "github.com/bandungjournal/bandung-client/users"

// Storage keys. These are the only two values the client ever persists.
const (
	tokenKey = "access_token"
	userKey  = "user.json"
)

type Store interface {
	// Save writes the user record and access token together. The two writes
	// are sequential, not atomic; each value is individually replaced
	// atomically.
	Save(user *users.User, accessToken string) error

	// SaveToken overwrites only the access token, leaving the user record
	// untouched. Used by the refresh exchange.
	SaveToken(accessToken string) error

	// Load returns the stored user and token only when both are present and
	// the user record decodes. Any missing or corrupt value reads as
	// logged-out (nil, "") rather than an error.
	Load() (*users.User, string)

	// Token returns the stored access token, or "" when absent. It does not
	// require a user record to be present.
	Token() string

	// Clear removes both values unconditionally. It never fails.
	Clear()
}
