package users

// RoleType represents a user's role as reported by the backend
type RoleType string

const (
	RoleAdmin  RoleType = "admin"  // Can manage articles, categories, and users
	RoleEditor RoleType = "editor" // Can author and publish articles
	RoleUser   RoleType = "user"   // Regular reader account
)

// User is the client-side record of "who is logged in". It is exactly the
// `user` payload the backend returns from login and profile endpoints; the
// client never derives or mutates fields locally beyond replacing the whole
// record after a profile update.
type User struct {
	ID       string   `json:"id"`                 // Unique identifier for the user
	Email    string   `json:"email"`              // User's email address
	Name     string   `json:"name"`               // Display name
	Role     RoleType `json:"role"`               // admin | editor | user
	Avatar   string   `json:"avatar,omitempty"`   // Avatar URL, if set
	Bio      string   `json:"bio,omitempty"`      // Short profile bio
	Username string   `json:"username,omitempty"` // Public handle, if set
}

// IsStaff reports whether the user can access editorial surfaces.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleEditor
}
