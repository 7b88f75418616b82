// Package profile is the typed client for the signed-in reader's account
// endpoints.
package profile

import (
	"context"
	"fmt"

	"github.com/bandungjournal/bandung-client/apiclient"
	"github.com/bandungjournal/bandung-client/internal/utils"
	"github.com/bandungjournal/bandung-client/users"
)

type updateRequest struct {
	Name string `json:"name,omitempty"`
}

type avatarRequest struct {
	AvatarURL *string `json:"avatarUrl"`
}

type Service struct {
	api *apiclient.Client
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

// Get returns the current user's profile from the backend.
func (s *Service) Get(ctx context.Context) (*users.User, error) {
	var user users.User
	if err := s.api.Get(ctx, "/users/me", nil, &user); err != nil {
		return nil, fmt.Errorf("[profile Get] %w", err)
	}
	return &user, nil
}

// Update changes the display name and returns the updated record.
func (s *Service) Update(ctx context.Context, name string) (*users.User, error) {
	if name == "" {
		return nil, fmt.Errorf("[profile Update] name is required")
	}

	var user users.User
	if err := s.api.Post(ctx, "/users/me/profile", updateRequest{Name: name}, &user); err != nil {
		return nil, fmt.Errorf("[profile Update] %w", err)
	}
	return &user, nil
}

// UpdateAvatar sets the avatar URL; an empty string clears it.
func (s *Service) UpdateAvatar(ctx context.Context, avatarURL string) (*users.User, error) {
	req := avatarRequest{}
	if avatarURL != "" {
		req.AvatarURL = utils.Ptr(avatarURL)
	}

	var user users.User
	if err := s.api.Post(ctx, "/users/me/avatar", req, &user); err != nil {
		return nil, fmt.Errorf("[profile UpdateAvatar] %w", err)
	}
	return &user, nil
}
