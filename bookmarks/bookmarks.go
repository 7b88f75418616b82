// Package bookmarks is the typed client for the reader's saved articles.
// All endpoints require an authenticated session.
package bookmarks

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/bandungjournal/bandung-client/apiclient"
	"github.com/bandungjournal/bandung-client/articles"
)

type Bookmark struct {
	ID        string           `json:"id"`
	ArticleID string           `json:"articleId"`
	UserID    string           `json:"userId"`
	CreatedAt time.Time        `json:"createdAt"`
	Article   articles.Article `json:"article"`
}

type Service struct {
	api *apiclient.Client
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

// List returns the current user's bookmarks.
func (s *Service) List(ctx context.Context) ([]Bookmark, error) {
	var result []Bookmark
	if err := s.api.Get(ctx, "/users/me/bookmarks", nil, &result); err != nil {
		return nil, fmt.Errorf("[bookmarks List] %w", err)
	}
	return result, nil
}

// Add bookmarks an article by slug.
func (s *Service) Add(ctx context.Context, slug string) error {
	if slug == "" {
		return fmt.Errorf("[bookmarks Add] slug is required")
	}
	if err := s.api.Post(ctx, "/articles/"+url.PathEscape(slug)+"/bookmark", nil, nil); err != nil {
		return fmt.Errorf("[bookmarks Add] %w", err)
	}
	return nil
}

// Remove deletes a bookmark by article slug.
func (s *Service) Remove(ctx context.Context, slug string) error {
	if slug == "" {
		return fmt.Errorf("[bookmarks Remove] slug is required")
	}
	if err := s.api.Delete(ctx, "/articles/"+url.PathEscape(slug)+"/bookmark", nil); err != nil {
		return fmt.Errorf("[bookmarks Remove] %w", err)
	}
	return nil
}

// IsBookmarked reports whether the article is in the user's bookmarks.
// There is no dedicated endpoint; this scans the listing and treats any
// failure as "not bookmarked".
func (s *Service) IsBookmarked(ctx context.Context, slug string) bool {
	list, err := s.List(ctx)
	if err != nil {
		return false
	}
	for _, b := range list {
		if b.Article.Slug == slug {
			return true
		}
	}
	return false
}
