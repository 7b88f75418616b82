// Package categories is the typed client for the category endpoints.
package categories

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/bandungjournal/bandung-client/apiclient"
)

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Count       *Count `json:"_count,omitempty"`
}

// Count carries the backend's relation counters.
type Count struct {
	Articles int `json:"articles"`
}

// ArticleSummary is the trimmed article shape embedded in a category detail.
type ArticleSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt"`
	FeaturedImage string    `json:"featuredImage,omitempty"`
	PublishedAt   time.Time `json:"publishedAt"`
}

type CategoryWithArticles struct {
	Category
	Articles []ArticleSummary `json:"articles,omitempty"`
}

type Service struct {
	api *apiclient.Client
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	var result []Category
	if err := s.api.Get(ctx, "/categories", nil, &result); err != nil {
		return nil, fmt.Errorf("[categories List] %w", err)
	}
	return result, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*CategoryWithArticles, error) {
	if slug == "" {
		return nil, fmt.Errorf("[categories GetBySlug] slug is required")
	}

	var result CategoryWithArticles
	if err := s.api.Get(ctx, "/categories/"+url.PathEscape(slug), nil, &result); err != nil {
		return nil, fmt.Errorf("[categories GetBySlug] %w", err)
	}
	return &result, nil
}
