// Package tags is the typed client for the tag endpoints.
package tags

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/bandungjournal/bandung-client/apiclient"
)

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Count struct {
	Articles int `json:"articles"`
}

type ArticleSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt"`
	FeaturedImage string    `json:"featuredImage,omitempty"`
	PublishedAt   time.Time `json:"publishedAt"`
}

type TagWithArticles struct {
	Tag
	Count    *Count           `json:"_count,omitempty"`
	Articles []ArticleSummary `json:"articles,omitempty"`
}

type Service struct {
	api *apiclient.Client
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

func (s *Service) List(ctx context.Context) ([]Tag, error) {
	var result []Tag
	if err := s.api.Get(ctx, "/tags", nil, &result); err != nil {
		return nil, fmt.Errorf("[tags List] %w", err)
	}
	return result, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*TagWithArticles, error) {
	if slug == "" {
		return nil, fmt.Errorf("[tags GetBySlug] slug is required")
	}

	var result TagWithArticles
	if err := s.api.Get(ctx, "/tags/"+url.PathEscape(slug), nil, &result); err != nil {
		return nil, fmt.Errorf("[tags GetBySlug] %w", err)
	}
	return &result, nil
}
