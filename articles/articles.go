// Package articles is the typed client for the article browsing and search
// endpoints.
package articles

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"

	"github.com/bandungjournal/bandung-client/apiclient"
)

// Author is the byline summary embedded in an article.
type Author struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Category is the category summary embedded in an article.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Article struct {
	ID            string     `json:"id"`
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	FeaturedImage string     `json:"featuredImage,omitempty"`
	AuthorID      string     `json:"authorId"`
	Author        Author     `json:"author"`
	CategoryID    string     `json:"categoryId"`
	Category      Category   `json:"category"`
	ViewCount     int        `json:"viewCount,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
	Tags          []Tag      `json:"tags,omitempty"`
}

// ListParams filter and paginate the article listing. Zero values are
// omitted from the query string.
type ListParams struct {
	Page         int    `url:"page,omitempty"`
	Limit        int    `url:"limit,omitempty"`
	CategoryID   string `url:"categoryId,omitempty"`
	CategorySlug string `url:"categorySlug,omitempty"`
	Search       string `url:"search,omitempty"`
}

// Meta is the pagination block returned alongside article listings.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type ListResult struct {
	Articles []Article `json:"articles"`
	Meta     Meta      `json:"meta"`
}

type Service struct {
	api *apiclient.Client
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

// List returns a page of articles, optionally filtered by category or a
// search term.
func (s *Service) List(ctx context.Context, params *ListParams) (*ListResult, error) {
	var q url.Values
	if params != nil {
		var err error
		q, err = query.Values(params)
		if err != nil {
			return nil, fmt.Errorf("[articles List] failed to encode params: %w", err)
		}
	}

	var result ListResult
	if err := s.api.Get(ctx, "/articles", q, &result); err != nil {
		return nil, fmt.Errorf("[articles List] %w", err)
	}
	return &result, nil
}

// GetBySlug returns a single article with its full content.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	if slug == "" {
		return nil, fmt.Errorf("[articles GetBySlug] slug is required")
	}

	var article Article
	if err := s.api.Get(ctx, "/articles/"+url.PathEscape(slug), nil, &article); err != nil {
		return nil, fmt.Errorf("[articles GetBySlug] %w", err)
	}
	return &article, nil
}
