// Package authors is the typed client for the author listing and profile
// endpoints.
package authors

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"

	"github.com/bandungjournal/bandung-client/apiclient"
	"github.com/bandungjournal/bandung-client/articles"
)

type Author struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type Stats struct {
	ArticleCount int `json:"articleCount"`
	TotalViews   int `json:"totalViews"`
	CommentCount int `json:"commentCount"`
}

// ListParams paginate author and per-author article listings.
type ListParams struct {
	Page  int `url:"page,omitempty"`
	Limit int `url:"limit,omitempty"`
}

type ListResult struct {
	Authors []Author `json:"authors"`
	Total   int      `json:"total"`
}

type ArticlesResult struct {
	Articles []articles.Article `json:"articles"`
	Total    int                `json:"total"`
}

type Service struct {
	api *apiclient.Client
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

func (s *Service) List(ctx context.Context, params *ListParams) (*ListResult, error) {
	q, err := encodeParams(params)
	if err != nil {
		return nil, fmt.Errorf("[authors List] %w", err)
	}

	var result ListResult
	if err := s.api.Get(ctx, "/authors", q, &result); err != nil {
		return nil, fmt.Errorf("[authors List] %w", err)
	}
	return &result, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Author, error) {
	if id == "" {
		return nil, fmt.Errorf("[authors Get] id is required")
	}

	var author Author
	if err := s.api.Get(ctx, "/authors/"+url.PathEscape(id), nil, &author); err != nil {
		return nil, fmt.Errorf("[authors Get] %w", err)
	}
	return &author, nil
}

func (s *Service) Stats(ctx context.Context, id string) (*Stats, error) {
	if id == "" {
		return nil, fmt.Errorf("[authors Stats] id is required")
	}

	var stats Stats
	if err := s.api.Get(ctx, "/authors/"+url.PathEscape(id)+"/stats", nil, &stats); err != nil {
		return nil, fmt.Errorf("[authors Stats] %w", err)
	}
	return &stats, nil
}

func (s *Service) Articles(ctx context.Context, id string, params *ListParams) (*ArticlesResult, error) {
	if id == "" {
		return nil, fmt.Errorf("[authors Articles] id is required")
	}
	q, err := encodeParams(params)
	if err != nil {
		return nil, fmt.Errorf("[authors Articles] %w", err)
	}

	var result ArticlesResult
	if err := s.api.Get(ctx, "/authors/"+url.PathEscape(id)+"/articles", q, &result); err != nil {
		return nil, fmt.Errorf("[authors Articles] %w", err)
	}
	return &result, nil
}

func encodeParams(params *ListParams) (url.Values, error) {
	if params == nil {
		return nil, nil
	}
	q, err := query.Values(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode params: %w", err)
	}
	return q, nil
}
