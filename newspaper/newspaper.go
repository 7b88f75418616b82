// Package newspaper is the typed client for the front-page surfaces:
// featured placements, breaking news, trending, and the newsletter.
package newspaper

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/bandungjournal/bandung-client/apiclient"
	"github.com/bandungjournal/bandung-client/articles"
)

// Position is a featured-article placement slot.
type Position string

const (
	PositionHero     Position = "hero"
	PositionSidebar  Position = "sidebar"
	PositionTrending Position = "trending"
)

type FeaturedArticle struct {
	ID       string           `json:"id"`
	Position Position         `json:"position"`
	Article  articles.Article `json:"article"`
}

type BreakingNewsItem struct {
	ID        string    `json:"id"`
	Headline  string    `json:"headline"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type TrendingArticle struct {
	articles.Article
	TrendScore float64 `json:"trendScore,omitempty"`
}

type Subscription struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

type Service struct {
	api *apiclient.Client
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

// Featured returns featured placements, optionally filtered by position.
func (s *Service) Featured(ctx context.Context, position Position) ([]FeaturedArticle, error) {
	var q url.Values
	if position != "" {
		q = url.Values{"position": []string{string(position)}}
	}

	var result []FeaturedArticle
	if err := s.api.Get(ctx, "/featured", q, &result); err != nil {
		return nil, fmt.Errorf("[newspaper Featured] %w", err)
	}
	return result, nil
}

// Hero returns the current hero placement, or nil when none is set.
func (s *Service) Hero(ctx context.Context) (*FeaturedArticle, error) {
	var result *FeaturedArticle
	if err := s.api.Get(ctx, "/featured/hero", nil, &result); err != nil {
		return nil, fmt.Errorf("[newspaper Hero] %w", err)
	}
	return result, nil
}

func (s *Service) BreakingNews(ctx context.Context) ([]BreakingNewsItem, error) {
	var result []BreakingNewsItem
	if err := s.api.Get(ctx, "/breaking-news", nil, &result); err != nil {
		return nil, fmt.Errorf("[newspaper BreakingNews] %w", err)
	}
	return result, nil
}

// Trending returns the most-read articles. limit defaults to 10 server-side;
// categoryID narrows to one category when non-empty.
func (s *Service) Trending(ctx context.Context, limit int, categoryID string) ([]TrendingArticle, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if categoryID != "" {
		q.Set("categoryId", categoryID)
	}

	var result []TrendingArticle
	if err := s.api.Get(ctx, "/trending", q, &result); err != nil {
		return nil, fmt.Errorf("[newspaper Trending] %w", err)
	}
	return result, nil
}

func (s *Service) SubscribeNewsletter(ctx context.Context, email string) (*Subscription, error) {
	if email == "" {
		return nil, fmt.Errorf("[newspaper SubscribeNewsletter] email is required")
	}

	var sub Subscription
	if err := s.api.Post(ctx, "/newsletter/subscribe", map[string]string{"email": email}, &sub); err != nil {
		return nil, fmt.Errorf("[newspaper SubscribeNewsletter] %w", err)
	}
	return &sub, nil
}

func (s *Service) UnsubscribeNewsletter(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("[newspaper UnsubscribeNewsletter] email is required")
	}
	if err := s.api.Post(ctx, "/newsletter/unsubscribe", map[string]string{"email": email}, nil); err != nil {
		return fmt.Errorf("[newspaper UnsubscribeNewsletter] %w", err)
	}
	return nil
}
