// Package comments is the typed client for article comments, including
// nested replies.
package comments

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/bandungjournal/bandung-client/apiclient"
	"github.com/bandungjournal/bandung-client/users"
)

type Comment struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	ArticleID string     `json:"articleId"`
	AuthorID  string     `json:"authorId"`
	Author    users.User `json:"author"`
	ParentID  string     `json:"parentId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type createRequest struct {
	Content  string `json:"content"`
	ParentID string `json:"parentId,omitempty"`
}

type updateRequest struct {
	Content string `json:"content"`
}

type Service struct {
	api *apiclient.Client
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

// ListBySlug returns the comments on an article.
func (s *Service) ListBySlug(ctx context.Context, slug string) ([]Comment, error) {
	if slug == "" {
		return nil, fmt.Errorf("[comments ListBySlug] slug is required")
	}

	var result []Comment
	if err := s.api.Get(ctx, "/articles/"+url.PathEscape(slug)+"/comments", nil, &result); err != nil {
		return nil, fmt.Errorf("[comments ListBySlug] %w", err)
	}
	return result, nil
}

// Create posts a comment on an article. A non-empty parentID makes it a
// reply.
func (s *Service) Create(ctx context.Context, slug, content, parentID string) (*Comment, error) {
	if slug == "" {
		return nil, fmt.Errorf("[comments Create] slug is required")
	}
	if content == "" {
		return nil, fmt.Errorf("[comments Create] content is required")
	}

	var comment Comment
	req := createRequest{Content: content, ParentID: parentID}
	if err := s.api.Post(ctx, "/articles/"+url.PathEscape(slug)+"/comments", req, &comment); err != nil {
		return nil, fmt.Errorf("[comments Create] %w", err)
	}
	return &comment, nil
}

// Update edits a comment's content.
func (s *Service) Update(ctx context.Context, commentID, content string) (*Comment, error) {
	if commentID == "" {
		return nil, fmt.Errorf("[comments Update] comment id is required")
	}
	if content == "" {
		return nil, fmt.Errorf("[comments Update] content is required")
	}

	var comment Comment
	if err := s.api.Patch(ctx, "/comments/"+url.PathEscape(commentID), updateRequest{Content: content}, &comment); err != nil {
		return nil, fmt.Errorf("[comments Update] %w", err)
	}
	return &comment, nil
}

// Delete removes a comment.
func (s *Service) Delete(ctx context.Context, commentID string) error {
	if commentID == "" {
		return fmt.Errorf("[comments Delete] comment id is required")
	}

	if err := s.api.Delete(ctx, "/comments/"+url.PathEscape(commentID), nil); err != nil {
		return fmt.Errorf("[comments Delete] %w", err)
	}
	return nil
}
