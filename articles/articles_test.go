package articles_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bandungjournal/bandung-client/apiclient"
	"github.com/bandungjournal/bandung-client/articles"
	"github.com/bandungjournal/bandung-client/credstore"
)

func newService(t *testing.T, handler http.Handler) *articles.Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	api, err := apiclient.NewClient(server.URL, credstore.NewMemStore())
	require.NoError(t, err)
	return articles.NewService(api)
}

func TestService_List(t *testing.T) {
	var gotQuery string
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/articles", r.URL.Path)
		gotQuery = r.URL.RawQuery

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "ok",
			"data": map[string]any{
				"articles": []map[string]any{
					{
						"id":        "a1",
						"slug":      "flood-warning-cikapundung",
						"title":     "Flood warning along the Cikapundung",
						"excerpt":   "Residents urged to prepare.",
						"content":   "...",
						"createdAt": "2026-08-30T08:00:00Z",
						"author":    map[string]string{"id": "au1", "name": "A Writer"},
						"category":  map[string]string{"id": "c1", "name": "City", "slug": "city"},
					},
				},
				"meta": map[string]int{"page": 2, "limit": 10, "total": 31, "totalPages": 4},
			},
		})
	}))

	result, err := svc.List(context.Background(), &articles.ListParams{Page: 2, Limit: 10, Search: "flood"})
	require.NoError(t, err)
	require.Equal(t, "limit=10&page=2&search=flood", gotQuery)
	require.Len(t, result.Articles, 1)
	require.Equal(t, "flood-warning-cikapundung", result.Articles[0].Slug)
	require.Equal(t, "A Writer", result.Articles[0].Author.Name)
	require.Equal(t, "city", result.Articles[0].Category.Slug)
	require.Equal(t, 4, result.Meta.TotalPages)

	t.Run("nil params sends no query", func(t *testing.T) {
		_, err := svc.List(context.Background(), nil)
		require.NoError(t, err)
		require.Empty(t, gotQuery)
	})
}

func TestService_GetBySlug(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/articles/kopi-luwak-revival" {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "article not found"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "ok",
			"data": map[string]any{
				"id":        "a2",
				"slug":      "kopi-luwak-revival",
				"title":     "Kopi luwak revival in Lembang",
				"excerpt":   "...",
				"content":   "Full story.",
				"createdAt": "2026-08-29T10:00:00Z",
				"tags":      []map[string]string{{"id": "t1", "name": "Coffee", "slug": "coffee"}},
			},
		})
	}))

	article, err := svc.GetBySlug(context.Background(), "kopi-luwak-revival")
	require.NoError(t, err)
	require.Equal(t, "Full story.", article.Content)
	require.Len(t, article.Tags, 1)

	t.Run("missing article surfaces 404", func(t *testing.T) {
		_, err := svc.GetBySlug(context.Background(), "nope")
		require.True(t, apiclient.IsStatus(err, http.StatusNotFound))
	})

	t.Run("empty slug rejected", func(t *testing.T) {
		_, err := svc.GetBySlug(context.Background(), "")
		require.Error(t, err)
	})
}
