package bookmarks_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bandungjournal/bandung-client/apiclient"
	"github.com/bandungjournal/bandung-client/bookmarks"
	"github.com/bandungjournal/bandung-client/credstore"
	"github.com/bandungjournal/bandung-client/users"
)

func newService(t *testing.T, handler http.Handler) *bookmarks.Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := credstore.NewMemStore()
	require.NoError(t, store.Save(&users.User{ID: "u1", Role: users.RoleUser}, "tok1"))

	api, err := apiclient.NewClient(server.URL, store)
	require.NoError(t, err)
	return bookmarks.NewService(api)
}

func listPayload() map[string]any {
	return map[string]any{
		"success": true,
		"message": "ok",
		"data": []map[string]any{
			{
				"id":        "b1",
				"articleId": "a1",
				"userId":    "u1",
				"createdAt": "2026-08-30T08:00:00Z",
				"article":   map[string]any{"id": "a1", "slug": "angklung-festival", "title": "Angklung festival returns"},
			},
		},
	}
}

func TestService_ListAndMembership(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/me/bookmarks", r.URL.Path)
		require.Equal(t, "Bearer tok1", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(listPayload())
	}))

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "angklung-festival", list[0].Article.Slug)

	require.True(t, svc.IsBookmarked(context.Background(), "angklung-festival"))
	require.False(t, svc.IsBookmarked(context.Background(), "some-other-story"))
}

func TestService_AddRemove(t *testing.T) {
	var gotMethod, gotPath string
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "ok", "data": nil})
	}))

	require.NoError(t, svc.Add(context.Background(), "angklung-festival"))
	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "/articles/angklung-festival/bookmark", gotPath)

	require.NoError(t, svc.Remove(context.Background(), "angklung-festival"))
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/articles/angklung-festival/bookmark", gotPath)
}

func TestService_IsBookmarkedSwallowsErrors(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "boom"})
	}))

	require.False(t, svc.IsBookmarked(context.Background(), "anything"))
}
