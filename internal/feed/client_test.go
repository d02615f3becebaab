package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientListPosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/posts", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"items":[
			{"id":7,"user_id":"alice","title":"Beach cleanup","body":"b","category":"events","likes":3,"comments":2,"created_at":"2026-08-01T10:00:00Z"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	posts, err := c.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "7", posts[0].ID)
	assert.Equal(t, "alice", posts[0].AuthorID)
	assert.Equal(t, int64(3), posts[0].LikeCount)
	assert.Equal(t, int64(2), posts[0].CommentCount)
}

func TestClientListProfilesByIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/profiles", r.URL.Path)
		assert.Equal(t, "a,b", r.URL.Query().Get("ids"))
		_, _ = w.Write([]byte(`{"items":[{"user_id":"a","display_name":"Alice"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	profiles, err := c.ListProfilesByIDs(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Alice", profiles[0].DisplayName)
}

func TestClientListLikedPostIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me/likes", r.URL.Path)
		_, _ = w.Write([]byte(`{"user_id":"me","post_ids":[4,9]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	ids, err := c.ListLikedPostIDs(context.Background(), "me")
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "9"}, ids)
}

func TestClientLikeRoundTrip(t *testing.T) {
	var methods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/7/like", r.URL.Path)
		methods = append(methods, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	require.NoError(t, c.InsertLike(context.Background(), "7", "me"))
	require.NoError(t, c.DeleteLike(context.Background(), "7", "me"))
	assert.Equal(t, []string{http.MethodPost, http.MethodDelete}, methods)
}

func TestClientInsertComment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/posts/7/comments", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "count me in", body["text"])
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	require.NoError(t, c.InsertComment(context.Background(), "7", "me", "count me in"))
}

func TestClientListComments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/7/comments", r.URL.Path)
		_, _ = w.Write([]byte(`{"items":[
			{"id":1,"post_id":7,"user_id":"bob","author_name":"Bob","text":"hi","created_at":"2026-08-01T10:00:00Z"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	comments, err := c.ListComments(context.Background(), "7")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "1", comments[0].ID)
	assert.Equal(t, "7", comments[0].PostID)
	assert.Equal(t, "Bob", comments[0].AuthorName)
	assert.Equal(t, "hi", comments[0].Body)
}

func TestClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	_, err := c.ListPosts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
