package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const clientTimeout = 5 * time.Second

// Client is a Gateway over the community REST API. The bearer token may be
// empty for signed-out sessions; read endpoints work without one.
type Client struct {
	base  string
	token string
	hc    *http.Client
}

func NewClient(base, token string) *Client {
	return &Client{
		base:  strings.TrimRight(base, "/"),
		token: token,
		hc:    &http.Client{Timeout: clientTimeout},
	}
}

type postItem struct {
	ID        uint64    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Category  string    `json:"category"`
	Likes     int64     `json:"likes"`
	Comments  int64     `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}

type commentItem struct {
	ID         uint64    `json:"id"`
	PostID     uint64    `json:"post_id"`
	UserID     string    `json:"user_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	var out struct {
		Items []postItem `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &out); err != nil {
		return nil, err
	}
	posts := make([]Post, 0, len(out.Items))
	for _, it := range out.Items {
		posts = append(posts, Post{
			ID:           strconv.FormatUint(it.ID, 10),
			AuthorID:     it.UserID,
			Title:        it.Title,
			Body:         it.Body,
			Category:     it.Category,
			LikeCount:    it.Likes,
			CommentCount: it.Comments,
			CreatedAt:    it.CreatedAt,
		})
	}
	return posts, nil
}

func (c *Client) ListProfilesByIDs(ctx context.Context, ids []string) ([]Profile, error) {
	var out struct {
		Items []Profile `json:"items"`
	}
	path := "/profiles?ids=" + url.QueryEscape(strings.Join(ids, ","))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) ListLikedPostIDs(ctx context.Context, userID string) ([]string, error) {
	var out struct {
		PostIDs []uint64 `json:"post_ids"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/likes", nil, &out); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(out.PostIDs))
	for _, id := range out.PostIDs {
		ids = append(ids, strconv.FormatUint(id, 10))
	}
	return ids, nil
}

func (c *Client) InsertLike(ctx context.Context, postID, userID string) error {
	return c.do(ctx, http.MethodPost, "/posts/"+url.PathEscape(postID)+"/like", nil, nil)
}

func (c *Client) DeleteLike(ctx context.Context, postID, userID string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(postID)+"/like", nil, nil)
}

func (c *Client) ListComments(ctx context.Context, postID string) ([]Comment, error) {
	var out struct {
		Items []commentItem `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/posts/"+url.PathEscape(postID)+"/comments", nil, &out); err != nil {
		return nil, err
	}
	comments := make([]Comment, 0, len(out.Items))
	for _, it := range out.Items {
		comments = append(comments, Comment{
			ID:         strconv.FormatUint(it.ID, 10),
			PostID:     strconv.FormatUint(it.PostID, 10),
			AuthorID:   it.UserID,
			AuthorName: it.AuthorName,
			Body:       it.Text,
			CreatedAt:  it.CreatedAt,
		})
	}
	return comments, nil
}

func (c *Client) InsertComment(ctx context.Context, postID, userID, text string) error {
	body := map[string]string{"text": text}
	return c.do(ctx, http.MethodPost, "/posts/"+url.PathEscape(postID)+"/comments", body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("community service status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
