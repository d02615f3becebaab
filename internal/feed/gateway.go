// Package feed holds the client-side session state for the community feed:
// an in-memory snapshot of posts annotated with the signed-in user's like
// state, an optimistic mutation engine with per-operation rollback, and a
// lazily-populated comment thread cache.
package feed

import (
	"context"
	"errors"
	"time"
)

// Post is a community post as the gateway reports it. Identifiers are opaque
// strings; the gateway owns their format.
type Post struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"author_id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	Category     string    `json:"category"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type Comment struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

type Profile struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	AvatarKey   string `json:"avatar_key"`
}

// Gateway is the remote system of record. Mutations are not retried here;
// reconciliation of failures is the Store's job.
type Gateway interface {
	ListPosts(ctx context.Context) ([]Post, error)
	ListProfilesByIDs(ctx context.Context, ids []string) ([]Profile, error)
	ListLikedPostIDs(ctx context.Context, userID string) ([]string, error)
	InsertLike(ctx context.Context, postID, userID string) error
	DeleteLike(ctx context.Context, postID, userID string) error
	ListComments(ctx context.Context, postID string) ([]Comment, error)
	InsertComment(ctx context.Context, postID, userID, text string) error
}

var (
	// ErrAuthenticationRequired is returned by mutations attempted without a
	// signed-in user. No state changes and the gateway is never called.
	ErrAuthenticationRequired = errors.New("sign in to do that")

	// ErrRemoteMutationFailed means the optimistic change was rolled back (or
	// resynced away) because the backing write failed.
	ErrRemoteMutationFailed = errors.New("remote mutation failed")

	// ErrRemoteFetchFailed means a feed or thread load failed; the caller
	// must reload explicitly, nothing is retried.
	ErrRemoteFetchFailed = errors.New("remote fetch failed")

	// ErrUnknownPost means the target post is not in the current snapshot.
	ErrUnknownPost = errors.New("post not in current feed")
)
