package feed

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway lets each test swap in behavior per call and count invocations.
type fakeGateway struct {
	mu sync.Mutex

	posts    []Post
	profiles []Profile
	likedIDs []string
	comments map[string][]Comment

	listPostsErr    error
	listProfilesErr error
	listLikedErr    error
	insertLikeErr   error
	deleteLikeErr   error
	listCommentsErr error
	insertCommErr   error

	insertLikeHook func() error
	deleteLikeHook func() error
	insertCommHook func() error

	calls map[string]int
}

func newFakeGateway() *fakeGateway {
	now := time.Now()
	return &fakeGateway{
		posts: []Post{
			{ID: "p1", AuthorID: "alice", Title: "Beach cleanup", LikeCount: 3, CommentCount: 2, CreatedAt: now},
			{ID: "p2", AuthorID: "bob", Title: "Trail report", LikeCount: 10, CommentCount: 0, CreatedAt: now.Add(-time.Hour)},
		},
		profiles: []Profile{
			{UserID: "alice", DisplayName: "Alice"},
			{UserID: "bob", DisplayName: "Bob"},
			{UserID: "me", DisplayName: "Me"},
		},
		comments: map[string][]Comment{
			"p1": {
				{ID: "c1", PostID: "p1", AuthorID: "bob", AuthorName: "Bob", Body: "count me in"},
				{ID: "c2", PostID: "p1", AuthorID: "alice", AuthorName: "Alice", Body: "see you there"},
			},
		},
		calls: map[string]int{},
	}
}

func (g *fakeGateway) bump(name string) {
	g.mu.Lock()
	g.calls[name]++
	g.mu.Unlock()
}

func (g *fakeGateway) count(name string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[name]
}

func (g *fakeGateway) ListPosts(context.Context) ([]Post, error) {
	g.bump("ListPosts")
	if g.listPostsErr != nil {
		return nil, g.listPostsErr
	}
	out := make([]Post, len(g.posts))
	copy(out, g.posts)
	return out, nil
}

func (g *fakeGateway) ListProfilesByIDs(_ context.Context, ids []string) ([]Profile, error) {
	g.bump("ListProfilesByIDs")
	if g.listProfilesErr != nil {
		return nil, g.listProfilesErr
	}
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []Profile
	for _, p := range g.profiles {
		if want[p.UserID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (g *fakeGateway) ListLikedPostIDs(_ context.Context, _ string) ([]string, error) {
	g.bump("ListLikedPostIDs")
	if g.listLikedErr != nil {
		return nil, g.listLikedErr
	}
	return g.likedIDs, nil
}

func (g *fakeGateway) InsertLike(_ context.Context, _, _ string) error {
	g.bump("InsertLike")
	if g.insertLikeHook != nil {
		return g.insertLikeHook()
	}
	return g.insertLikeErr
}

func (g *fakeGateway) DeleteLike(_ context.Context, _, _ string) error {
	g.bump("DeleteLike")
	if g.deleteLikeHook != nil {
		return g.deleteLikeHook()
	}
	return g.deleteLikeErr
}

func (g *fakeGateway) ListComments(_ context.Context, postID string) ([]Comment, error) {
	g.bump("ListComments")
	if g.listCommentsErr != nil {
		return nil, g.listCommentsErr
	}
	g.mu.Lock()
	items := g.comments[postID]
	out := make([]Comment, len(items))
	copy(out, items)
	g.mu.Unlock()
	return out, nil
}

func (g *fakeGateway) InsertComment(_ context.Context, postID, userID, text string) error {
	g.bump("InsertComment")
	if g.insertCommHook != nil {
		if err := g.insertCommHook(); err != nil {
			return err
		}
	}
	if g.insertCommErr != nil {
		return g.insertCommErr
	}
	g.mu.Lock()
	g.comments[postID] = append(g.comments[postID], Comment{
		ID: "c-new", PostID: postID, AuthorID: userID, Body: text, CreatedAt: time.Now(),
	})
	g.mu.Unlock()
	return nil
}

func loadedStore(t *testing.T, gw *fakeGateway, userID string) *Store {
	t.Helper()
	s := NewStore(gw, userID)
	require.NoError(t, s.LoadFeed(context.Background()))
	return s
}

func drainOne(t *testing.T, s *Store) Notification {
	t.Helper()
	select {
	case n := <-s.Notifications():
		return n
	default:
		t.Fatal("expected a notification")
		return Notification{}
	}
}

func TestLoadFeedJoinsProfilesAndLikes(t *testing.T) {
	gw := newFakeGateway()
	gw.likedIDs = []string{"p2"}
	s := loadedStore(t, gw, "me")

	posts := s.Feed()
	require.Len(t, posts, 2)
	// Newest first.
	assert.Equal(t, "p1", posts[0].ID)
	assert.Equal(t, "Alice", posts[0].AuthorName)
	assert.False(t, posts[0].UserLiked)
	assert.Equal(t, "p2", posts[1].ID)
	assert.True(t, posts[1].UserLiked)
}

func TestLoadFeedSignedOutSkipsLikedFetch(t *testing.T) {
	gw := newFakeGateway()
	s := loadedStore(t, gw, "")
	assert.Equal(t, 0, gw.count("ListLikedPostIDs"))
	assert.Len(t, s.Feed(), 2)
}

func TestLoadFeedFailureLeavesFeedEmpty(t *testing.T) {
	gw := newFakeGateway()
	gw.listPostsErr = errors.New("boom")
	s := NewStore(gw, "me")

	err := s.LoadFeed(context.Background())
	require.ErrorIs(t, err, ErrRemoteFetchFailed)
	assert.Empty(t, s.Feed())
	n := drainOne(t, s)
	assert.Equal(t, SeverityError, n.Severity)
}

func TestToggleLikeOptimisticThenConfirmed(t *testing.T) {
	gw := newFakeGateway()
	s := loadedStore(t, gw, "me")

	require.NoError(t, s.ToggleLike(context.Background(), "p1"))
	p := s.Feed()[0]
	assert.True(t, p.UserLiked)
	assert.Equal(t, int64(4), p.LikeCount)
	assert.Equal(t, 1, gw.count("InsertLike"))

	require.NoError(t, s.ToggleLike(context.Background(), "p1"))
	p = s.Feed()[0]
	assert.False(t, p.UserLiked)
	assert.Equal(t, int64(3), p.LikeCount)
	assert.Equal(t, 1, gw.count("DeleteLike"))
}

func TestToggleLikeRollbackRestoresExactState(t *testing.T) {
	gw := newFakeGateway()
	gw.insertLikeErr = errors.New("write refused")
	s := loadedStore(t, gw, "me")

	err := s.ToggleLike(context.Background(), "p1")
	require.ErrorIs(t, err, ErrRemoteMutationFailed)

	p := s.Feed()[0]
	assert.False(t, p.UserLiked)
	assert.Equal(t, int64(3), p.LikeCount)
	n := drainOne(t, s)
	assert.Equal(t, "Your like could not be saved", n.Message)
}

func TestToggleLikeUnauthenticatedIsNoOp(t *testing.T) {
	gw := newFakeGateway()
	s := loadedStore(t, gw, "")
	before := s.Feed()

	err := s.ToggleLike(context.Background(), "p1")
	require.ErrorIs(t, err, ErrAuthenticationRequired)
	assert.Equal(t, before, s.Feed())
	assert.Equal(t, 0, gw.count("InsertLike"))
	assert.Equal(t, 0, gw.count("DeleteLike"))
}

func TestToggleLikeUnknownPost(t *testing.T) {
	gw := newFakeGateway()
	s := loadedStore(t, gw, "me")
	err := s.ToggleLike(context.Background(), "nope")
	require.ErrorIs(t, err, ErrUnknownPost)
}

// Two toggles race on the same post: the first hangs until the second has
// finished. Both succeed, so the net state must be back where it started.
func TestToggleLikeOverlappingBothSucceed(t *testing.T) {
	gw := newFakeGateway()
	s := loadedStore(t, gw, "me")

	insertGate := make(chan struct{})
	gw.insertLikeHook = func() error {
		<-insertGate
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- s.ToggleLike(context.Background(), "p1") }()

	// Wait for the first toggle's optimistic apply to land.
	require.Eventually(t, func() bool {
		return s.Feed()[0].UserLiked
	}, time.Second, 5*time.Millisecond)

	// Second toggle (unlike) completes while the first is still in flight.
	require.NoError(t, s.ToggleLike(context.Background(), "p1"))

	close(insertGate)
	require.NoError(t, <-done)

	p := s.Feed()[0]
	assert.False(t, p.UserLiked)
	assert.Equal(t, int64(3), p.LikeCount)
}

// First of two overlapping toggles fails after the second already applied:
// rollback restores the first's pre-state and discards the second's snapshot,
// which was derived from state the failure invalidated.
func TestToggleLikeOverlappingFirstFails(t *testing.T) {
	gw := newFakeGateway()
	s := loadedStore(t, gw, "me")

	insertGate := make(chan struct{})
	gw.insertLikeHook = func() error {
		<-insertGate
		return errors.New("write refused")
	}

	done := make(chan error, 1)
	go func() { done <- s.ToggleLike(context.Background(), "p1") }()

	require.Eventually(t, func() bool {
		return s.Feed()[0].UserLiked
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, s.ToggleLike(context.Background(), "p1"))

	close(insertGate)
	require.ErrorIs(t, <-done, ErrRemoteMutationFailed)

	p := s.Feed()[0]
	assert.False(t, p.UserLiked)
	assert.Equal(t, int64(3), p.LikeCount)
}

func TestRollbackAfterReloadIsHarmless(t *testing.T) {
	gw := newFakeGateway()
	s := loadedStore(t, gw, "me")

	insertGate := make(chan struct{})
	gw.insertLikeHook = func() error {
		<-insertGate
		return errors.New("write refused")
	}

	done := make(chan error, 1)
	go func() { done <- s.ToggleLike(context.Background(), "p1") }()

	require.Eventually(t, func() bool {
		return s.Feed()[0].UserLiked
	}, time.Second, 5*time.Millisecond)

	// Reload discards all pending snapshots before the failure lands.
	require.NoError(t, s.LoadFeed(context.Background()))

	close(insertGate)
	require.ErrorIs(t, <-done, ErrRemoteMutationFailed)

	// The late rollback must not disturb the fresh snapshot.
	p := s.Feed()[0]
	assert.False(t, p.UserLiked)
	assert.Equal(t, int64(3), p.LikeCount)
}

func TestExpandCommentsCachesThread(t *testing.T) {
	gw := newFakeGateway()
	s := loadedStore(t, gw, "me")

	first, err := s.ExpandComments(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := s.ExpandComments(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, gw.count("ListComments"))
}

func TestInvalidateCommentsForcesRefetch(t *testing.T) {
	gw := newFakeGateway()
	s := loadedStore(t, gw, "me")

	_, err := s.ExpandComments(context.Background(), "p1")
	require.NoError(t, err)
	s.InvalidateComments("p1")
	_, err = s.ExpandComments(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, gw.count("ListComments"))
}

func TestExpandCommentsFetchFailure(t *testing.T) {
	gw := newFakeGateway()
	gw.listCommentsErr = errors.New("boom")
	s := loadedStore(t, gw, "me")

	_, err := s.ExpandComments(context.Background(), "p1")
	require.ErrorIs(t, err, ErrRemoteFetchFailed)
	n := drainOne(t, s)
	assert.Equal(t, "Comments could not be loaded", n.Message)
}

func TestSubmitCommentConfirmedReplacesTemporary(t *testing.T) {
	gw := newFakeGateway()
	s := loadedStore(t, gw, "me")

	before := s.Feed()[0].CommentCount
	require.NoError(t, s.SubmitComment(context.Background(), "p1", "  great initiative  "))

	assert.Equal(t, before+1, s.Feed()[0].CommentCount)
	thread, err := s.ExpandComments(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, thread, 3)
	last := thread[len(thread)-1]
	assert.Equal(t, "great initiative", last.Body)
	assert.False(t, strings.HasPrefix(last.ID, "pending-"), "temporary comment must be replaced by the server thread")
}

func TestSubmitCommentEmptyTextIsNoOp(t *testing.T) {
	gw := newFakeGateway()
	s := loadedStore(t, gw, "me")

	before := s.Feed()[0].CommentCount
	require.NoError(t, s.SubmitComment(context.Background(), "p1", "   \n\t "))
	assert.Equal(t, before, s.Feed()[0].CommentCount)
	assert.Equal(t, 0, gw.count("InsertComment"))
}

func TestSubmitCommentUnauthenticated(t *testing.T) {
	gw := newFakeGateway()
	s := loadedStore(t, gw, "")

	err := s.SubmitComment(context.Background(), "p1", "hello")
	require.ErrorIs(t, err, ErrAuthenticationRequired)
	assert.Equal(t, 0, gw.count("InsertComment"))
}

// Expanding a never-expanded thread while a submit is in flight must return
// the full server thread, not a cache seeded with only the pending comment.
func TestExpandDuringSubmitOnUnexpandedThread(t *testing.T) {
	gw := newFakeGateway()
	s := loadedStore(t, gw, "me")

	insertGate := make(chan struct{})
	gw.insertCommHook = func() error {
		<-insertGate
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- s.SubmitComment(context.Background(), "p1", "hello") }()

	require.Eventually(t, func() bool {
		return s.Feed()[0].CommentCount == 3
	}, time.Second, 5*time.Millisecond)

	thread, err := s.ExpandComments(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, thread, 2)
	for _, c := range thread {
		assert.False(t, strings.HasPrefix(c.ID, "pending-"))
	}

	close(insertGate)
	require.NoError(t, <-done)
}

func TestSubmitShowsPendingCommentOnExpandedThread(t *testing.T) {
	gw := newFakeGateway()
	s := loadedStore(t, gw, "me")

	_, err := s.ExpandComments(context.Background(), "p1")
	require.NoError(t, err)

	insertGate := make(chan struct{})
	gw.insertCommHook = func() error {
		<-insertGate
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- s.SubmitComment(context.Background(), "p1", "hello") }()

	require.Eventually(t, func() bool {
		return s.Feed()[0].CommentCount == 3
	}, time.Second, 5*time.Millisecond)

	thread, err := s.ExpandComments(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, thread, 3)
	last := thread[len(thread)-1]
	assert.True(t, strings.HasPrefix(last.ID, "pending-"))
	assert.Equal(t, "Me", last.AuthorName)

	close(insertGate)
	require.NoError(t, <-done)
}

func TestSubmitCommentFailureResyncsFromServer(t *testing.T) {
	gw := newFakeGateway()
	gw.insertCommErr = errors.New("write refused")
	s := loadedStore(t, gw, "me")

	err := s.SubmitComment(context.Background(), "p1", "hello")
	require.ErrorIs(t, err, ErrRemoteMutationFailed)

	// State reflects the server again: original count, no pending comment.
	assert.Equal(t, int64(2), s.Feed()[0].CommentCount)
	thread, terr := s.ExpandComments(context.Background(), "p1")
	require.NoError(t, terr)
	require.Len(t, thread, 2)
	for _, c := range thread {
		assert.False(t, strings.HasPrefix(c.ID, "pending-"))
	}
	n := drainOne(t, s)
	assert.Equal(t, "Your comment could not be posted", n.Message)
}

func TestNotificationsDropWhenFull(t *testing.T) {
	gw := newFakeGateway()
	gw.insertLikeErr = errors.New("boom")
	s := loadedStore(t, gw, "me")

	// Overflow the buffer; every toggle must still return promptly.
	for i := 0; i < 40; i++ {
		_ = s.ToggleLike(context.Background(), "p1")
	}
	assert.LessOrEqual(t, len(s.Notifications()), 16)
}
