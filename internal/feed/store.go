package feed

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// likeSnapshot is the pre-toggle state of one post, captured per operation.
// Rolling back restores exactly this pair, so overlapping toggles on the same
// post never clobber each other with a stale whole-list restore.
type likeSnapshot struct {
	op    uint64
	liked bool
	count int64
}

// Store owns the feed state for one view session. All mutation goes through
// its methods; the snapshot is never handed out by reference.
type Store struct {
	gw     Gateway
	userID string

	mu       sync.Mutex
	profile  Profile
	posts    []FeedPost
	index    map[string]int
	comments map[string][]Comment
	pending  map[string][]likeSnapshot
	nextOp   uint64

	notes chan Notification
}

// NewStore creates a session store. An empty userID means a signed-out
// session: the feed still loads, mutations refuse to run.
func NewStore(gw Gateway, userID string) *Store {
	return &Store{
		gw:       gw,
		userID:   userID,
		index:    map[string]int{},
		comments: map[string][]Comment{},
		pending:  map[string][]likeSnapshot{},
		notes:    make(chan Notification, 16),
	}
}

// LoadFeed fetches posts, author profiles and the user's liked set, and joins
// them into a fresh snapshot. Any fetch failure leaves the feed empty; no
// partial feed is ever shown.
func (s *Store) LoadFeed(ctx context.Context) error {
	posts, err := s.gw.ListPosts(ctx)
	if err != nil {
		return s.failLoad(err)
	}

	seen := map[string]bool{}
	var ids []string
	for _, p := range posts {
		if !seen[p.AuthorID] {
			seen[p.AuthorID] = true
			ids = append(ids, p.AuthorID)
		}
	}
	if s.userID != "" && !seen[s.userID] {
		ids = append(ids, s.userID)
	}

	byID := map[string]Profile{}
	if len(ids) > 0 {
		profiles, err := s.gw.ListProfilesByIDs(ctx, ids)
		if err != nil {
			return s.failLoad(err)
		}
		for _, p := range profiles {
			byID[p.UserID] = p
		}
	}

	liked := map[string]bool{}
	if s.userID != "" {
		likedIDs, err := s.gw.ListLikedPostIDs(ctx, s.userID)
		if err != nil {
			return s.failLoad(err)
		}
		for _, id := range likedIDs {
			liked[id] = true
		}
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	feedPosts := make([]FeedPost, len(posts))
	index := make(map[string]int, len(posts))
	for i, p := range posts {
		author := byID[p.AuthorID]
		feedPosts[i] = FeedPost{
			Post:         p,
			AuthorName:   author.DisplayName,
			AuthorAvatar: author.AvatarKey,
			UserLiked:    liked[p.ID],
		}
		index[p.ID] = i
	}

	s.mu.Lock()
	s.posts = feedPosts
	s.index = index
	s.comments = map[string][]Comment{}
	s.pending = map[string][]likeSnapshot{}
	if s.userID != "" {
		s.profile = byID[s.userID]
	}
	s.mu.Unlock()
	return nil
}

func (s *Store) failLoad(err error) error {
	s.mu.Lock()
	s.posts = nil
	s.index = map[string]int{}
	s.comments = map[string][]Comment{}
	s.pending = map[string][]likeSnapshot{}
	s.mu.Unlock()
	s.notify("The community feed could not be loaded", SeverityError)
	return fmt.Errorf("%w: %v", ErrRemoteFetchFailed, err)
}

// Feed returns a copy of the current projection, newest post first.
func (s *Store) Feed() []FeedPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]FeedPost, len(s.posts))
	copy(out, s.posts)
	return out
}

// ToggleLike flips the user's like on a post. The flag and count change
// atomically before the remote write is issued; on failure the captured
// pre-toggle pair is restored and a notification is emitted. No retries.
func (s *Store) ToggleLike(ctx context.Context, postID string) error {
	if s.userID == "" {
		return ErrAuthenticationRequired
	}

	s.mu.Lock()
	i, ok := s.index[postID]
	if !ok {
		s.mu.Unlock()
		return ErrUnknownPost
	}
	p := &s.posts[i]
	s.nextOp++
	op := s.nextOp
	s.pending[postID] = append(s.pending[postID], likeSnapshot{op: op, liked: p.UserLiked, count: p.LikeCount})
	nowLiked := !p.UserLiked
	p.UserLiked = nowLiked
	if nowLiked {
		p.LikeCount++
	} else {
		p.LikeCount--
	}
	s.mu.Unlock()

	var err error
	if nowLiked {
		err = s.gw.InsertLike(ctx, postID, s.userID)
	} else {
		err = s.gw.DeleteLike(ctx, postID, s.userID)
	}
	if err == nil {
		s.confirmLike(postID, op)
		return nil
	}

	s.rollbackLike(postID, op)
	s.notify("Your like could not be saved", SeverityError)
	return fmt.Errorf("%w: %v", ErrRemoteMutationFailed, err)
}

// confirmLike drops the snapshot for a confirmed operation; the optimistic
// state is now the state of record.
func (s *Store) confirmLike(postID string, op uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stack := s.pending[postID]
	for i := range stack {
		if stack[i].op == op {
			s.pending[postID] = append(stack[:i], stack[i+1:]...)
			return
		}
	}
}

// rollbackLike restores the state captured just before the failed operation
// and discards later snapshots for the post, which were derived from state
// the failure invalidated. A no-op if the feed was reloaded or the post is
// gone, so late callbacks after teardown are harmless.
func (s *Store) rollbackLike(postID string, op uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[postID]
	if !ok {
		return
	}
	stack := s.pending[postID]
	for j := range stack {
		if stack[j].op == op {
			s.posts[i].UserLiked = stack[j].liked
			s.posts[i].LikeCount = stack[j].count
			s.pending[postID] = stack[:j]
			return
		}
	}
}

// ExpandComments returns the thread for a post, fetching it on first expand
// and reusing the cached copy afterwards until invalidated.
func (s *Store) ExpandComments(ctx context.Context, postID string) ([]Comment, error) {
	s.mu.Lock()
	if cached, ok := s.comments[postID]; ok {
		out := make([]Comment, len(cached))
		copy(out, cached)
		s.mu.Unlock()
		return out, nil
	}
	s.mu.Unlock()

	items, err := s.gw.ListComments(ctx, postID)
	if err != nil {
		s.notify("Comments could not be loaded", SeverityError)
		return nil, fmt.Errorf("%w: %v", ErrRemoteFetchFailed, err)
	}

	s.mu.Lock()
	s.comments[postID] = items
	out := make([]Comment, len(items))
	copy(out, items)
	s.mu.Unlock()
	return out, nil
}

// InvalidateComments drops the cached thread; the next expand re-fetches.
func (s *Store) InvalidateComments(postID string) {
	s.mu.Lock()
	delete(s.comments, postID)
	s.mu.Unlock()
}

// SubmitComment bumps the count and, if the thread is already cached,
// appends a synthesized comment before the remote insert. A never-expanded
// thread stays uncached so a concurrent expand fetches the full thread
// instead of seeing only the temporary comment. Success swaps the temporary
// comment for the authoritative thread; failure resyncs the whole feed
// rather than attempting a partial rollback, since server-side triggers may
// have touched counts.
func (s *Store) SubmitComment(ctx context.Context, postID, text string) error {
	if s.userID == "" {
		return ErrAuthenticationRequired
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	s.mu.Lock()
	i, ok := s.index[postID]
	if !ok {
		s.mu.Unlock()
		return ErrUnknownPost
	}
	if thread, cached := s.comments[postID]; cached {
		s.comments[postID] = append(thread, Comment{
			ID:         "pending-" + uuid.NewString(),
			PostID:     postID,
			AuthorID:   s.userID,
			AuthorName: s.profile.DisplayName,
			Body:       text,
			CreatedAt:  time.Now(),
		})
	}
	s.posts[i].CommentCount++
	s.mu.Unlock()

	if err := s.gw.InsertComment(ctx, postID, s.userID, text); err != nil {
		s.notify("Your comment could not be posted", SeverityError)
		s.resyncAfterCommentFailure(ctx, postID)
		return fmt.Errorf("%w: %v", ErrRemoteMutationFailed, err)
	}

	s.InvalidateComments(postID)
	if _, err := s.ExpandComments(ctx, postID); err != nil {
		// Thread stays invalidated; next expand re-fetches.
		return nil
	}
	return nil
}

func (s *Store) resyncAfterCommentFailure(ctx context.Context, postID string) {
	_ = s.LoadFeed(ctx)
	if items, err := s.gw.ListComments(ctx, postID); err == nil {
		s.mu.Lock()
		if _, ok := s.index[postID]; ok {
			s.comments[postID] = items
		}
		s.mu.Unlock()
	}
}

// Notifications exposes user-visible messages. The channel is buffered and
// sends are non-blocking: with nobody draining, messages are dropped rather
// than wedging a mutation.
func (s *Store) Notifications() <-chan Notification {
	return s.notes
}

func (s *Store) notify(msg string, sev Severity) {
	select {
	case s.notes <- Notification{Message: msg, Severity: sev}:
	default:
	}
}
