package post

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	nextID uint64
	posts  map[uint64]*Post
}

func newFakeRepo() *fakeRepo { return &fakeRepo{posts: map[uint64]*Post{}} }

func (f *fakeRepo) Create(p *Post) error {
	f.nextID++
	p.ID = f.nextID
	f.posts[p.ID] = p
	return nil
}

func (f *fakeRepo) List(limit, offset int) ([]Post, error) {
	var out []Post
	for _, p := range f.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeRepo) GetByID(id uint64) (*Post, error) {
	if p, ok := f.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) Update(p *Post) error {
	f.posts[p.ID] = p
	return nil
}

func (f *fakeRepo) Delete(id uint64) error {
	delete(f.posts, id)
	return nil
}

type fakeWriter struct{ events []any }

func (f *fakeWriter) WriteJSON(_ context.Context, v any) error {
	f.events = append(f.events, v)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestCreatePublishesEvent(t *testing.T) {
	repo := newFakeRepo()
	events := &fakeWriter{}
	svc := NewService(repo, events)

	p, err := svc.Create("u1", CreateReq{Title: "  Mangrove tour  ", Body: "details", Category: "trip-report"})
	require.NoError(t, err)
	assert.Equal(t, "Mangrove tour", p.Title)
	require.Len(t, events.events, 1)
	ev := events.events[0].(PostEvent)
	assert.Equal(t, p.ID, ev.ID)
	assert.Equal(t, "u1", ev.UserID)
}

func TestCreateRejectsEmpty(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	_, err := svc.Create("u1", CreateReq{Title: " ", Body: "x"})
	require.ErrorIs(t, err, ErrEmptyPost)
	_, err = svc.Create("u1", CreateReq{Title: "x", Body: ""})
	require.ErrorIs(t, err, ErrEmptyPost)
}

func TestUpdateByAuthorOrModerator(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)
	p, err := svc.Create("u1", CreateReq{Title: "t", Body: "b"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Update("u2", p.ID, UpdateReq{Title: "hijack"}, false), ErrForbidden)

	require.NoError(t, svc.Update("u1", p.ID, UpdateReq{Title: "better title"}, false))
	got, err := svc.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "better title", got.Title)
	assert.Equal(t, "b", got.Body)

	// A moderator or admin edit passes the role check.
	require.NoError(t, svc.Update("mod", p.ID, UpdateReq{Body: "cleaned up"}, true))
	got, err = svc.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "cleaned up", got.Body)
	assert.Equal(t, "u1", got.UserID)
}

func TestDeleteByAuthorOrAdmin(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	p1, err := svc.Create("u1", CreateReq{Title: "t", Body: "b"})
	require.NoError(t, err)
	p2, err := svc.Create("u1", CreateReq{Title: "t2", Body: "b2"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete("u2", p1.ID, false), ErrForbidden)
	require.NoError(t, svc.Delete("u1", p1.ID, false))
	require.NoError(t, svc.Delete("u2", p2.ID, true))
	assert.Empty(t, repo.posts)
}
