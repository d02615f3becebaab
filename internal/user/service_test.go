package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	byEmail map[string]*User
	byID    map[string]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: map[string]*User{}, byID: map[string]*User{}}
}

func (f *fakeRepo) Create(u *User) error {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return nil
}

func (f *fakeRepo) GetByEmail(email string) (*User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetByID(id string) (*User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListByIDs(ids []string) ([]User, error) {
	var out []User
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(u *User) error {
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeRepo) AddPoints(id string, delta int64) error {
	u, ok := f.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.EcoPoints += delta
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewService(newFakeRepo())

	u, err := svc.Register("Juan@Example.COM", "secret123", "Juan")
	require.NoError(t, err)
	assert.Equal(t, "juan@example.com", u.Email)
	assert.NotEqual(t, "secret123", u.PassHash)
	assert.Equal(t, RoleTraveler, u.Role)

	got, err := svc.Login("juan@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestRegisterDefaultsDisplayName(t *testing.T) {
	svc := NewService(newFakeRepo())
	u, err := svc.Register("juan@example.com", "secret123", "")
	require.NoError(t, err)
	assert.Equal(t, "juan", u.DisplayName)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeRepo())
	_, err := svc.Register("juan@example.com", "secret123", "Juan")
	require.NoError(t, err)
	_, err = svc.Register("juan@example.com", "other", "Juan II")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	svc := NewService(newFakeRepo())
	_, err := svc.Register("juan@example.com", "secret123", "Juan")
	require.NoError(t, err)

	_, err = svc.Login("juan@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfileKeepsUnsetFields(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	u, err := svc.Register("juan@example.com", "secret123", "Juan")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateProfile(u.ID, UpdateProfileRequest{AvatarKey: "avatars/juan.png"}))
	got := repo.byID[u.ID]
	assert.Equal(t, "Juan", got.DisplayName)
	assert.Equal(t, "avatars/juan.png", got.AvatarKey)
}

func TestListPublicOmitsCredentials(t *testing.T) {
	svc := NewService(newFakeRepo())
	u, err := svc.Register("juan@example.com", "secret123", "Juan")
	require.NoError(t, err)

	profiles, err := svc.ListPublic([]string{u.ID, "missing"})
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, u.ID, profiles[0].UserID)
	assert.Equal(t, "Juan", profiles[0].DisplayName)
}

func TestIsAdmin(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	u, err := svc.Register("admin@example.com", "secret123", "Admin")
	require.NoError(t, err)
	assert.False(t, svc.IsAdmin(u.ID))

	repo.byID[u.ID].Role = RoleAdmin
	assert.True(t, svc.IsAdmin(u.ID))
}

func TestCanModerate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	u, err := svc.Register("mod@example.com", "secret123", "Mod")
	require.NoError(t, err)
	assert.False(t, svc.CanModerate(u.ID))

	repo.byID[u.ID].Role = RoleModerator
	assert.True(t, svc.CanModerate(u.ID))
	assert.False(t, svc.IsAdmin(u.ID))

	repo.byID[u.ID].Role = RoleAdmin
	assert.True(t, svc.CanModerate(u.ID))
	assert.False(t, svc.CanModerate("missing"))
}
