package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"saudeplus/config"
	userRepo "saudeplus/database/repository/user"
	"saudeplus/models"
	"saudeplus/utils"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, userRepo.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (r *fakeUserRepo) GetByGoogleSub(_ context.Context, sub string) (*models.User, error) {
	for _, u := range r.users {
		if u.GoogleSub == sub {
			return u, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id, name, phone string) error {
	if u, ok := r.users[id]; ok {
		u.Name = name
		u.Phone = phone
		return nil
	}
	return userRepo.ErrNotFound
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	if u, ok := r.users[id]; ok {
		u.PasswordHash = hash
		return nil
	}
	return userRepo.ErrNotFound
}

func (r *fakeUserRepo) SetGoogleSub(_ context.Context, id, sub string) error { return nil }

func (r *fakeUserRepo) UpdateGoogleTokens(_ context.Context, id, access, refresh string, expiry int64) error {
	return nil
}

func newTestService() (*DefaultAuthService, *fakeUserRepo) {
	config.AppConfig = config.Config{JWTSecret: "test-secret"}
	repo := newFakeUserRepo()
	return &DefaultAuthService{Users: repo}, repo
}

func TestRegisterCreatesAccount(t *testing.T) {
	svc, repo := newTestService()

	user, token, err := svc.Register(context.Background(), "  New.User@Example.COM ", "s3cret")

	require.NoError(t, err)
	assert.Equal(t, "new.user@example.com", user.Email)
	assert.NotEmpty(t, user.ID)
	assert.Len(t, repo.users, 1)
	// Password must never be stored in clear.
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))

	id, err := utils.ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	_, _, err := svc.Register(context.Background(), "a@b.com", "pw1")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "A@B.com", "pw2")

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginReturnsToken(t *testing.T) {
	svc, _ := newTestService()
	registered, _, err := svc.Register(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "a@b.com", "pw")

	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _ := newTestService()
	_, _, err := svc.Register(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "a@b.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.Login(context.Background(), "nobody@b.com", "pw")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsGoogleOnlyAccount(t *testing.T) {
	svc, repo := newTestService()
	repo.users["u1"] = &models.User{ID: "u1", Email: "g@b.com", GoogleSub: "sub-1"}

	_, _, err := svc.Login(context.Background(), "g@b.com", "anything")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
