package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userRepo "saudeplus/database/repository/user"
	"saudeplus/models"
)

type tokenUpdate struct {
	AccessToken  string
	RefreshToken string
	Expiry       int64
}

// fakeUserRepo records token updates without a real database.
type fakeUserRepo struct {
	users   map[string]*models.User
	updates []tokenUpdate
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
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
	return nil
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	return nil
}

func (r *fakeUserRepo) SetGoogleSub(_ context.Context, id, sub string) error {
	return nil
}

func (r *fakeUserRepo) UpdateGoogleTokens(_ context.Context, id, accessToken, refreshToken string, expiry int64) error {
	u, ok := r.users[id]
	if !ok {
		return userRepo.ErrNotFound
	}
	u.GoogleAccessToken = accessToken
	u.GoogleTokenExpiry = expiry
	if refreshToken != "" {
		u.GoogleRefreshToken = refreshToken
	}
	r.updates = append(r.updates, tokenUpdate{AccessToken: accessToken, RefreshToken: refreshToken, Expiry: expiry})
	return nil
}

// tokenEndpoint returns an httptest server mimicking the OAuth token endpoint
// and a counter of refresh calls received.
func tokenEndpoint(t *testing.T, status int, response map[string]interface{}) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		calls++
		require.NoError(t, req.ParseForm())
		assert.Equal(t, "refresh_token", req.Form.Get("grant_type"))
		assert.Equal(t, "client-id", req.Form.Get("client_id"))
		assert.Equal(t, "client-secret", req.Form.Get("client_secret"))
		assert.NotEmpty(t, req.Form.Get("refresh_token"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newBroker(url string, users userRepo.UserRepository) *GoogleTokenBroker {
	return NewGoogleTokenBroker("client-id", "client-secret", url, users)
}

func TestGetValidAccessTokenNotConnected(t *testing.T) {
	repo := newFakeUserRepo(&models.User{ID: "u1", Email: "a@b.com"})
	broker := newBroker("http://unused", repo)

	_, err := broker.GetValidAccessToken(context.Background(), repo.users["u1"])

	var notConnected *NotConnectedError
	require.ErrorAs(t, err, &notConnected)
	assert.Equal(t, "u1", notConnected.UserID)
	assert.Empty(t, repo.updates)
}

func TestGetValidAccessTokenFastPath(t *testing.T) {
	// Token expiring in 120s is still usable; no refresh call may happen.
	user := &models.User{
		ID:                 "u1",
		GoogleRefreshToken: "r1",
		GoogleAccessToken:  "cached",
		GoogleTokenExpiry:  time.Now().Add(120 * time.Second).Unix(),
	}
	repo := newFakeUserRepo(user)
	srv, calls := tokenEndpoint(t, http.StatusOK, map[string]interface{}{
		"access_token": "fresh", "expires_in": 3600,
	})
	broker := newBroker(srv.URL, repo)

	token, err := broker.GetValidAccessToken(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, "cached", token)
	assert.Equal(t, 0, *calls)
	assert.Empty(t, repo.updates)
}

func TestGetValidAccessTokenRefreshesNearExpiry(t *testing.T) {
	// A token expiring in 30s is within the 60s safety margin.
	user := &models.User{
		ID:                 "u1",
		GoogleRefreshToken: "r1",
		GoogleAccessToken:  "stale",
		GoogleTokenExpiry:  time.Now().Add(30 * time.Second).Unix(),
	}
	repo := newFakeUserRepo(user)
	srv, calls := tokenEndpoint(t, http.StatusOK, map[string]interface{}{
		"access_token": "fresh", "expires_in": 3600,
	})
	broker := newBroker(srv.URL, repo)

	token, err := broker.GetValidAccessToken(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, "fresh", token)
	assert.Equal(t, 1, *calls)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, "fresh", user.GoogleAccessToken)
}

func TestGetValidAccessTokenInitialRefresh(t *testing.T) {
	user := &models.User{ID: "u1", GoogleRefreshToken: "r1"}
	repo := newFakeUserRepo(user)
	srv, _ := tokenEndpoint(t, http.StatusOK, map[string]interface{}{
		"access_token": "a1", "expires_in": 3600,
	})
	broker := newBroker(srv.URL, repo)

	before := time.Now().Unix()
	token, err := broker.GetValidAccessToken(context.Background(), user)
	after := time.Now().Unix()

	require.NoError(t, err)
	assert.Equal(t, "a1", token)
	require.Len(t, repo.updates, 1)
	update := repo.updates[0]
	assert.Equal(t, "a1", update.AccessToken)
	assert.GreaterOrEqual(t, update.Expiry, before+3600)
	assert.LessOrEqual(t, update.Expiry, after+3600)
	// Both in-memory token and expiry must move together.
	assert.Equal(t, "a1", user.GoogleAccessToken)
	assert.Equal(t, update.Expiry, user.GoogleTokenExpiry)
	// The original refresh token was not reissued, so it must survive.
	assert.Equal(t, "r1", user.GoogleRefreshToken)
}

func TestGetValidAccessTokenMissingAccessToken(t *testing.T) {
	user := &models.User{
		ID:                 "u1",
		GoogleRefreshToken: "r1",
		GoogleAccessToken:  "stale",
		GoogleTokenExpiry:  42,
	}
	repo := newFakeUserRepo(user)
	srv, _ := tokenEndpoint(t, http.StatusOK, map[string]interface{}{
		"scope": "calendar.events",
	})
	broker := newBroker(srv.URL, repo)

	_, err := broker.GetValidAccessToken(context.Background(), user)

	var refreshFailed *RefreshFailedError
	require.ErrorAs(t, err, &refreshFailed)
	assert.Empty(t, repo.updates)
	assert.Equal(t, "stale", user.GoogleAccessToken)
	assert.Equal(t, int64(42), user.GoogleTokenExpiry)
}

func TestGetValidAccessTokenUpstreamRejection(t *testing.T) {
	user := &models.User{ID: "u1", GoogleRefreshToken: "r1"}
	repo := newFakeUserRepo(user)
	srv, _ := tokenEndpoint(t, http.StatusBadRequest, map[string]interface{}{
		"error": "invalid_grant",
	})
	broker := newBroker(srv.URL, repo)

	_, err := broker.GetValidAccessToken(context.Background(), user)

	var refreshFailed *RefreshFailedError
	require.ErrorAs(t, err, &refreshFailed)
	assert.Equal(t, http.StatusBadRequest, refreshFailed.StatusCode)
	assert.Contains(t, refreshFailed.Body, "invalid_grant")
	assert.Empty(t, repo.updates)
}

func TestGetValidAccessTokenRotatesReissuedRefreshToken(t *testing.T) {
	user := &models.User{ID: "u1", GoogleRefreshToken: "r1"}
	repo := newFakeUserRepo(user)
	srv, _ := tokenEndpoint(t, http.StatusOK, map[string]interface{}{
		"access_token": "a1", "refresh_token": "r2", "expires_in": 3600,
	})
	broker := newBroker(srv.URL, repo)

	_, err := broker.GetValidAccessToken(context.Background(), user)

	require.NoError(t, err)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, "r2", repo.updates[0].RefreshToken)
	assert.Equal(t, "r2", user.GoogleRefreshToken)
}

func TestGetValidAccessTokenDefaultsExpiresIn(t *testing.T) {
	user := &models.User{ID: "u1", GoogleRefreshToken: "r1"}
	repo := newFakeUserRepo(user)
	srv, _ := tokenEndpoint(t, http.StatusOK, map[string]interface{}{
		"access_token": "a1",
	})
	broker := newBroker(srv.URL, repo)

	before := time.Now().Unix()
	_, err := broker.GetValidAccessToken(context.Background(), user)

	require.NoError(t, err)
	require.Len(t, repo.updates, 1)
	assert.GreaterOrEqual(t, repo.updates[0].Expiry, before+3600)
}

func TestGetValidAccessTokenEndpointUnreachable(t *testing.T) {
	user := &models.User{ID: "u1", GoogleRefreshToken: "r1"}
	repo := newFakeUserRepo(user)
	broker := newBroker("http://127.0.0.1:1", repo)
	broker.HTTPClient.Timeout = time.Second

	_, err := broker.GetValidAccessToken(context.Background(), user)

	require.Error(t, err)
	var refreshFailed *RefreshFailedError
	assert.False(t, errors.As(err, &refreshFailed))
	assert.Empty(t, repo.updates)
}
