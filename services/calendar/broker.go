package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	userRepo "saudeplus/database/repository/user"
	"saudeplus/models"
)

// tokenExpirySkew is the safety margin applied to the cached access token so
// it cannot expire mid-flight during the calendar API call that follows.
const tokenExpirySkew = 60 * time.Second

// defaultExpiresIn is assumed when the token endpoint omits expires_in.
const defaultExpiresIn = 3600

// TokenBroker produces a currently valid Google access token for a user,
// refreshing and persisting it transparently when the cached one is stale.
type TokenBroker interface {
	GetValidAccessToken(ctx context.Context, user *models.User) (string, error)
}

// GoogleTokenBroker implements TokenBroker against Google's OAuth token
// endpoint. Client credentials are injected at construction; nothing is read
// from ambient globals.
type GoogleTokenBroker struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	HTTPClient   *http.Client
	Users        userRepo.UserRepository
}

// NewGoogleTokenBroker constructs a broker with a bounded HTTP timeout.
func NewGoogleTokenBroker(clientID, clientSecret, tokenURL string, users userRepo.UserRepository) *GoogleTokenBroker {
	return &GoogleTokenBroker{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		HTTPClient:   &http.Client{Timeout: 20 * time.Second},
		Users:        users,
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// GetValidAccessToken returns the cached access token when it is still fresh,
// otherwise performs a refresh-token exchange and persists the new token and
// expiry in a single update before returning it. The stored refresh token is
// only replaced when the endpoint reissues one.
func (b *GoogleTokenBroker) GetValidAccessToken(ctx context.Context, user *models.User) (string, error) {
	if user.GoogleRefreshToken == "" {
		return "", &NotConnectedError{UserID: user.ID}
	}

	now := time.Now()
	if user.GoogleAccessToken != "" && now.Unix() < user.GoogleTokenExpiry-int64(tokenExpirySkew.Seconds()) {
		return user.GoogleAccessToken, nil
	}

	form := url.Values{
		"client_id":     {b.ClientID},
		"client_secret": {b.ClientSecret},
		"refresh_token": {user.GoogleRefreshToken},
		"grant_type":    {"refresh_token"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("building token refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := b.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading token refresh response: %w", err)
	}

	var tok tokenResponse
	if jsonErr := json.Unmarshal(body, &tok); jsonErr != nil || resp.StatusCode >= http.StatusMultipleChoices || tok.AccessToken == "" {
		return "", &RefreshFailedError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	expiresIn := tok.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = defaultExpiresIn
	}
	expiry := now.Unix() + expiresIn

	if err := b.Users.UpdateGoogleTokens(ctx, user.ID, tok.AccessToken, tok.RefreshToken, expiry); err != nil {
		return "", fmt.Errorf("persisting refreshed token: %w", err)
	}

	user.GoogleAccessToken = tok.AccessToken
	user.GoogleTokenExpiry = expiry
	if tok.RefreshToken != "" {
		user.GoogleRefreshToken = tok.RefreshToken
	}
	return tok.AccessToken, nil
}
