package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"saudeplus/config"
	userRepo "saudeplus/database/repository/user"
	"saudeplus/models"
	"saudeplus/utils"
)

const (
	oauthStatePrefix = "oauthState:"
	oauthStateTTL    = 10 * time.Minute

	calendarEventsScope = "https://www.googleapis.com/auth/calendar.events"
)

// GoogleOAuth drives the two Google consent flows: plain login and calendar
// connection (offline access with the calendar.events scope).
type GoogleOAuth struct {
	Login    *oauth2.Config
	Calendar *oauth2.Config
	Users    userRepo.UserRepository
	Cache    *redis.Client
}

// NewGoogleOAuth builds both OAuth configs from the loaded configuration.
func NewGoogleOAuth(users userRepo.UserRepository, cache *redis.Client) *GoogleOAuth {
	cfg := config.AppConfig
	return &GoogleOAuth{
		Login: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  cfg.BaseURL + "/oauth2/callback/login",
			Scopes:       []string{"openid", "email", "profile"},
		},
		Calendar: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  cfg.BaseURL + "/oauth2/callback/calendar",
			Scopes:       []string{"openid", "email", "profile", calendarEventsScope},
		},
		Users: users,
		Cache: cache,
	}
}

// LoginURL returns the consent URL for the login flow.
func (g *GoogleOAuth) LoginURL(state string) string {
	return g.Login.AuthCodeURL(state,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"))
}

// CalendarURL returns the consent URL for the calendar connection flow.
// Offline access plus a forced consent prompt so Google issues a refresh
// token.
func (g *GoogleOAuth) CalendarURL(state string) string {
	return g.Calendar.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("include_granted_scopes", "true"))
}

// NewState stores a one-time state nonce bound to the initiating user (empty
// for anonymous login) and returns it.
func (g *GoogleOAuth) NewState(ctx context.Context, userID string) (string, error) {
	state := uuid.New().String()
	if err := g.Cache.Set(ctx, oauthStatePrefix+state, userID, oauthStateTTL).Err(); err != nil {
		return "", fmt.Errorf("storing oauth state: %w", err)
	}
	return state, nil
}

// consumeState resolves and deletes a state nonce, returning the bound user
// id (possibly empty).
func (g *GoogleOAuth) consumeState(ctx context.Context, state string) (string, error) {
	key := oauthStatePrefix + state
	userID, err := g.Cache.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", errors.New("unknown oauth state")
	}
	if err != nil {
		return "", fmt.Errorf("looking up oauth state: %w", err)
	}
	g.Cache.Del(ctx, key)
	return userID, nil
}

// HandleLoginCallback exchanges the authorization code, reads identity claims
// from the id_token, upserts the account and returns it with a signed JWT.
func (g *GoogleOAuth) HandleLoginCallback(ctx context.Context, code, state string) (*models.User, string, error) {
	if _, err := g.consumeState(ctx, state); err != nil {
		return nil, "", err
	}

	tok, err := g.Login.Exchange(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("exchanging authorization code: %w", err)
	}
	idToken, ok := tok.Extra("id_token").(string)
	if !ok || idToken == "" {
		return nil, "", errors.New("id_token missing from token response")
	}

	// The id_token came straight from Google's token endpoint over TLS, so
	// claims are read without signature verification, as the consent flow
	// guarantees their origin.
	claims, err := utils.DecodeUnverifiedClaims(idToken)
	if err != nil {
		return nil, "", fmt.Errorf("decoding id_token: %w", err)
	}
	email, _ := claims["email"].(string)
	sub, _ := claims["sub"].(string)
	email = strings.ToLower(email)
	if email == "" {
		return nil, "", errors.New("email missing from id_token")
	}

	user, err := g.Users.GetByEmail(ctx, email)
	if errors.Is(err, userRepo.ErrNotFound) && sub != "" {
		user, err = g.Users.GetByGoogleSub(ctx, sub)
	}
	switch {
	case errors.Is(err, userRepo.ErrNotFound):
		user = &models.User{
			ID:        uuid.New().String(),
			Email:     email,
			GoogleSub: sub,
			CreatedAt: time.Now(),
		}
		if err := g.Users.Create(ctx, user); err != nil {
			return nil, "", fmt.Errorf("creating account: %w", err)
		}
	case err != nil:
		return nil, "", fmt.Errorf("fetching account: %w", err)
	default:
		if sub != "" && user.GoogleSub != sub {
			if err := g.Users.SetGoogleSub(ctx, user.ID, sub); err != nil {
				return nil, "", fmt.Errorf("linking google account: %w", err)
			}
			user.GoogleSub = sub
		}
	}

	jwtToken, err := utils.GenerateToken(user.ID, user.Email, AuthTokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("signing token: %w", err)
	}
	return user, jwtToken, nil
}

// HandleCalendarCallback exchanges the authorization code and persists the
// calendar tokens on the account that initiated the flow. When the state is
// not bound to a user (cookie-less flows), the account is resolved from the
// id_token email, creating it if necessary.
func (g *GoogleOAuth) HandleCalendarCallback(ctx context.Context, code, state string) (*models.User, error) {
	userID, err := g.consumeState(ctx, state)
	if err != nil {
		return nil, err
	}

	tok, err := g.Calendar.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}

	var user *models.User
	if userID != "" {
		user, err = g.Users.GetByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("fetching account: %w", err)
		}
	} else {
		idToken, _ := tok.Extra("id_token").(string)
		if idToken == "" {
			return nil, errors.New("no session and no id_token to resolve account")
		}
		claims, err := utils.DecodeUnverifiedClaims(idToken)
		if err != nil {
			return nil, fmt.Errorf("decoding id_token: %w", err)
		}
		email, _ := claims["email"].(string)
		email = strings.ToLower(email)
		if email == "" {
			return nil, errors.New("email missing from id_token")
		}
		user, err = g.Users.GetByEmail(ctx, email)
		if errors.Is(err, userRepo.ErrNotFound) {
			user = &models.User{ID: uuid.New().String(), Email: email, CreatedAt: time.Now()}
			if err := g.Users.Create(ctx, user); err != nil {
				return nil, fmt.Errorf("creating account: %w", err)
			}
		} else if err != nil {
			return nil, fmt.Errorf("fetching account: %w", err)
		}
	}

	expiry := tok.Expiry.Unix()
	if tok.Expiry.IsZero() {
		expiry = time.Now().Add(time.Hour).Unix()
	}
	if err := g.Users.UpdateGoogleTokens(ctx, user.ID, tok.AccessToken, tok.RefreshToken, expiry); err != nil {
		return nil, fmt.Errorf("persisting calendar tokens: %w", err)
	}
	user.GoogleAccessToken = tok.AccessToken
	user.GoogleTokenExpiry = expiry
	if tok.RefreshToken != "" {
		user.GoogleRefreshToken = tok.RefreshToken
	}
	return user, nil
}
