// Package auth tracks who is logged in. Only its effect on the guest quota
// matters to the workspace: a logged in user is never quota checked.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/DjordjeVuckovic/newsroom/internal/apperr"
	"github.com/DjordjeVuckovic/newsroom/internal/backend"
	"github.com/DjordjeVuckovic/newsroom/internal/domain"
	"github.com/DjordjeVuckovic/newsroom/internal/dto"
	"github.com/DjordjeVuckovic/newsroom/internal/quota"
	"github.com/DjordjeVuckovic/newsroom/internal/storage"
)

type Session struct {
	api   backend.AuthAPI
	store storage.Store
	quota *quota.Tracker

	mu          sync.RWMutex
	user        *domain.User
	subscribers map[int]func(user *domain.User)
	nextSub     int
}

func NewSession(api backend.AuthAPI, store storage.Store, tracker *quota.Tracker) *Session {
	return &Session{
		api:   api,
		store: store,
		quota: tracker,

		subscribers: make(map[int]func(user *domain.User)),
	}
}

// CurrentUser returns nil for anonymous sessions.
func (s *Session) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) IsAuthenticated() bool {
	return s.CurrentUser() != nil
}

// Token is the persisted bearer token, usable as a backend.TokenSource.
func (s *Session) Token() string {
	token, _ := s.store.Get(storage.KeyToken)
	return token
}

// OnAuthChange calls fn with the new user (nil on logout) after every change.
func (s *Session) OnAuthChange(fn func(user *domain.User)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Restore resolves a persisted token at startup. An invalid token is dropped.
func (s *Session) Restore(ctx context.Context) {
	token := s.Token()
	if token == "" {
		return
	}

	user, err := s.api.Me(ctx, token)
	if err != nil {
		slog.Warn("Stored token rejected, logging out", "error", err)
		if err := s.Logout(); err != nil {
			slog.Error("Failed to drop stored token", "error", err)
		}
		return
	}

	s.setUser(user)
	slog.Debug("Restored session", "username", user.Username)
}

func (s *Session) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperr.NewValidation("email and password are required")
	}

	resp, err := s.api.Login(ctx, dto.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	return s.LoginWithToken(ctx, resp.AccessToken)
}

// LoginWithToken stores token, clears the guest quota and loads the user.
// The quota stays cleared even if the token turns out to be invalid.
func (s *Session) LoginWithToken(ctx context.Context, token string) (*domain.User, error) {
	if err := s.store.Set(storage.KeyToken, token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	if err := s.quota.Reset(); err != nil {
		return nil, fmt.Errorf("reset guest quota: %w", err)
	}

	user, err := s.api.Me(ctx, token)
	if err != nil {
		if logoutErr := s.Logout(); logoutErr != nil {
			slog.Error("Failed to drop rejected token", "error", logoutErr)
		}
		return nil, err
	}

	s.setUser(user)
	slog.Info("Logged in", "username", user.Username)
	return user, nil
}

// Register creates the account and logs straight in.
func (s *Session) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username, email = strings.TrimSpace(username), strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, apperr.NewValidation("username, email and password are required")
	}

	if err := s.api.Register(ctx, dto.RegisterRequest{Username: username, Email: email, Password: password}); err != nil {
		return nil, err
	}

	return s.Login(ctx, email, password)
}

// Logout drops the token only. The guest counter is left as it is.
func (s *Session) Logout() error {
	if err := s.store.Delete(storage.KeyToken); err != nil {
		return err
	}
	s.setUser(nil)
	return nil
}

func (s *Session) ForgotPassword(ctx context.Context, email string) (*dto.ForgotPasswordResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperr.NewValidation("email is required")
	}
	return s.api.ForgotPassword(ctx, email)
}

func (s *Session) ResetPassword(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" || newPassword == "" {
		return apperr.NewValidation("reset token and new password are required")
	}
	return s.api.ResetPassword(ctx, dto.ResetPasswordRequest{Token: token, NewPassword: newPassword})
}

func (s *Session) setUser(user *domain.User) {
	s.mu.Lock()
	s.user = user
	subs := make([]func(*domain.User), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		if user == nil {
			fn(nil)
			continue
		}
		u := *user
		fn(&u)
	}
}
