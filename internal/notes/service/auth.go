package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/notepad/internal/notes/domain"
	"github.com/aussiebroadwan/notepad/internal/notes/store"
	"github.com/aussiebroadwan/notepad/pkg/cryptox"
	"github.com/aussiebroadwan/notepad/pkg/idx"
	"github.com/aussiebroadwan/notepad/pkg/slogx"
)

const MinPasswordLength = 6

// AuthResult is what a successful register or login hands back.
type AuthResult struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	Store  store.Store
	Tokens *TokenService
}

// Register creates an account and signs the new user in.
func (s *AuthService) Register(ctx context.Context, username, password string) (AuthResult, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" {
		return AuthResult{}, validationError("username is required")
	}
	if password == "" {
		return AuthResult{}, validationError("password is required")
	}
	if len([]rune(password)) < MinPasswordLength {
		return AuthResult{}, validationError("password must be at least 6 characters")
	}

	// Fast path only. The unique index decides races.
	_, err := s.Store.Users().GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		log.Info("registration rejected, username taken", slog.String("username", username))
		return AuthResult{}, ErrUsernameTaken
	case !errors.Is(err, store.ErrNotFound):
		log.Error("failed to look up username", slog.Any("error", err))
		return AuthResult{}, mapStoreError(err)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return AuthResult{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Info("registration lost username race", slog.String("username", username))
			return AuthResult{}, ErrUsernameTaken
		}
		log.Error("failed to create user", slog.Any("error", err))
		return AuthResult{}, mapStoreError(err)
	}

	log.Info("user registered", slog.String("user_id", user.ID))
	return s.issue(user.ID)
}

// Login checks credentials. An unknown username and a wrong password fail
// identically.
func (s *AuthService) Login(ctx context.Context, username, password string) (AuthResult, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return AuthResult{}, validationError("username and password are required")
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash so unknown users cost the same as known ones.
			_, _ = cryptox.HashPassword(password)
			log.Info("login failed", slog.String("reason", "unknown_user"))
			return AuthResult{}, ErrInvalidCredentials
		}
		log.Error("failed to look up user", slog.Any("error", err))
		return AuthResult{}, mapStoreError(err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Error("stored password hash unusable", slog.String("user_id", user.ID), slog.Any("error", err))
		} else {
			log.Info("login failed", slog.String("reason", "bad_password"), slog.String("user_id", user.ID))
		}
		return AuthResult{}, ErrInvalidCredentials
	}

	if cryptox.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, user.ID, password)
	}

	log.Info("user logged in", slog.String("user_id", user.ID))
	return s.issue(user.ID)
}

// Me returns the user behind an authenticated request.
func (s *AuthService) Me(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidToken
		}
		return domain.User{}, mapStoreError(err)
	}
	return user, nil
}

// rehash upgrades a legacy or outdated hash. Failure is logged and ignored;
// the user is already authenticated.
func (s *AuthService) rehash(ctx context.Context, userID, password string) {
	log := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Warn("password rehash failed", slog.String("user_id", userID), slog.Any("error", err))
		return
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		log.Warn("password rehash not stored", slog.String("user_id", userID), slog.Any("error", err))
		return
	}
	log.Info("password hash upgraded", slog.String("user_id", userID))
}

func (s *AuthService) issue(userID string) (AuthResult, error) {
	token, expiresAt, err := s.Tokens.Issue(userID)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{UserID: userID, Token: token, ExpiresAt: expiresAt}, nil
}
