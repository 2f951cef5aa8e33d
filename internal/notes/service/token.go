package service

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/notepad/pkg/jwtx"
)

// TokenService mints and checks session tokens. It satisfies jwtx.Verifier
// so it can sit directly behind httpx.SessionMiddleware.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTL      time.Duration

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// NewTokenService builds an HS256 token service. A zero ttl means
// jwtx.DefaultSessionTTL.
func NewTokenService(secret []byte, issuer string, ttl time.Duration) (*TokenService, error) {
	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return nil, err
	}
	verifier, err := jwtx.NewVerifierHS256(secret, issuer)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	return &TokenService{
		Signer:   signer,
		Verifier: verifier,
		Issuer:   issuer,
		TTL:      ttl,
	}, nil
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Issue returns a signed token for userID and the instant it stops being valid.
func (s *TokenService) Issue(userID string) (string, time.Time, error) {
	claims := jwtx.NewSessionClaims(userID, s.Issuer, s.TTL, s.now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return token, claims.ExpiresAtTime(), nil
}

// Verify checks token and returns its claims. Every failure wraps
// ErrInvalidToken as well as the underlying jwtx error.
func (s *TokenService) Verify(token string) (jwtx.Claims, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return jwtx.Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}

// UserID verifies token and returns the user it was issued to.
func (s *TokenService) UserID(token string) (string, error) {
	claims, err := s.Verify(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
