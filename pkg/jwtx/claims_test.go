package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/notepad/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func newPair(t *testing.T, issuer string) (*jwtx.HS256Signer, *jwtx.HS256Verifier) {
	t.Helper()
	s, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	v, err := jwtx.NewVerifierHS256(secret, issuer)
	require.NoError(t, err)
	return s, v
}

func TestNewSessionClaims(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := jwtx.NewSessionClaims("user-1", "notepad", time.Hour, now)

	require.Equal(t, "user-1", c.Subject)
	require.Equal(t, "notepad", c.Issuer)
	require.Equal(t, now, c.IssuedAt.Time)
	require.Equal(t, now.Add(time.Hour), c.ExpiresAtTime())
	require.NotEmpty(t, c.ID)
	require.NotEqual(t, c.ID, jwtx.NewSessionClaims("user-1", "notepad", time.Hour, now).ID)
}

func TestEmptySecret(t *testing.T) {
	_, err := jwtx.NewSignerHS256(nil)
	require.ErrorIs(t, err, jwtx.ErrEmptySecret)
	_, err = jwtx.NewVerifierHS256([]byte{}, "")
	require.ErrorIs(t, err, jwtx.ErrEmptySecret)
}

func TestRoundTrip(t *testing.T) {
	s, v := newPair(t, "notepad")
	require.Equal(t, "HS256", s.Alg())

	token, err := s.Sign(jwtx.NewSessionClaims("user-1", "notepad", time.Hour, time.Now()))
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 3)

	claims, err := v.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
}

func TestVerifyExpiry(t *testing.T) {
	s, v := newPair(t, "")
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	token, err := s.Sign(jwtx.NewSessionClaims("user-1", "", time.Hour, issued))
	require.NoError(t, err)

	t.Run("one second before exp", func(t *testing.T) {
		v.Now = func() time.Time { return issued.Add(time.Hour - time.Second) }
		_, err := v.Verify(token)
		require.NoError(t, err)
	})

	t.Run("exactly at exp", func(t *testing.T) {
		v.Now = func() time.Time { return issued.Add(time.Hour) }
		_, err := v.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("long after exp", func(t *testing.T) {
		v.Now = func() time.Time { return issued.Add(48 * time.Hour) }
		_, err := v.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("before nbf", func(t *testing.T) {
		v.Now = func() time.Time { return issued.Add(-time.Minute) }
		_, err := v.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrNotYetValid)
	})
}

func TestVerifyRejects(t *testing.T) {
	s, v := newPair(t, "notepad")
	good, err := s.Sign(jwtx.NewSessionClaims("user-1", "notepad", time.Hour, time.Now()))
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		for _, tok := range []string{"", "undefined", "a.b", "a.b.c", "....", strings.Repeat("x", 4096)} {
			require.NotPanics(t, func() {
				_, err := v.Verify(tok)
				require.Error(t, err, tok)
			})
		}
	})

	t.Run("tampered signature", func(t *testing.T) {
		parts := strings.Split(good, ".")
		parts[2] = strings.Repeat("A", len(parts[2]))
		_, err := v.Verify(strings.Join(parts, "."))
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := jwtx.NewSignerHS256([]byte("someone-else"))
		require.NoError(t, err)
		tok, err := other.Sign(jwtx.NewSessionClaims("user-1", "notepad", time.Hour, time.Now()))
		require.NoError(t, err)

		_, err = v.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("alg none", func(t *testing.T) {
		claims := jwtx.NewSessionClaims("user-1", "notepad", time.Hour, time.Now())
		tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = v.Verify(tok)
		require.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		tok, err := s.Sign(jwtx.NewSessionClaims("user-1", "someone", time.Hour, time.Now()))
		require.NoError(t, err)
		_, err = v.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("missing exp", func(t *testing.T) {
		claims := jwtx.NewSessionClaims("user-1", "notepad", time.Hour, time.Now())
		claims.ExpiresAt = nil
		tok, err := s.Sign(claims)
		require.NoError(t, err)
		_, err = v.Verify(tok)
		require.Error(t, err)
	})

	t.Run("missing subject", func(t *testing.T) {
		tok, err := s.Sign(jwtx.NewSessionClaims("", "notepad", time.Hour, time.Now()))
		require.NoError(t, err)
		_, err = v.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})
}
