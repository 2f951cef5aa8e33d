package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/notepad/pkg/jwtx"
	"github.com/aussiebroadwan/notepad/pkg/slogx"
)

// SessionCookieName is the cookie the browser client stores its token in.
const SessionCookieName = "token"

// CookieConfig controls the attributes of the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool // also switches SameSite to None for cross-site clients
}

func (c CookieConfig) name() string {
	if c.Name == "" {
		return SessionCookieName
	}
	return c.Name
}

// SetSessionCookie stores token in an HttpOnly cookie that expires with it.
func (c CookieConfig) SetSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	sameSite := http.SameSiteLaxMode
	if c.Secure {
		sameSite = http.SameSiteNoneMode
	}

	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}

	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    token,
		Path:     "/",
		Expires:  expiresAt.UTC(),
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: sameSite,
	})
}

// ClearSessionCookie tells the browser to drop the session cookie.
func (c CookieConfig) ClearSessionCookie(w http.ResponseWriter) {
	sameSite := http.SameSiteLaxMode
	if c.Secure {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: sameSite,
	})
}

// TokenFromRequest returns the session token from the cookie, falling back
// to an Authorization bearer header. Browser clients sometimes persist the
// strings "undefined" or "null"; those count as no token.
func (c CookieConfig) TokenFromRequest(r *http.Request) string {
	var raw string
	if ck, err := r.Cookie(c.name()); err == nil {
		raw = ck.Value
	}

	if usable(raw) == "" {
		authz := r.Header.Get("Authorization")
		if len(authz) > 7 && strings.EqualFold(authz[:7], "Bearer ") {
			raw = authz[7:]
		}
	}

	return usable(raw)
}

func usable(tok string) string {
	tok = strings.TrimSpace(tok)
	switch tok {
	case "", "undefined", "null":
		return ""
	}
	return tok
}

// SessionMiddleware rejects requests without a valid session token and puts
// the token's subject into the request context.
func SessionMiddleware(v jwtx.Verifier, cookie CookieConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := cookie.TokenFromRequest(r)
			if raw == "" {
				writeUnauthenticated(w, "No token, authorization denied")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Debug("session token rejected", "err", err)
				writeUnauthenticated(w, "Token is not valid")
				return
			}

			ctx = WithUserID(ctx, claims.Subject)
			ctx = slogx.WithUserID(ctx, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthenticated(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteError(w, http.StatusUnauthorized, "unauthenticated", msg)
}
