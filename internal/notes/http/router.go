package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/notepad/internal/notes/service"
	"github.com/aussiebroadwan/notepad/internal/notes/store"
	"github.com/aussiebroadwan/notepad/pkg/httpx"
	"github.com/aussiebroadwan/notepad/pkg/slogx"

	_ "github.com/aussiebroadwan/notepad/api/notes" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// RateLimits holds the three rate limit profiles used by the routes.
type RateLimits struct {
	Strict   httpx.RateLimitConfig
	Moderate httpx.RateLimitConfig
	Lenient  httpx.RateLimitConfig
}

// DefaultRateLimits returns the httpx default profiles.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Strict:   httpx.StrictLimit,
		Moderate: httpx.ModerateLimit,
		Lenient:  httpx.LenientLimit,
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	tokens       *service.TokenService
	cookie       httpx.CookieConfig
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	Limits      RateLimits
	AuthService *service.AuthService
	NoteService *service.NoteService
}

func NewRouter(
	tokens *service.TokenService,
	cookie httpx.CookieConfig,
	clientURL, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		tokens:       tokens,
		cookie:       cookie,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		Limits:       DefaultRateLimits(),
	}

	// Logging first so panics recovered below still get a log line.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(),
		httpx.CORS(clientURL),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerNotes()
	r.registerSystem()

	r.Mux.Handle("GET /swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Notepad API
//	@version		0.1.0
//	@description	Personal note taking service. Users register or log in to receive a session
//	@description	token, delivered as an HttpOnly "token" cookie, and then manage their own notes.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/notepad
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:5000
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	CookieAuth
//	@in							cookie
//	@name						token
//	@description				Session token set by register/login.
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token for non-browser clients. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) authenticated() httpx.Middleware {
	return httpx.SessionMiddleware(r.tokens, r.cookie)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService, Cookie: r.cookie}

	// Register and login are limited per IP and username to slow credential stuffing
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(http.HandlerFunc(h.Register),
			httpx.RateLimitByIPAndJSONField(r.Limits.Strict, "username"),
		),
	)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.Login),
			httpx.RateLimitByIPAndJSONField(r.Limits.Strict, "username"),
		),
	)

	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(http.HandlerFunc(h.Logout),
			httpx.RateLimitByIP(r.Limits.Moderate),
		),
	)
	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(http.HandlerFunc(h.Me),
			r.authenticated(),
			httpx.RateLimitByUser(r.Limits.Lenient),
		),
	)
}

func (r *Router) registerNotes() {
	h := &NotesHandler{NoteService: r.NoteService}

	read := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, r.authenticated(), httpx.RateLimitByUser(r.Limits.Lenient))
	}
	write := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, r.authenticated(), httpx.RateLimitByUser(r.Limits.Moderate))
	}

	r.Mux.Handle("GET /api/notes", read(h.List))
	r.Mux.Handle("POST /api/notes", write(h.Create))
	r.Mux.Handle("GET /api/notes/categories", read(h.Categories))
	r.Mux.Handle("GET /api/notes/{id}", read(h.Get))
	r.Mux.Handle("PUT /api/notes/{id}", write(h.Update))
	r.Mux.Handle("DELETE /api/notes/{id}", write(h.Delete))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.Limits.Lenient),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.tokens),
			httpx.RateLimitByIP(r.Limits.Lenient),
		),
	)
}
