package http

import (
	"net/http"

	"github.com/aussiebroadwan/notepad/internal/notes/service"
	"github.com/aussiebroadwan/notepad/pkg/httpx"
	"github.com/aussiebroadwan/notepad/pkg/notesdk"
)

type AuthHandler struct {
	AuthService *service.AuthService
	Cookie      httpx.CookieConfig
}

// Register handles account creation.
//
//	@Summary		Register
//	@Description	Creates an account and signs it in. The session token is returned in the body and set as the "token" cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		notesdk.Credentials		true	"username and password (min 6 characters)"
//	@Success		201		{object}	notesdk.AuthResponse	"token, user_id, expires_at"
//	@Failure		400		{object}	notesdk.ErrorResponse	"Validation error or user already exists"
//	@Failure		429		{object}	notesdk.ErrorResponse	"Rate limited"
//	@Failure		500		{object}	notesdk.ErrorResponse	"Server error"
//	@Router			/api/auth/register [post].
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body notesdk.Credentials
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		writeBadJSON(w, err)
		return
	}

	res, err := h.AuthService.Register(r.Context(), body.Username, body.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.writeSession(w, http.StatusCreated, res)
}

// Login handles password sign in.
//
//	@Summary		Log in
//	@Description	Checks credentials and sets the "token" cookie. Unknown users and wrong passwords get the same answer.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		notesdk.Credentials		true	"username and password"
//	@Success		200		{object}	notesdk.AuthResponse	"token, user_id, expires_at"
//	@Failure		400		{object}	notesdk.ErrorResponse	"Validation error"
//	@Failure		401		{object}	notesdk.ErrorResponse	"Invalid credentials"
//	@Failure		429		{object}	notesdk.ErrorResponse	"Rate limited"
//	@Failure		500		{object}	notesdk.ErrorResponse	"Server error"
//	@Router			/api/auth/login [post].
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body notesdk.Credentials
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		writeBadJSON(w, err)
		return
	}

	res, err := h.AuthService.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.writeSession(w, http.StatusOK, res)
}

// Logout clears the session cookie.
//
//	@Summary		Log out
//	@Description	Expires the "token" cookie. Tokens are stateless, so a copied token stays valid until it expires.
//	@Tags			Auth
//	@Success		204
//	@Router			/api/auth/logout [post].
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Cookie.ClearSessionCookie(w)
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the signed in user.
//
//	@Summary		Current user
//	@Tags			Auth
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	notesdk.MeResponse		"user_id, username"
//	@Failure		401	{object}	notesdk.ErrorResponse	"Missing or invalid token"
//	@Failure		500	{object}	notesdk.ErrorResponse	"Server error"
//	@Router			/api/auth/me [get].
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	user, err := h.AuthService.Me(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, notesdk.MeResponse{
		UserID:   user.ID,
		Username: user.Username,
	})
}

func (h *AuthHandler) writeSession(w http.ResponseWriter, status int, res service.AuthResult) {
	h.Cookie.SetSessionCookie(w, res.Token, res.ExpiresAt)
	httpx.WriteJSON(w, status, notesdk.AuthResponse{
		Token:     res.Token,
		UserID:    res.UserID,
		ExpiresAt: res.ExpiresAt,
	})
}
