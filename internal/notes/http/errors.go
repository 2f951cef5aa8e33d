package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/notepad/internal/notes/service"
	"github.com/aussiebroadwan/notepad/pkg/httpx"
	"github.com/aussiebroadwan/notepad/pkg/notesdk"
	"github.com/aussiebroadwan/notepad/pkg/slogx"
)

// writeServiceError maps a service error onto the response. Unknown errors
// are logged and reported as a bare 500 so internals never leak.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		notesdk.ErrValidation.WithMessage(validationMessage(err)).WriteError(w)
	case errors.Is(err, service.ErrUsernameTaken):
		notesdk.ErrUserExists.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		notesdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrInvalidToken):
		notesdk.ErrUnauthenticated.WriteError(w)
	case errors.Is(err, service.ErrNoteNotFound):
		notesdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrStoreTimeout):
		slogx.FromContext(r.Context()).Warn("store timed out", "err", err)
		notesdk.ErrStoreTimeout.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		notesdk.ErrServerError.WriteError(w)
	}
}

// validationMessage strips the sentinel prefix, leaving the field message.
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, service.ErrValidation.Error()+": "); i >= 0 {
		msg = msg[i+len(service.ErrValidation.Error())+2:]
	}
	return msg
}

func writeBadJSON(w http.ResponseWriter, err error) {
	msg := "invalid JSON body"
	if errors.Is(err, httpx.ErrBadJSON) && strings.Contains(err.Error(), "empty body") {
		msg = "request body is required"
	}
	notesdk.ErrValidation.WithMessage(msg).WriteError(w)
}

// ownerID returns the caller set by the session middleware.
func ownerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok || userID == "" {
		notesdk.ErrUnauthenticated.WriteError(w)
		return "", false
	}
	return userID, true
}
