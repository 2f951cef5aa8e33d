package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/notepad/internal/notes/domain"
	"github.com/aussiebroadwan/notepad/internal/notes/service"
	"github.com/aussiebroadwan/notepad/pkg/httpx"
	"github.com/aussiebroadwan/notepad/pkg/notesdk"
)

type NotesHandler struct {
	NoteService *service.NoteService
}

// List returns the caller's notes.
//
//	@Summary		List notes
//	@Description	Returns the caller's notes oldest first, optionally filtered.
//	@Tags			Notes
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Produce		json
//	@Param			q			query		string					false	"Case-insensitive text in title or content"
//	@Param			category	query		string					false	"Exact category"
//	@Success		200			{array}		notesdk.Note
//	@Failure		401			{object}	notesdk.ErrorResponse	"Missing or invalid token"
//	@Failure		500			{object}	notesdk.ErrorResponse	"Server error"
//	@Router			/api/notes [get].
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	notes, err := h.NoteService.List(r.Context(), userID, service.ListFilter{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]notesdk.Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNote(n))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Create adds a note.
//
//	@Summary		Create note
//	@Tags			Notes
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		notesdk.CreateNoteRequest	true	"title and content are required; category is optional (max 30 characters)"
//	@Success		201		{object}	notesdk.Note
//	@Failure		400		{object}	notesdk.ErrorResponse	"Validation error"
//	@Failure		401		{object}	notesdk.ErrorResponse	"Missing or invalid token"
//	@Failure		500		{object}	notesdk.ErrorResponse	"Server error"
//	@Router			/api/notes [post].
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	var body notesdk.CreateNoteRequest
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		writeBadJSON(w, err)
		return
	}

	note, err := h.NoteService.Create(r.Context(), userID, service.NoteInput{
		Title:    body.Title,
		Content:  body.Content,
		Category: body.Category,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toNote(note))
}

// Get returns one note.
//
//	@Summary		Get note
//	@Tags			Notes
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Note id"
//	@Success		200	{object}	notesdk.Note
//	@Failure		401	{object}	notesdk.ErrorResponse	"Missing or invalid token"
//	@Failure		404	{object}	notesdk.ErrorResponse	"Note not found"
//	@Failure		500	{object}	notesdk.ErrorResponse	"Server error"
//	@Router			/api/notes/{id} [get].
func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	note, err := h.NoteService.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toNote(note))
}

// Update changes the fields present in the body.
//
//	@Summary		Update note
//	@Description	Partial update: omitted fields are left unchanged. A category of "" or null removes it.
//	@Tags			Notes
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Note id"
//	@Param			body	body		notesdk.UpdateNoteRequest	true	"Fields to change"
//	@Success		200		{object}	notesdk.Note
//	@Failure		400		{object}	notesdk.ErrorResponse	"Validation error"
//	@Failure		401		{object}	notesdk.ErrorResponse	"Missing or invalid token"
//	@Failure		404		{object}	notesdk.ErrorResponse	"Note not found"
//	@Failure		500		{object}	notesdk.ErrorResponse	"Server error"
//	@Router			/api/notes/{id} [put].
func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	var body updateNoteBody
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		writeBadJSON(w, err)
		return
	}
	category, err := body.category()
	if err != nil {
		notesdk.ErrValidation.WithMessage("category must be a string or null").WriteError(w)
		return
	}

	note, err := h.NoteService.Update(r.Context(), userID, r.PathValue("id"), domain.NotePatch{
		Title:    body.Title,
		Content:  body.Content,
		Category: category,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toNote(note))
}

// Delete removes a note.
//
//	@Summary		Delete note
//	@Tags			Notes
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Note id"
//	@Success		204
//	@Failure		401	{object}	notesdk.ErrorResponse	"Missing or invalid token"
//	@Failure		404	{object}	notesdk.ErrorResponse	"Note not found"
//	@Failure		500	{object}	notesdk.ErrorResponse	"Server error"
//	@Router			/api/notes/{id} [delete].
func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	if err := h.NoteService.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// Categories lists the categories in use.
//
//	@Summary		List categories
//	@Tags			Notes
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	notesdk.CategoriesResponse
//	@Failure		401	{object}	notesdk.ErrorResponse	"Missing or invalid token"
//	@Failure		500	{object}	notesdk.ErrorResponse	"Server error"
//	@Router			/api/notes/categories [get].
func (h *NotesHandler) Categories(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	cats, err := h.NoteService.Categories(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, notesdk.CategoriesResponse{Categories: cats})
}

// updateNoteBody tells an omitted category apart from an explicit null.
type updateNoteBody struct {
	notesdk.UpdateNoteRequest
	Category json.RawMessage `json:"category"`
}

// category returns nil when the field was omitted and "" (clear) for null.
func (b updateNoteBody) category() (*string, error) {
	if len(b.Category) == 0 {
		return nil, nil
	}
	if string(b.Category) == "null" {
		empty := ""
		return &empty, nil
	}
	var c string
	if err := json.Unmarshal(b.Category, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func toNote(n domain.Note) notesdk.Note {
	return notesdk.Note{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Category:  n.Category,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		UserID:    n.UserID,
	}
}
