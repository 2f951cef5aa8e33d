package notesdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListNotes returns the caller's notes, oldest first.
func (c *Client) ListNotes(ctx context.Context, opts ListOptions) ([]Note, error) {
	path := "/api/notes"
	q := url.Values{}
	if opts.Query != "" {
		q.Set("q", opts.Query)
	}
	if opts.Category != "" {
		q.Set("category", opts.Category)
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var notes []Note
	if err := decodeJSON(resp, &notes, http.StatusOK); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) CreateNote(ctx context.Context, req CreateNoteRequest) (*Note, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/notes", req)
	if err != nil {
		return nil, err
	}

	var note Note
	if err := decodeJSON(resp, &note, http.StatusCreated); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) GetNote(ctx context.Context, id string) (*Note, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/notes/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var note Note
	if err := decodeJSON(resp, &note, http.StatusOK); err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote changes only the fields set in req.
func (c *Client) UpdateNote(ctx context.Context, id string, req UpdateNoteRequest) (*Note, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, "/api/notes/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}

	var note Note
	if err := decodeJSON(resp, &note, http.StatusOK); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// Categories returns the categories the caller has used, sorted.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/notes/categories", nil)
	if err != nil {
		return nil, err
	}

	var cats CategoriesResponse
	if err := decodeJSON(resp, &cats, http.StatusOK); err != nil {
		return nil, err
	}
	return cats.Categories, nil
}
