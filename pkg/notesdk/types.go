package notesdk

import "time"

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is the machine readable code (e.g. "validation_error")
	Error string `json:"error"`

	// Message is a human readable description, safe to display
	Message string `json:"message"`
}

// ============================================================================
// Auth Types
// ============================================================================

// Credentials is the body of the register and login endpoints.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login. The same token is also set
// as the session cookie.
type AuthResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MeResponse describes the signed in user.
type MeResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// ============================================================================
// Note Types
// ============================================================================

// Note is the wire form of a note. The id is sent as "_id" for compatibility
// with existing front ends.
type Note struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  *string   `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	UserID    string    `json:"userId"`
}

// CreateNoteRequest is the body of POST /api/notes.
type CreateNoteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
}

// UpdateNoteRequest is the body of PUT /api/notes/{id}. Nil fields are left
// unchanged; an empty Category removes the category. The server also treats
// an explicit JSON null category as a removal.
type UpdateNoteRequest struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Category *string `json:"category,omitempty"`
}

// ListOptions filters ListNotes.
type ListOptions struct {
	// Query is a case-insensitive substring matched against title and content
	Query string

	// Category keeps only notes in exactly this category
	Category string
}

// CategoriesResponse lists the categories in use, sorted.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	// Status is "ok" or "degraded"
	Status string `json:"status"`

	// Uptime is the service uptime as a duration string (e.g. "1h2m3s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the build version
	Version string `json:"version,omitempty"`

	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports on dependencies the service cannot work without.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
