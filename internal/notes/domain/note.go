package domain

import "time"

// MaxCategoryLength is the longest category name accepted, in characters.
const MaxCategoryLength = 30

// Note is a short text note owned by exactly one user.
type Note struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	Category  *string // nil when uncategorised
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteFilter narrows a note listing. Zero value lists everything.
type NoteFilter struct {
	// Query matches case-insensitively against title or content.
	Query string
	// Category matches exactly.
	Category string
}

// NotePatch is a partial update. Nil fields are left untouched; a non-nil
// empty Category clears it.
type NotePatch struct {
	Title    *string
	Content  *string
	Category *string
}

// Apply returns n with the patch applied. It does not validate.
func (p NotePatch) Apply(n Note) Note {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Category != nil {
		if *p.Category == "" {
			n.Category = nil
		} else {
			c := *p.Category
			n.Category = &c
		}
	}
	return n
}
