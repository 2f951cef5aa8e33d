package notesdk

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxCategoryLength is the longest category name the server accepts.
const MaxCategoryLength = 30

const requiredReason = "required"

// Validate checks the request the way the server will. It returns field
// name to message, or nil when the request is fine.
func (r CreateNoteRequest) Validate() map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.Title) == "" {
		errs["title"] = requiredReason
	}
	if strings.TrimSpace(r.Content) == "" {
		errs["content"] = requiredReason
	}
	if msg := categoryLength(r.Category); msg != "" {
		errs["category"] = msg
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate checks the fields present in the patch.
func (r UpdateNoteRequest) Validate() map[string]string {
	errs := make(map[string]string)

	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		errs["title"] = "must not be empty"
	}
	if r.Content != nil && strings.TrimSpace(*r.Content) == "" {
		errs["content"] = "must not be empty"
	}
	if r.Category != nil {
		if msg := categoryLength(*r.Category); msg != "" {
			errs["category"] = msg
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateCategory checks a new category name before it is offered for use:
// non-empty, at most MaxCategoryLength characters and not already in
// existing (compared case-insensitively). It returns "" when name is fine.
func ValidateCategory(name string, existing []string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Category name cannot be empty"
	}
	if msg := categoryLength(name); msg != "" {
		return msg
	}
	for _, e := range existing {
		if strings.EqualFold(strings.TrimSpace(e), name) {
			return "Category already exists"
		}
	}
	return ""
}

func categoryLength(name string) string {
	if utf8.RuneCountInString(strings.TrimSpace(name)) > MaxCategoryLength {
		return fmt.Sprintf("must be at most %d characters", MaxCategoryLength)
	}
	return ""
}
