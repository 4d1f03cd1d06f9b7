package posts

import "strings"

const (
	msgTitleRequired   = "Title is required"
	msgContentRequired = "Content is required"
)

// ValidateCreateRequest checks that title and content are non-empty strings.
// All failing fields are reported together.
func ValidateCreateRequest(req CreatePostRequest) error {
	fields := make(map[string]string)

	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = msgTitleRequired
	}
	if strings.TrimSpace(req.Content) == "" {
		fields["content"] = msgContentRequired
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidateUpdateRequest applies the create rules to the fields an update supplies.
// Omitted fields are not checked.
func ValidateUpdateRequest(req UpdatePostRequest) error {
	fields := make(map[string]string)

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		fields["title"] = msgTitleRequired
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		fields["content"] = msgContentRequired
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
