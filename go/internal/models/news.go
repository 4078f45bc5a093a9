package models

// NewsPost is a news article shown on the club site
type NewsPost struct {
	Title    string  `json:"title" validate:"required"`
	Body     string  `json:"body" validate:"required"`
	ImageURL *string `json:"image_url"`
}

// Row returns the column values for the news collection
func (n NewsPost) Row() map[string]any {
	return map[string]any{
		"title":     n.Title,
		"body":      n.Body,
		"image_url": optional(n.ImageURL),
	}
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
