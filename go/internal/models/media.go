package models

import (
	"fmt"
	"regexp"
	"time"
)

const (
	DefaultContentType   = "image/jpeg"
	DefaultMediaFilename = "news.jpg"
	MaxFilenameLength    = 120
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.\-]+`)

// MediaAsset is an uploaded image
type MediaAsset struct {
	Filename    string `json:"filename" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
	Data        []byte `json:"-" validate:"required"`
}

// ObjectKey is the storage key for the asset: folder/<unix millis>_<filename>.
func (m MediaAsset) ObjectKey(folder string, at time.Time) string {
	return fmt.Sprintf("%s/%d_%s", folder, at.UnixMilli(), m.Filename)
}

// SanitizeFilename replaces every run of characters outside
// [A-Za-z0-9_.-] with a single underscore and caps the length.
// An empty result becomes "file".
func SanitizeFilename(name string) string {
	out := unsafeFilenameChars.ReplaceAllString(name, "_")
	if len(out) > MaxFilenameLength {
		out = out[:MaxFilenameLength]
	}
	if out == "" {
		return "file"
	}
	return out
}
