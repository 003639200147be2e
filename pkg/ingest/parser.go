// Package ingest turns uploaded artifacts into the raw text a session is
// created from. Binary office formats are converted upstream; this boundary
// accepts text-bearing files only.
package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrUnsupportedFormat is returned for file types the service does not
// convert.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrEmptyDocument is returned when no usable text came out of the upload.
var ErrEmptyDocument = errors.New("document contains no text")

var textExtensions = map[string]bool{
	".txt": true,
	".md":  true,
	".csv": true,
}

// Parse extracts plain text from an uploaded file.
func Parse(content []byte, fileName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !textExtensions[ext] {
		return "", fmt.Errorf("%w: %s (convert to .txt or .md before uploading)", ErrUnsupportedFormat, ext)
	}
	if !utf8.Valid(content) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", ErrUnsupportedFormat, fileName)
	}

	text := strings.TrimSpace(string(content))
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}
