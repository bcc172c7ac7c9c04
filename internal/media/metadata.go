package media

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhowden/tag"
)

// Metadata is the descriptive information shown above the controls.
type Metadata struct {
	Title  string
	Artist string
}

// ReadMetadata extracts tag metadata from a media file.
// Files without tags fall back to their base name as title.
func ReadMetadata(filePath string) (Metadata, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return Metadata{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	fallback := Metadata{Title: filepath.Base(filePath)}

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return fallback, nil
	}

	return Metadata{
		Title:  getOrDefault(metadata.Title(), fallback.Title),
		Artist: metadata.Artist(),
	}, nil
}

// getOrDefault returns the value if non-empty, otherwise returns the default
func getOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
