package subs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sublint/internal/services"
)

// Load reads a subtitle file, choosing the parser by extension.
func Load(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "subs", "open", path, err)
	}
	defer file.Close()

	var doc *Document
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ass", ".ssa":
		doc, err = ParseASS(file)
	case ".srt":
		doc, err = ParseSRT(file)
	default:
		return nil, services.Wrap(services.ErrValidation, "subs", "load", fmt.Sprintf("unsupported subtitle format %q", ext), nil)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "subs", "parse", path, err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	doc.Path = path
	return doc, nil
}
