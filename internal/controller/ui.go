// Package controller provides output adapters for displaying
// annotation listings and clean results.
package controller

import (
	m "github.com/shapenote/shapenote/internal/model"
)

// UI defines the interface for displaying workflow results.
// Implementations can use different output methods (simple text,
// TUI, etc).
type UI interface {
	// DisplayAnnotations shows every descriptor comment found.
	DisplayAnnotations(annotations []m.Annotation) error
	// DisplayCleaned reports how many files and lines were stripped.
	DisplayCleaned(files, lines int) error
}
