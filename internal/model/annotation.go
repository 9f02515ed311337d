// Package model defines the data structures shared by the annotation
// workflow and its UIs.
package model

// Path represents a file system path.
type Path string

// Annotation is one descriptor comment found on a source line.
type Annotation struct {
	File       Path
	Line       int
	Descriptor string
}
