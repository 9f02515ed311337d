// Package domain implements the annotation scan and clean workflows.
package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/shapenote/shapenote/internal/adapter"
	"github.com/shapenote/shapenote/internal/controller"
	m "github.com/shapenote/shapenote/internal/model"
	"github.com/shapenote/shapenote/trace"
)

// ScanArgs selects the files to inspect. Paths supports the /...
// suffix for recursive scanning; Exclude holds regular expressions
// matched against file paths.
type ScanArgs struct {
	Paths   []m.Path
	Exclude []string
}

// CleanArgs configures an in-place strip of descriptor comments.
type CleanArgs struct {
	ScanArgs

	Threads int
}

// Workflow defines the operations the CLI drives.
type Workflow interface {
	Scan(args ScanArgs) error
	Clean(args CleanArgs) error
}

type workflow struct {
	fs adapter.SourceFSAdapter
	ui controller.UI
}

// NewWorkflow creates a Workflow backed by the provided adapters.
func NewWorkflow(fs adapter.SourceFSAdapter, ui controller.UI) Workflow {
	return &workflow{fs: fs, ui: ui}
}

// Scan finds every descriptor comment under the given paths and hands
// the listing to the UI.
func (w *workflow) Scan(args ScanArgs) error {
	files, err := w.collectFiles(args.Paths, args.Exclude)
	if err != nil {
		return err
	}

	var annotations []m.Annotation

	for _, file := range files {
		found, err := w.annotationsIn(file)
		if err != nil {
			return err
		}

		annotations = append(annotations, found...)
	}

	return w.ui.DisplayAnnotations(annotations)
}

// Clean strips descriptor comments from every file under the given
// paths, rewriting files in place. Files are processed by a bounded
// worker pool.
func (w *workflow) Clean(args CleanArgs) error {
	files, err := w.collectFiles(args.Paths, args.Exclude)
	if err != nil {
		return err
	}

	threads := args.Threads
	if threads <= 0 {
		threads = 1
	}

	var cleanedFiles, cleanedLines atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(threads)

	for _, file := range files {
		g.Go(func() error {
			stripped, err := w.cleanFile(file)
			if err != nil {
				return err
			}

			if stripped > 0 {
				cleanedFiles.Add(1)
				cleanedLines.Add(int64(stripped))
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return w.ui.DisplayCleaned(int(cleanedFiles.Load()), int(cleanedLines.Load()))
}

// annotationsIn reports the descriptor comments present in one file.
func (w *workflow) annotationsIn(path m.Path) ([]m.Annotation, error) {
	data, err := w.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var annotations []m.Annotation

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")

		if d, ok := trace.FindDescriptor(line); ok {
			annotations = append(annotations, m.Annotation{
				File:       path,
				Line:       i + 1,
				Descriptor: d,
			})
		}
	}

	return annotations, nil
}

// cleanFile rewrites one file with descriptor comments removed and
// returns how many lines were stripped. Untouched files are not
// rewritten.
func (w *workflow) cleanFile(path m.Path) (int, error) {
	data, err := w.fs.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	lines := splitKeepEOL(string(data))
	stripped := 0

	for i, line := range lines {
		body, eol := cutEOL(line)

		cleaned, ok := trace.StripDescriptor(body)
		if !ok {
			continue
		}

		lines[i] = cleaned + eol
		stripped++
	}

	if stripped == 0 {
		return 0, nil
	}

	perm := os.FileMode(0o644)
	if info, err := w.fs.FileInfo(path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := w.fs.WriteFile(path, []byte(strings.Join(lines, "")), perm); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}

	return stripped, nil
}

// collectFiles resolves roots (with /... recursion) to a sorted,
// deduplicated list of regular files, honoring the exclude patterns.
func (w *workflow) collectFiles(roots []m.Path, exclude []string) ([]m.Path, error) {
	excludes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})

	var files []m.Path

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}

		if matchesAny(excludes, path) {
			return
		}

		seen[path] = struct{}{}
		files = append(files, m.Path(path))
	}

	for _, root := range roots {
		rootStr, recursive, err := adapter.NormalizeRoot(string(root))
		if err != nil {
			return nil, err
		}

		info, err := w.fs.FileInfo(m.Path(rootStr))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			add(rootStr)
			continue
		}

		err = w.fs.Walk(m.Path(rootStr), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if skippedDir(path) && path != rootStr {
					return filepath.SkipDir
				}

				return nil
			}

			if !info.Mode().IsRegular() {
				return nil
			}

			add(path)

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files, nil
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	excludes := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		excludes = append(excludes, re)
	}

	return excludes, nil
}

func matchesAny(excludes []*regexp.Regexp, path string) bool {
	for _, re := range excludes {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

func skippedDir(path string) bool {
	switch filepath.Base(path) {
	case ".git", "vendor", "node_modules":
		return true
	}

	return false
}

// splitKeepEOL breaks s into lines, each keeping its own trailing
// newline.
func splitKeepEOL(s string) []string {
	var lines []string

	for start := 0; start < len(s); {
		i := strings.IndexByte(s[start:], '\n')
		if i < 0 {
			lines = append(lines, s[start:])
			break
		}

		lines = append(lines, s[start:start+i+1])
		start += i + 1
	}

	return lines
}

func cutEOL(line string) (body, eol string) {
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2], "\r\n"
	}

	if strings.HasSuffix(line, "\n") {
		return line[:len(line)-1], "\n"
	}

	return line, ""
}
