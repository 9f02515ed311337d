package trace

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// FS is the narrow file-system surface the patcher needs. OSFS
// satisfies it against the real disk.
type FS interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
}

// OSFS is the default FS backed by the os package.
type OSFS struct{}

// ReadFile loads the file contents from disk.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile replaces the file contents on disk.
func (OSFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

const patchPerm = 0o644

// Patch appends marker+descriptor to each mapped line of the file and
// writes the result back in place. Line numbers are 1-indexed; lines
// absent from descriptors are left byte-for-byte unchanged, line
// count and order never change, and per-line end-of-line characters
// are preserved. Line numbers outside the file are ignored.
//
// The rewrite is a plain whole-file write with no atomic rename; the
// target files are developer sources expected to be under version
// control. Patch itself performs no duplicate detection — activation
// key deduplication in the scope is what keeps a line from being
// annotated twice across runs.
func Patch(fs FS, path, marker string, descriptors map[int]string) error {
	if len(descriptors) == 0 {
		return nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	lines := splitLines(data)

	for line, descriptor := range descriptors {
		if line < 1 || line > len(lines) {
			continue
		}

		body, eol := cutEOL(lines[line-1])
		lines[line-1] = body + marker + descriptor + eol
	}

	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
	}

	if err := fs.WriteFile(path, buf.Bytes(), patchPerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// splitLines breaks data into lines, each keeping its own trailing
// newline. The final line may have none.
func splitLines(data []byte) []string {
	var lines []string

	for start := 0; start < len(data); {
		i := bytes.IndexByte(data[start:], '\n')
		if i < 0 {
			lines = append(lines, string(data[start:]))
			break
		}

		lines = append(lines, string(data[start:start+i+1]))
		start += i + 1
	}

	return lines
}

// cutEOL splits a line into its body and end-of-line suffix.
func cutEOL(line string) (body, eol string) {
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2], "\r\n"
	}

	if strings.HasSuffix(line, "\n") {
		return line[:len(line)-1], "\n"
	}

	return line, ""
}
