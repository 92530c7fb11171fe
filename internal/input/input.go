// Package input reads puzzle files into raw bank lines.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Stdin is the path that selects standard input instead of a file.
const Stdin = "-"

// maxLineSize bounds a single bank line.
const maxLineSize = 1024 * 1024 // 1MB

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("input: file not found")

// NotFoundError reports a puzzle file that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("input: file %s not found", e.Path)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// LoadLines returns the lines of the file at path, or of stdin when path is "-".
func LoadLines(path string) ([]string, error) {
	if path == Stdin {
		return ReadLines(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	return lines, nil
}

// ReadLines splits r into lines without their terminators. A final newline
// does not produce a trailing empty line; empty lines elsewhere are kept so
// callers can report them.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
