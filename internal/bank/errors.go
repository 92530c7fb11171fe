package bank

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is matched by every FormatError.
	ErrFormat = errors.New("bank: malformed line")
	// ErrInvalidArgument is matched by every InvalidArgumentError.
	ErrInvalidArgument = errors.New("bank: invalid argument")
)

// FormatError reports a line that is empty or holds a non-digit character.
type FormatError struct {
	Line   string
	Column int // 1-based; 0 when the line is empty
	Char   rune
}

func (e *FormatError) Error() string {
	if e.Column == 0 {
		return "bank: empty line"
	}
	return fmt.Sprintf("bank: non-digit %q at column %d", e.Char, e.Column)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// InvalidArgumentError reports a selection request that can never succeed
// for the given bank. Retrying without changing the input is pointless.
type InvalidArgumentError struct {
	Reason string
	K      int
	N      int
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("bank: %s (k=%d, n=%d)", e.Reason, e.K, e.N)
}

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }
