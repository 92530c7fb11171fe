// Package bank parses battery banks and selects the digits that produce the
// largest joltage.
//
// A bank is one line of decimal digits. Selecting k batteries means choosing k
// of those digits, keeping their original order, so the number they spell is
// as large as possible:
//
//	seq, err := bank.ParseLine("818181911112111")
//	if err != nil {
//	    return err
//	}
//	sel, err := bank.SelectMax(seq, 2)
//	fmt.Println(sel) // 92
package bank

import (
	"strings"
)

// Sequence is the ordered list of digits of one bank. Treat it as read-only.
type Sequence []uint8

// ParseLine turns one input line into a Sequence. Trailing whitespace,
// including the line terminator, is ignored.
func ParseLine(line string) (Sequence, error) {
	trimmed := strings.TrimRight(line, " \t\r\n")
	if trimmed == "" {
		return nil, &FormatError{Line: line}
	}

	seq := make(Sequence, 0, len(trimmed))
	for i, r := range trimmed {
		if r < '0' || r > '9' {
			return nil, &FormatError{Line: line, Column: i + 1, Char: r}
		}
		seq = append(seq, uint8(r-'0'))
	}
	return seq, nil
}

// Len returns the number of digits in the bank.
func (s Sequence) Len() int { return len(s) }

// String renders the digits back to their textual form.
func (s Sequence) String() string {
	var b strings.Builder
	b.Grow(len(s))
	for _, d := range s {
		b.WriteByte('0' + d)
	}
	return b.String()
}
