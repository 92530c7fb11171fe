// Package report writes the answer of a solver run.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fyrsmithlabs/joltage/internal/solver"
)

// Reporter writes a run result somewhere.
type Reporter interface {
	Report(res *solver.Result) error
}

// New returns the reporter for format ("text" or "json") writing to w.
func New(format string, w io.Writer) (Reporter, error) {
	switch format {
	case "text":
		return &TextReporter{w: w}, nil
	case "json":
		return &JSONReporter{w: w}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// TextReporter prints the total joltage as a single integer line.
type TextReporter struct {
	w io.Writer
}

func (r *TextReporter) Report(res *solver.Result) error {
	_, err := fmt.Fprintln(r.w, res.Sum.String())
	return err
}

// Summary is the JSON shape of a run. The sum is a string because it can
// exceed the range of a JSON number.
type Summary struct {
	Digits  int    `json:"digits"`
	Banks   int    `json:"banks"`
	Solved  int    `json:"solved"`
	Skipped int    `json:"skipped"`
	Sum     string `json:"sum"`
}

// JSONReporter prints a Summary object.
type JSONReporter struct {
	w io.Writer
}

func (r *JSONReporter) Report(res *solver.Result) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(Summary{
		Digits:  res.Digits,
		Banks:   len(res.Banks),
		Solved:  res.Solved,
		Skipped: res.Skipped,
		Sum:     res.Sum.String(),
	})
}
