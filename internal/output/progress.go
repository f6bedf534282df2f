package output

import (
	"io"
	"os"

	"github.com/fatih/color"
)

// Progress prints numbered stages for multi-step commands such as
// estimate-then-broadcast.
type Progress struct {
	out      io.Writer
	total    int
	current  int
	jsonMode bool
}

// NewProgress creates a new Progress instance with the given total steps.
func NewProgress(total int) *Progress {
	return &Progress{
		out:   os.Stderr,
		total: total,
	}
}

// SetWriter redirects stage output.
func (p *Progress) SetWriter(w io.Writer) {
	p.out = w
}

// SetJSONMode enables machine output mode (suppresses text output).
func (p *Progress) SetJSONMode(jsonMode bool) {
	p.jsonMode = jsonMode
}

// Stage prints a progress stage message in format [N/M] Description...
func (p *Progress) Stage(description string) {
	p.current++
	if p.jsonMode {
		return
	}
	cyan := color.New(color.FgCyan)
	cyan.Fprintf(p.out, "[%d/%d] %s...\n", p.current, p.total, description)
}

// Current returns the current step number.
func (p *Progress) Current() int {
	return p.current
}

// Total returns the total number of steps.
func (p *Progress) Total() int {
	return p.total
}
