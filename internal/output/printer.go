package output

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Printer serializes console writes from concurrent analysis workers so
// multi-line progress output never interleaves.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Stdout is the process-wide printer used for all progress output.
var Stdout = NewPrinter(os.Stdout)

// Printf formats and writes a single line. A trailing newline is appended
// when the format does not already end with one.
func (p *Printer) Printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := fmt.Sprintf(format, args...)
	if len(s) == 0 || s[len(s)-1] != '\n' {
		s += "\n"
	}
	// Write errors (e.g. a closed pipe when output is piped to head) are
	// intentionally ignored.
	_, _ = io.WriteString(p.w, s)
}

// Println writes its arguments followed by a newline.
func (p *Printer) Println(args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.w, args...)
}
