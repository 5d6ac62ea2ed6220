// Package ui provides terminal output helpers for fsextra.
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	units "github.com/docker/go-units"
	"github.com/mattn/go-isatty"
)

// Colors for terminal output
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"
)

// Symbols for different message types
const (
	SymbolSuccess = "✔"
	SymbolError   = "✖"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
)

// Output writes results to w and diagnostics (errors, spinner) to errW.
type Output struct {
	w       io.Writer
	errW    io.Writer
	noColor bool
	quiet   bool
	verbose bool
	static  bool
}

// NewOutput creates an Output writing everything to w.
func NewOutput(w io.Writer) *Output {
	return &Output{w: w, errW: w}
}

// DefaultOutput writes results to stdout and diagnostics to stderr.
// Colors are disabled when stdout is not a terminal, spinners when stderr is not.
func DefaultOutput() *Output {
	return &Output{
		w:       os.Stdout,
		errW:    os.Stderr,
		noColor: !isTerminal(os.Stdout),
		static:  !isTerminal(os.Stderr),
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetErrorWriter redirects errors and spinner frames.
func (o *Output) SetErrorWriter(w io.Writer) {
	o.errW = w
}

// SetNoColor disables colors.
func (o *Output) SetNoColor(noColor bool) {
	o.noColor = noColor
}

// SetQuiet enables quiet mode (only errors and machine output).
func (o *Output) SetQuiet(quiet bool) {
	o.quiet = quiet
}

// SetVerbose enables verbose mode.
func (o *Output) SetVerbose(verbose bool) {
	o.verbose = verbose
}

func (o *Output) color(code, text string) string {
	if o.noColor {
		return text
	}
	return code + text + Reset
}

// Success prints a success message.
func (o *Output) Success(format string, args ...interface{}) {
	if o.quiet {
		return
	}
	fmt.Fprintf(o.w, "%s %s\n", o.color(Green, SymbolSuccess), fmt.Sprintf(format, args...))
}

// Error prints an error message, even in quiet mode.
func (o *Output) Error(format string, args ...interface{}) {
	fmt.Fprintf(o.errW, "%s %s\n", o.color(Red, SymbolError), fmt.Sprintf(format, args...))
}

// ErrorWithHint prints an error message with a hint.
func (o *Output) ErrorWithHint(err, hint string) {
	fmt.Fprintf(o.errW, "%s %s\n", o.color(Red, SymbolError), err)
	fmt.Fprintf(o.errW, "  %s %s\n", o.color(Gray, "Hint:"), hint)
}

// Warning prints a warning message.
func (o *Output) Warning(format string, args ...interface{}) {
	if o.quiet {
		return
	}
	fmt.Fprintf(o.w, "%s %s\n", o.color(Yellow, SymbolWarning), fmt.Sprintf(format, args...))
}

// Info prints an info message.
func (o *Output) Info(format string, args ...interface{}) {
	if o.quiet {
		return
	}
	fmt.Fprintf(o.w, "%s %s\n", o.color(Blue, SymbolInfo), fmt.Sprintf(format, args...))
}

// Print prints a plain message.
func (o *Output) Print(format string, args ...interface{}) {
	if o.quiet {
		return
	}
	fmt.Fprintf(o.w, format+"\n", args...)
}

// Debug prints a debug message (only in verbose mode).
func (o *Output) Debug(format string, args ...interface{}) {
	if !o.verbose {
		return
	}
	fmt.Fprintf(o.errW, "%s %s\n", o.color(Gray, "[DEBUG]"), fmt.Sprintf(format, args...))
}

// Field prints a labeled field.
func (o *Output) Field(label, value string) {
	if o.quiet {
		return
	}
	fmt.Fprintf(o.w, "  %s %s\n", o.color(Gray, label+":"), value)
}

// FieldColored prints a labeled field with colored value.
func (o *Output) FieldColored(label, value, color string) {
	if o.quiet {
		return
	}
	fmt.Fprintf(o.w, "  %s %s\n", o.color(Gray, label+":"), o.color(color, value))
}

// Table prints a simple left-aligned table.
func (o *Output) Table(headers []string, rows [][]string) {
	if o.quiet {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(cells []string) string {
		var b strings.Builder
		for i, cell := range cells {
			if i < len(widths) {
				fmt.Fprintf(&b, "%-*s  ", widths[i], cell)
			}
		}
		return strings.TrimSpace(b.String())
	}

	seps := make([]string, len(widths))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}

	fmt.Fprintln(o.w, o.color(Bold, line(headers)))
	fmt.Fprintln(o.w, o.color(Gray, line(seps)))
	for _, row := range rows {
		fmt.Fprintln(o.w, line(row))
	}
}

// JSON writes v as indented JSON. Quiet mode does not suppress it.
func (o *Output) JSON(v interface{}) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatSize renders a byte count, either as a decimal human size ("1.5kB")
// or as the raw number of bytes.
func FormatSize(size uint64, human bool) string {
	if !human {
		return strconv.FormatUint(size, 10)
	}
	return units.HumanSize(float64(size))
}

// Spinner represents a CLI spinner drawn on the error writer.
type Spinner struct {
	out      *Output
	message  string
	frames   []string
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewSpinner creates a new spinner.
func NewSpinner(out *Output, message string) *Spinner {
	return &Spinner{
		out:      out,
		message:  message,
		frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		interval: 80 * time.Millisecond,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *Spinner) disabled() bool {
	return s.out.quiet || s.out.static
}

// Start starts the spinner.
func (s *Spinner) Start() {
	if s.disabled() {
		return
	}

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			frame := s.frames[i%len(s.frames)]
			fmt.Fprintf(s.out.errW, "\r%s %s", s.out.color(Cyan, frame), s.message)

			select {
			case <-s.stop:
				fmt.Fprintf(s.out.errW, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop stops the spinner and clears its line.
func (s *Spinner) Stop() {
	if s.disabled() {
		return
	}
	close(s.stop)
	<-s.done
}
