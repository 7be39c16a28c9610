package rspinner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-runewidth"
)

// Stream selects the OS stream a Writer renders to.
type Stream int

const (
	// Stderr is the default target so spinner output does not mix with piped data.
	Stderr Stream = iota
	Stdout
)

func (s Stream) file() *os.File {
	if s == Stdout {
		return os.Stdout
	}
	return os.Stderr
}

// String returns the stream name.
func (s Stream) String() string {
	if s == Stdout {
		return "stdout"
	}
	return "stderr"
}

// WriteError is returned when a spinner line cannot be written or flushed.
type WriteError struct {
	Status Status
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s line: %v", e.Status, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

type flusher interface {
	Flush() error
}

// Writer renders single overwritten spinner lines.
//
// A Writer is not safe for concurrent use. The spinner protocol guarantees
// that only one goroutine renders at a time.
type Writer struct {
	out    io.Writer
	colors bool

	// display width of the last unterminated line
	lastWidth int
}

// NewWriter returns a Writer for a given OS stream. Colors are enabled only
// when the stream is a smart terminal.
func NewWriter(stream Stream) *Writer {
	f := stream.file()
	return &Writer{
		out:    colorable.NewColorable(f),
		colors: IsSmartTerminal(f),
	}
}

// NewWriterTo returns a Writer rendering to w.
func NewWriterTo(w io.Writer) *Writer {
	return &Writer{
		out:    w,
		colors: IsSmartTerminal(w),
	}
}

// SetColor forces colored output on or off.
func (w *Writer) SetColor(enabled bool) {
	w.colors = enabled
}

// Write renders frame (or the status icon for terminal statuses) followed by
// message. Loading lines stay unterminated so the next frame overwrites them.
func (w *Writer) Write(frame, message string, status Status) error {
	return w.render(frame, message, status, status.Terminal())
}

// Finish renders a Loading frame newline-terminated, keeping the last
// animation state visible above whatever is printed next.
func (w *Writer) Finish(frame, message string) error {
	return w.render(frame, message, Loading, true)
}

func (w *Writer) render(frame, message string, status Status, terminate bool) error {
	icon := frame
	if status.Terminal() {
		icon = status.Icon()
	}

	width := runewidth.StringWidth(icon + " " + message)
	var pad string
	if w.lastWidth > width {
		pad = strings.Repeat(" ", w.lastWidth-width)
	}

	var b strings.Builder
	b.WriteString("\r")
	b.WriteString(w.paint(status, icon))
	b.WriteString(" ")
	b.WriteString(message)
	b.WriteString(pad)
	if terminate {
		b.WriteString("\n")
		w.lastWidth = 0
	} else {
		w.lastWidth = width
	}

	if _, err := io.WriteString(w.out, b.String()); err != nil {
		return &WriteError{Status: status, Err: err}
	}
	if f, ok := w.out.(flusher); ok {
		if err := f.Flush(); err != nil {
			return &WriteError{Status: status, Err: err}
		}
	}
	return nil
}

func (w *Writer) paint(status Status, s string) string {
	c := color.New(status.colorAttr())
	if w.colors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}
