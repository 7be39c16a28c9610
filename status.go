package rspinner

import (
	"fmt"

	"github.com/fatih/color"
)

// Status is the render state of a spinner line.
type Status int

const (
	// Loading is the animated state. It is the only non-terminal status.
	Loading Status = iota
	Info
	Success
	Warning
	Error
)

var statusNames = map[Status]string{
	Loading: "loading",
	Info:    "info",
	Success: "success",
	Warning: "warning",
	Error:   "error",
}

// String returns the lower-case name of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Terminal reports whether the status ends an animation cycle.
func (s Status) Terminal() bool {
	switch s {
	case Info, Success, Warning, Error:
		return true
	}
	return false
}

// Icon returns the fixed glyph of a terminal status. Loading has no fixed
// icon, its glyph is the current frame.
func (s Status) Icon() string {
	switch s {
	case Info:
		return "ℹ"
	case Success:
		return "✔"
	case Warning:
		return "⚠"
	case Error:
		return "✖"
	}
	return ""
}

func (s Status) colorAttr() color.Attribute {
	switch s {
	case Info:
		return color.FgBlue
	case Success:
		return color.FgGreen
	case Warning:
		return color.FgYellow
	case Error:
		return color.FgRed
	}
	return color.FgCyan
}
