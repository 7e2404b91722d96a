package typegen

import (
	"fmt"

	"github.com/teranos/stubgen/cdecl"
)

// Severity of a diagnostic
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "Error"
	}
	return "Warning"
}

// Diagnostic is a message about the export that is not part of the generated text
type Diagnostic struct {
	Severity Severity
	// Symbol is the declaration being rendered when the diagnostic was raised
	Symbol  string
	Message string
	Pos     cdecl.Position
}

// String formats the diagnostic as "Warning: <message> (at <symbol>)"
func (d Diagnostic) String() string {
	if d.Symbol == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s (at %s)", d.Severity, d.Message, d.Symbol)
}

// Result holds the generated stubs for one unit.
type Result struct {
	// Unit is the translation unit name
	Unit string

	// Language is the generator that produced Output
	Language string

	// Output is the complete generated text
	Output string

	// Diagnostics are warnings and skipped-declaration errors, in emission order
	Diagnostics []Diagnostic

	// Emitted counts rendered declarations per region name (e.g., "type", "function")
	Emitted map[string]int

	// Skipped counts declarations dropped because they failed to render
	Skipped int
}

// Warnings returns the warning diagnostics
func (r *Result) Warnings() []Diagnostic {
	return r.filter(SeverityWarning)
}

// Errors returns the error diagnostics recorded for skipped declarations
func (r *Result) Errors() []Diagnostic {
	return r.filter(SeverityError)
}

func (r *Result) filter(s Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == s {
			out = append(out, d)
		}
	}
	return out
}

// Total returns the number of emitted declarations across all regions
func (r *Result) Total() int {
	n := 0
	for _, c := range r.Emitted {
		n += c
	}
	return n
}
