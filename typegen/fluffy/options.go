package fluffy

import (
	"strings"

	"github.com/teranos/stubgen/errors"
)

// DefaultHeader is the first line of every generated file
const DefaultHeader = "/* WARNING: Automatically generated file */"

// OnErrorPolicy decides what happens when a declaration cannot be rendered
type OnErrorPolicy int

const (
	// OnErrorAbort stops the export and writes nothing
	OnErrorAbort OnErrorPolicy = iota
	// OnErrorSkip drops the failing declaration, records an error diagnostic and continues
	OnErrorSkip
)

func (p OnErrorPolicy) String() string {
	if p == OnErrorSkip {
		return "skip"
	}
	return "abort"
}

// ParseOnErrorPolicy parses "abort" or "skip"; "" means abort
func ParseOnErrorPolicy(s string) (OnErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "abort":
		return OnErrorAbort, nil
	case "skip":
		return OnErrorSkip, nil
	}
	return OnErrorAbort, errors.WithHint(
		errors.NewInvalidRequestError("unknown on_error policy %q", s),
		"use abort or skip")
}

// Options control one export
type Options struct {
	// Header replaces DefaultHeader when non-empty
	Header string

	// TypedefAliases emits "typealias <name> <- <type>" for typedefs of
	// atomic, pointer and function types. Off by default: those typedefs
	// produce no output.
	TypedefAliases bool

	// AnonymousParams renders every function parameter as "_" even when the
	// declaration names it.
	AnonymousParams bool

	OnError OnErrorPolicy
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{Header: DefaultHeader, OnError: OnErrorAbort}
}

// HeaderLine returns the first line of the output
func (o Options) HeaderLine() string {
	return o.header()
}

func (o Options) header() string {
	if o.Header == "" {
		return DefaultHeader
	}
	return o.Header
}
