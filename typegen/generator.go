// Package typegen turns a resolved C translation unit into declaration-only
// binding stubs for a target language.
//
// # Architecture
//
// The package uses a two-layer design:
//  1. A front end (or the irload package) produces a cdecl.TranslationUnit
//  2. Language-specific generators (fluffy/) render it into a Result
//
// The unit is never mutated by a generator, so one unit can be rendered by
// several generators and several units can be rendered concurrently (see Batch).
//
// # Implementing a New Generator
//
//	type Generator struct{ opts Options }
//
//	func (g *Generator) Language() string      { return "fluffy" }
//	func (g *Generator) FileExtension() string { return "fluffy" }
//	func (g *Generator) Generate(unit *cdecl.TranslationUnit) (*typegen.Result, error) {
//	    // render declarations, collect diagnostics
//	}
package typegen

import "github.com/teranos/stubgen/cdecl"

// Generator defines the interface for language-specific stub generators.
type Generator interface {
	// Generate renders a complete output file for one unit.
	// A returned error means no usable output was produced.
	Generate(unit *cdecl.TranslationUnit) (*Result, error)

	// FileExtension returns the file extension for this language (e.g., "fluffy")
	FileExtension() string

	// Language returns the language name
	Language() string
}
