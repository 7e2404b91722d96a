// Package fluffy renders C declarations as fluffy binding stubs.
package fluffy

import (
	"github.com/teranos/stubgen/cdecl"
	"github.com/teranos/stubgen/typegen"
)

// Language is the generator name
const Language = "fluffy"

// Generator implements typegen.Generator for fluffy
type Generator struct {
	opts Options
}

// NewGenerator creates a fluffy generator with the given options
func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts}
}

// Language returns "fluffy"
func (g *Generator) Language() string {
	return Language
}

// FileExtension returns "fluffy"
func (g *Generator) FileExtension() string {
	return "fluffy"
}

// Options returns the generator's options
func (g *Generator) Options() Options {
	return g.opts
}

// Generate renders unit (implements typegen.Generator)
func (g *Generator) Generate(unit *cdecl.TranslationUnit) (*typegen.Result, error) {
	return Render(unit, g.opts)
}

var _ typegen.Generator = (*Generator)(nil)

// TypeString renders t the way it appears at a use site in unit. Warnings
// raised along the way are dropped.
func TypeString(unit *cdecl.TranslationUnit, t cdecl.Type) (string, error) {
	return newRenderContext(unit, DefaultOptions()).renderType(t)
}
