// Package cdecl holds the resolved declaration tree of one C translation unit:
// declarations, the type graph they reference, interned symbols and the
// constant expressions used by enum entries.
//
// Types are compared by identity. Two *CompoundType values with identical
// members are still different types; only the pointer decides whether a
// typedef names a given type.
package cdecl

import "sync"

// Symbol is an interned name. Equal names interned through the same
// SymbolTable share one *Symbol.
type Symbol struct {
	Name string
}

// String returns the symbol's name, or "" for a nil symbol.
func (s *Symbol) String() string {
	if s == nil {
		return ""
	}
	return s.Name
}

// SymbolTable interns names. Safe for concurrent use.
type SymbolTable struct {
	mu      sync.Mutex
	symbols map[string]*Symbol
}

// NewSymbolTable creates an empty symbol table
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol)}
}

// Intern returns the unique symbol for name. The empty name has no symbol.
func (t *SymbolTable) Intern(name string) *Symbol {
	if name == "" {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if sym, ok := t.symbols[name]; ok {
		return sym
	}
	sym := &Symbol{Name: name}
	t.symbols[name] = sym
	return sym
}

// Len returns the number of interned symbols
func (t *SymbolTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.symbols)
}
