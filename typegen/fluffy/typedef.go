package fluffy

import "github.com/teranos/stubgen/cdecl"

// findAlias returns the first top-level typedef whose type is t itself
// (identity, not shape), or nil. Earlier typedefs win over later duplicates.
func (c *renderContext) findAlias(t cdecl.Type) *cdecl.Declaration {
	if d, ok := c.aliases[t]; ok {
		return d
	}

	var alias *cdecl.Declaration
	for _, d := range c.unit.Declarations {
		if d.Storage != cdecl.StorageTypedef {
			continue
		}
		if d.Type == t {
			alias = d
			break
		}
	}

	c.aliases[t] = alias
	return alias
}
