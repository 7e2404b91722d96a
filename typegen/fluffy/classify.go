package fluffy

import "github.com/teranos/stubgen/cdecl"

// Region is the output section a top-level declaration belongs to
type Region int

const (
	// RegionSkipped declarations produce no output
	RegionSkipped Region = iota
	// RegionType holds typedefs of structs, unions and enums
	RegionType
	// RegionAlias holds typedefs of atomic, pointer and function types;
	// emitted in the type region only when Options.TypedefAliases is set
	RegionAlias
	// RegionVariable holds global variables
	RegionVariable
	// RegionFunction holds function declarations
	RegionFunction
)

var regionNames = []string{
	RegionSkipped:  "skipped",
	RegionType:     "type",
	RegionAlias:    "alias",
	RegionVariable: "variable",
	RegionFunction: "function",
}

func (r Region) String() string {
	if r >= 0 && int(r) < len(regionNames) {
		return regionNames[r]
	}
	return "unknown"
}

// Classify assigns a top-level declaration to its region.
//
// Typedefs go to the type or alias region by the kind of their type.
// Other declarations in the normal namespace that are not enum entries are
// functions or variables. Everything else (tag definitions, enum entries,
// labels) is skipped.
func Classify(d *cdecl.Declaration) Region {
	if d == nil {
		return RegionSkipped
	}

	if d.Storage == cdecl.StorageTypedef {
		switch {
		case d.Type == nil:
			return RegionSkipped
		case cdecl.IsStructured(d.Type):
			return RegionType
		default:
			return RegionAlias
		}
	}

	if d.Namespace != cdecl.NamespaceNormal || d.Storage == cdecl.StorageEnumEntry {
		return RegionSkipped
	}

	if cdecl.IsFunction(d.Type) {
		return RegionFunction
	}
	return RegionVariable
}
