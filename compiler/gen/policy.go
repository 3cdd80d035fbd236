package gen

// ExpansionPolicy controls how relationship pointers and the included
// fragment are rendered. It is passed down through one level of recursion.
type ExpansionPolicy struct {
	// Expand chooses the expanded {id, type} pointer form for
	// relationships and enables the included fragment; collapsed
	// presence metadata otherwise.
	Expand bool
	// Exclude names relationships that must not be traversed further.
	// Termination of graph traversal never depends on it: expansion is
	// structurally bounded at two hops.
	Exclude []string
	// ExpandNested recurses the included fragment one further hop,
	// merging the extra targets into the same flat item union.
	ExpandNested bool
}

// Excluded reports whether the relationship name is in the exclusion set.
func (p ExpansionPolicy) Excluded(name string) bool {
	for _, n := range p.Exclude {
		if n == name {
			return true
		}
	}
	return false
}

// Mode selects the request schema being built.
type Mode int

// Request modes.
const (
	// Create builds the schema for resource creation requests.
	Create Mode = iota
	// Update builds the schema for resource update requests.
	Update
)

// String returns the mode name.
func (m Mode) String() string {
	if m == Update {
		return "update"
	}
	return "create"
}
