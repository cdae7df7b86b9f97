package changeset

// Footprints maps commit identifiers to the files they changed while
// remembering insertion order. First-match lookups iterate in that order,
// so callers control precedence by the order they add commits.
type Footprints struct {
	order []string
	sets  map[string]FileSet
}

// NewFootprints creates an empty mapping.
func NewFootprints() *Footprints {
	return &Footprints{sets: make(map[string]FileSet)}
}

// Add records the footprint of sha. Re-adding keeps the original position.
func (f *Footprints) Add(sha string, files FileSet) {
	if _, ok := f.sets[sha]; !ok {
		f.order = append(f.order, sha)
	}
	f.sets[sha] = files
}

// Get returns the footprint of sha, or an empty set when unknown.
func (f *Footprints) Get(sha string) FileSet {
	if s, ok := f.sets[sha]; ok {
		return s
	}
	return FileSet{}
}

// Order returns commit identifiers in insertion order.
func (f *Footprints) Order() []string {
	return append([]string(nil), f.order...)
}

// Len returns the number of commits recorded.
func (f *Footprints) Len() int {
	return len(f.order)
}
