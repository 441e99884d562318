package types

// RegionMap is a scope-structured mapping from region identifiers (as
// written in source, eg `'a`) to opaque region tokens.  Each lexical scope (a
// function body, a borrow statement, a block) pushes a fresh frame so that
// an inner region name shadows an outer one of the same spelling.
type RegionMap struct {
	frames []map[string]RegionIDType
}

// NewRegionMap creates a region map with one root frame.
func NewRegionMap() *RegionMap {
	return &RegionMap{frames: []map[string]RegionIDType{make(map[string]RegionIDType)}}
}

// Push opens a new nested scope.
func (rm *RegionMap) Push() {
	rm.frames = append(rm.frames, make(map[string]RegionIDType))
}

// Pop closes the innermost scope, so region names bound within it no
// longer resolve.  Neither this map nor the linearity checker checks that
// a reference tied to such a region is not returned or stored beyond it.
func (rm *RegionMap) Pop() {
	rm.frames = rm.frames[:len(rm.frames)-1]
}

// Bind introduces a new region name in the current (innermost) scope.
func (rm *RegionMap) Bind(name string) RegionIDType {
	tok := RegionIDType{ID: name}
	rm.frames[len(rm.frames)-1][name] = tok
	return tok
}

// Lookup resolves a region name, searching from the innermost scope
// outward.
func (rm *RegionMap) Lookup(name string) (RegionIDType, bool) {
	for i := len(rm.frames) - 1; i >= 0; i-- {
		if tok, ok := rm.frames[i][name]; ok {
			return tok, true
		}
	}
	return RegionIDType{}, false
}

// Depth returns the current scope nesting depth.  Nothing in this
// repository calls it.
func (rm *RegionMap) Depth() int { return len(rm.frames) }
