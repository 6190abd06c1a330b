package listing

// FilterOptions configures which results are kept.
type FilterOptions struct {
	// Floorplan drops results that have no floorplan URL.
	Floorplan bool
}

// Filter returns r unchanged and true when it passes opts, or nil and
// false when it should be dropped.
func Filter(opts FilterOptions, r *Result) (*Result, bool) {
	if r == nil {
		return nil, false
	}
	if opts.Floorplan && !r.HasFloorplan() {
		return nil, false
	}
	return r, true
}
