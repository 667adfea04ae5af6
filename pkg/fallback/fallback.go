// Package fallback provides ordered-precedence helpers for optional numeric
// fields. The engine distinguishes two notions of "missing": a nil pointer
// (field never supplied) and a zero value (supplied but empty, which the
// upstream system also treats as absent). Each call site picks the helper
// matching the semantics it needs instead of re-deriving a fallback chain.
package fallback

// Coalesce returns the first non-nil value in candidates, or def when every
// candidate is nil. A present zero is a valid value here.
func Coalesce(def float64, candidates ...*float64) float64 {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return def
}

// FirstPositive returns the first candidate that is non-nil and strictly
// positive, or def when none qualifies. This matches the upstream falsy-zero
// convention: a recorded 0 falls through exactly like a missing field.
func FirstPositive(def float64, candidates ...*float64) float64 {
	for _, c := range candidates {
		if c != nil && *c > 0 {
			return *c
		}
	}
	return def
}

// Value dereferences an optional field, defaulting nil to 0 so arithmetic
// never sees a null.
func Value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Ptr returns a pointer to v, for building optional fields in literals.
func Ptr(v float64) *float64 {
	return &v
}
