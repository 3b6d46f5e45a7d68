package games

// Accumulator folds per-account game sets into their running intersection.
//
// An unseeded accumulator is distinct from one holding an empty set: the first
// Fold always seeds it, even when the folded set is empty, and every later Fold
// intersects against the running total.
type Accumulator struct {
	current Set
	folds   int
}

// Fold merges one account's set into the running intersection.
func (a *Accumulator) Fold(s Set) {
	if a.current == nil {
		a.current = s.Clone()
	} else {
		a.current = a.current.Intersect(s)
	}
	a.folds++
}

// Seeded reports whether at least one set has been folded.
func (a *Accumulator) Seeded() bool {
	return a.current != nil
}

// Folds returns how many sets have been folded so far.
func (a *Accumulator) Folds() int {
	return a.folds
}

// Set returns a copy of the running intersection. An unseeded accumulator
// yields an empty set.
func (a *Accumulator) Set() Set {
	if a.current == nil {
		return Set{}
	}
	return a.current.Clone()
}
