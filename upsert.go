package folio

// addOrReplace returns a copy of s where every element satisfying 'matches'
// is replaced by 'update' applied to it, the rest passing through unchanged.
// When nothing matches, def is prepended and the original order of s is
// preserved behind it.
//
// The transformation is pure: s is never mutated.
func addOrReplace[E any](matches func(E) bool, update func(E) E, def E, s []E) []E {
	found := false
	out := make([]E, 0, len(s)+1)
	for _, e := range s {
		if matches(e) {
			found = true
			out = append(out, update(e))
			continue
		}
		out = append(out, e)
	}
	if !found {
		return append([]E{def}, out...)
	}
	return out
}
