// Package keyed turns ordered entity lists into lookup tables.
//
// Every element of the input appears in the output under its key. When the
// key function is not injective, later elements overwrite earlier ones at
// that key (last write wins). Input order is not preserved by the map, so
// callers that render lists keep the original slice alongside the index.
package keyed

// Index returns a map from keyOf(e) to e for every element of list.
func Index[K comparable, E any](list []E, keyOf func(E) K) map[K]E {
	return IndexFunc(list, keyOf, func(e E) E { return e })
}

// IndexFunc is Index with a per-element builder, so nested structures can
// be indexed by applying IndexFunc again inside build.
func IndexFunc[K comparable, E, V any](list []E, keyOf func(E) K, build func(E) V) map[K]V {
	out := make(map[K]V, len(list))
	for _, e := range list {
		out[keyOf(e)] = build(e)
	}
	return out
}
