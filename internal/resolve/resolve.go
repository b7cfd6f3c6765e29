// Package resolve picks default regions and realms from fetched candidate
// lists using the user's stored preference.
//
// A preference is only meaningful as a (region, realm) pair: when the
// resolved region is not the preferred one, the realm half is ignored and
// the first realm of the list is used. "First" always means first in the
// order the server delivered the list.
package resolve

import (
	"errors"

	"github.com/five82/realmboard/internal/sotah"
)

// ErrNoCandidates is returned when there is nothing to choose from.
var ErrNoCandidates = errors.New("resolve: no candidates")

// First returns the first candidate for which match reports true, falling
// back to candidates[0]. A nil match always yields candidates[0].
func First[E any](candidates []E, match func(E) bool) (E, error) {
	var zero E
	if len(candidates) == 0 {
		return zero, ErrNoCandidates
	}
	if match != nil {
		for _, c := range candidates {
			if match(c) {
				return c, nil
			}
		}
	}
	return candidates[0], nil
}

// Region resolves the current region from the boot region list.
func Region(candidates []sotah.Region, pref *sotah.UserPreference) (sotah.Region, error) {
	if pref == nil {
		return First[sotah.Region](candidates, nil)
	}
	return First(candidates, func(r sotah.Region) bool {
		return r.Name == pref.CurrentRegion
	})
}

// Realm resolves the current realm from region's realm list.
func Realm(candidates []sotah.Realm, pref *sotah.UserPreference, region *sotah.Region) (sotah.Realm, error) {
	if pref == nil || region == nil || region.Name != pref.CurrentRegion {
		return First[sotah.Realm](candidates, nil)
	}
	return First(candidates, func(r sotah.Realm) bool {
		return r.Slug == pref.CurrentRealm
	})
}
