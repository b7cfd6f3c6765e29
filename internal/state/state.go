package state

import (
	"fmt"

	"github.com/five82/realmboard/internal/fetch"
	"github.com/five82/realmboard/internal/sotah"
)

// AuthLevel tracks whether the session has an authenticated user.
type AuthLevel int

const (
	AuthInitial AuthLevel = iota
	AuthUnauthenticated
	AuthAuthenticated
)

func (a AuthLevel) String() string {
	switch a {
	case AuthInitial:
		return "initial"
	case AuthUnauthenticated:
		return "unauthenticated"
	case AuthAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("auth(%d)", int(a))
	}
}

// ItemClassEntry is one node of the two-level item class hierarchy.
type ItemClassEntry struct {
	Class         sotah.ItemClassID
	Name          string
	SubClasses    []sotah.SubItemClass
	SubClassesMap map[sotah.ItemSubClassID]sotah.SubItemClass
}

// ItemClasses maps class id to its entry.
type ItemClasses map[sotah.ItemClassID]ItemClassEntry

// AppState is one immutable snapshot of the dashboard state.
//
// Maps and slices reachable from an AppState are shared between successive
// snapshots and must never be written to.
type AppState struct {
	// Fetch lifecycles, each with its last successful payload.
	Ping            fetch.Resource[bool]
	Boot            fetch.Resource[*sotah.Boot]
	RealmList       fetch.Resource[[]sotah.Realm]
	UserPreferences fetch.Resource[*sotah.UserPreference]
	PricelistList   fetch.Resource[[]sotah.Pricelist]

	CurrentRegion *sotah.Region
	CurrentRealm  *sotah.Realm

	Regions     map[sotah.RegionName]sotah.Region
	Realms      map[sotah.RealmSlug]sotah.Realm
	ItemClasses ItemClasses
	Professions []sotah.Profession
	Expansions  []sotah.Expansion

	AuthLevel      AuthLevel
	Profile        *sotah.Profile
	PreloadedToken string
	IsLoggedIn     bool
	IsRegistered   bool

	SelectedList        *sotah.Pricelist
	IsLoginDialogOpen   bool
	IsAddListDialogOpen bool
}

// Default returns the state of a freshly started application.
func Default() AppState {
	return AppState{
		Regions:     map[sotah.RegionName]sotah.Region{},
		Realms:      map[sotah.RealmSlug]sotah.Realm{},
		ItemClasses: ItemClasses{},
	}
}

// Preference returns the fetched user preference, nil when none is known.
func (s *AppState) Preference() *sotah.UserPreference {
	if s == nil {
		return nil
	}
	return s.UserPreferences.Data
}

// RegionList returns the boot region list in delivery order.
func (s *AppState) RegionList() []sotah.Region {
	if s == nil || s.Boot.Data == nil {
		return nil
	}
	return s.Boot.Data.Regions
}

// Token returns the bearer token of the logged in profile.
func (s *AppState) Token() string {
	if s == nil || s.Profile == nil {
		return ""
	}
	return s.Profile.Token
}
