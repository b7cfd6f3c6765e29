package state

import (
	"slices"

	"github.com/five82/realmboard/internal/fetch"
	"github.com/five82/realmboard/internal/keyed"
	"github.com/five82/realmboard/internal/resolve"
	"github.com/five82/realmboard/internal/sotah"
)

// Reduce applies ev to s and returns the resulting state.
//
// A nil s yields the default state regardless of ev. Unrecognized events and
// rejected receives return s itself, so callers can detect "no change" with
// pointer equality. s is never modified; the returned state shares every
// map and slice that ev did not touch.
func Reduce(s *AppState, ev Event) *AppState {
	if s == nil {
		d := Default()
		return &d
	}

	switch ev := ev.(type) {
	case RequestPing:
		next := *s
		next.Ping = s.Ping.Request()
		return &next
	case ReceivePing:
		return receivePing(s, ev)

	case RequestBoot:
		next := *s
		next.Boot = s.Boot.Request()
		return &next
	case ReceiveBoot:
		return receiveBoot(s, ev)

	case RequestRealms:
		next := *s
		next.RealmList = s.RealmList.Request()
		return &next
	case ReceiveRealms:
		return receiveRealms(s, ev)

	case RegionChange:
		next := *s
		region := ev.Region
		next.CurrentRegion = &region
		next.RealmList = s.RealmList.Prompt()
		return &next
	case RealmChange:
		next := *s
		realm := ev.Realm
		next.CurrentRealm = &realm
		next.PricelistList = s.PricelistList.Prompt()
		return &next

	case RequestUserPreferences:
		next := *s
		next.UserPreferences = s.UserPreferences.Request()
		return &next
	case ReceiveUserPreferences:
		return receiveUserPreferences(s, ev)

	case UserLogin:
		next := *s
		profile := ev.Profile
		next.Profile = &profile
		next.IsLoggedIn = true
		next.AuthLevel = AuthAuthenticated
		return &next
	case UserRegister:
		next := *s
		profile := ev.Profile
		next.Profile = &profile
		next.IsRegistered = true
		next.AuthLevel = AuthAuthenticated
		return &next
	case ReceiveUserReload:
		next := *s
		if ev.Err != nil {
			next.AuthLevel = AuthUnauthenticated
			return &next
		}
		next.AuthLevel = AuthAuthenticated
		next.Profile = &sotah.Profile{User: ev.User, Token: s.PreloadedToken}
		return &next
	case UserLogout:
		next := *s
		next.AuthLevel = AuthUnauthenticated
		next.Profile = nil
		next.PreloadedToken = ""
		next.IsLoggedIn = false
		next.IsRegistered = false
		next.UserPreferences.Level = fetch.Initial
		next.UserPreferences.Data = nil
		next.PricelistList.Level = fetch.Initial
		next.PricelistList.Data = nil
		next.SelectedList = nil
		return &next
	case ChangeAuthLevel:
		next := *s
		next.AuthLevel = ev.Level
		return &next
	case ChangeIsLoginDialogOpen:
		next := *s
		next.IsLoginDialogOpen = ev.Open
		return &next

	case RequestPricelists:
		next := *s
		next.PricelistList = s.PricelistList.Request()
		return &next
	case ReceivePricelists:
		return receivePricelists(s, ev)
	case ChangeSelectedList:
		next := *s
		list := ev.List
		next.SelectedList = &list
		return &next
	case ChangeIsAddListDialogOpen:
		next := *s
		next.IsAddListDialogOpen = ev.Open
		return &next
	}

	return s
}

func receivePing(s *AppState, ev ReceivePing) *AppState {
	next := *s
	var ok bool
	if ev.OK {
		next.Ping, ok = s.Ping.Succeed(ev.Seq, true)
	} else {
		next.Ping, ok = s.Ping.Fail(ev.Seq)
	}
	if !ok {
		return s
	}
	return &next
}

func receiveBoot(s *AppState, ev ReceiveBoot) *AppState {
	if !s.Boot.Accepts(ev.Seq) {
		return s
	}
	next := *s
	if ev.Boot == nil {
		next.Boot, _ = s.Boot.Fail(ev.Seq)
		return &next
	}

	region, err := resolve.Region(ev.Boot.Regions, s.Preference())
	if err != nil {
		// Boot without regions leaves nothing to resolve realms against.
		next.Boot, _ = s.Boot.Fail(ev.Seq)
		return &next
	}

	boot := &sotah.Boot{
		Regions:     slices.Clone(ev.Boot.Regions),
		ItemClasses: slices.Clone(ev.Boot.ItemClasses),
		Professions: slices.Clone(ev.Boot.Professions),
		Expansions:  slices.Clone(ev.Boot.Expansions),
	}
	next.Boot, _ = s.Boot.Succeed(ev.Seq, boot)
	next.CurrentRegion = &region
	next.Regions = keyed.Index(boot.Regions, func(r sotah.Region) sotah.RegionName { return r.Name })
	next.ItemClasses = buildItemClasses(boot.ItemClasses)
	next.Professions = boot.Professions
	next.Expansions = boot.Expansions
	next.RealmList = s.RealmList.Prompt()
	return &next
}

func receiveRealms(s *AppState, ev ReceiveRealms) *AppState {
	if !s.RealmList.Accepts(ev.Seq) {
		return s
	}
	next := *s
	if len(ev.Realms) == 0 {
		next.RealmList, _ = s.RealmList.Fail(ev.Seq)
		return &next
	}

	realms := slices.Clone(ev.Realms)
	realm, err := resolve.Realm(realms, s.Preference(), s.CurrentRegion)
	if err != nil {
		next.RealmList, _ = s.RealmList.Fail(ev.Seq)
		return &next
	}

	next.RealmList, _ = s.RealmList.Succeed(ev.Seq, realms)
	next.Realms = keyed.Index(realms, func(r sotah.Realm) sotah.RealmSlug { return r.Slug })
	next.CurrentRealm = &realm
	next.PricelistList = s.PricelistList.Prompt()
	return &next
}

func receiveUserPreferences(s *AppState, ev ReceiveUserPreferences) *AppState {
	next := *s
	var ok bool
	if ev.Err != nil {
		next.UserPreferences, ok = s.UserPreferences.Fail(ev.Seq)
	} else {
		var pref *sotah.UserPreference
		if ev.Preference != nil {
			p := *ev.Preference
			pref = &p
		}
		next.UserPreferences, ok = s.UserPreferences.Succeed(ev.Seq, pref)
	}
	if !ok {
		return s
	}
	return &next
}

func receivePricelists(s *AppState, ev ReceivePricelists) *AppState {
	next := *s
	var ok bool
	if ev.Err != nil {
		next.PricelistList, ok = s.PricelistList.Fail(ev.Seq)
		if !ok {
			return s
		}
		return &next
	}

	lists := slices.Clone(ev.Pricelists)
	next.PricelistList, ok = s.PricelistList.Succeed(ev.Seq, lists)
	if !ok {
		return s
	}
	next.SelectedList = reselectList(s.SelectedList, lists)
	return &next
}

// reselectList keeps the selected list when it survived the refresh and
// otherwise falls back to the first list.
func reselectList(selected *sotah.Pricelist, lists []sotah.Pricelist) *sotah.Pricelist {
	if len(lists) == 0 {
		return nil
	}
	if selected != nil {
		for i := range lists {
			if lists[i].ID == selected.ID {
				list := lists[i]
				return &list
			}
		}
	}
	first := lists[0]
	return &first
}

func buildItemClasses(classes []sotah.ItemClass) ItemClasses {
	return keyed.IndexFunc(classes,
		func(c sotah.ItemClass) sotah.ItemClassID { return c.Class },
		func(c sotah.ItemClass) ItemClassEntry {
			return ItemClassEntry{
				Class:      c.Class,
				Name:       c.Name,
				SubClasses: c.SubClasses,
				SubClassesMap: keyed.Index(c.SubClasses, func(sc sotah.SubItemClass) sotah.ItemSubClassID {
					return sc.SubClass
				}),
			}
		})
}
