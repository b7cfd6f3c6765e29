package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/realmboard/internal/fetch"
	"github.com/five82/realmboard/internal/prefs"
	"github.com/five82/realmboard/internal/sotah"
	"github.com/five82/realmboard/internal/state"
	"github.com/five82/realmboard/internal/ui"
)

var errPreferencesUnavailable = errors.New("logged in, but preferences could not be loaded")

// Actions carries out user intents coming from the dashboard.
type Actions struct {
	store    *state.Store
	api      sotah.API
	sessions tokenStore
	local    *localPrefs
	syncer   *Syncer
	logger   *zap.Logger
}

func newActions(store *state.Store, api sotah.API, sessions tokenStore, local *localPrefs, syncer *Syncer, logger *zap.Logger) *Actions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Actions{store: store, api: api, sessions: sessions, local: local, syncer: syncer, logger: logger}
}

// ChangeRegion selects region and remembers the choice.
func (a *Actions) ChangeRegion(ctx context.Context, region sotah.Region) error {
	pref := sotah.UserPreference{CurrentRegion: region.Name}
	a.record(pref)
	a.store.Dispatch(state.RegionChange{Region: region})
	return a.persist(ctx, pref)
}

// ChangeRealm selects realm and remembers the choice.
func (a *Actions) ChangeRealm(ctx context.Context, realm sotah.Realm) error {
	region := realm.RegionName
	if snap := a.store.Snapshot(); snap.CurrentRegion != nil {
		region = snap.CurrentRegion.Name
	}
	pref := sotah.UserPreference{CurrentRegion: region, CurrentRealm: realm.Slug}
	a.record(pref)
	a.store.Dispatch(state.RealmChange{Realm: realm})
	return a.persist(ctx, pref)
}

// record makes pref the stored preference before anything is saved, so a
// realm refresh resolves to the user's choice while the save is pending or
// after it failed.
func (a *Actions) record(pref sotah.UserPreference) {
	seq := a.store.Dispatch(state.RequestUserPreferences{}).UserPreferences.Seq
	a.store.Dispatch(state.ReceiveUserPreferences{Preference: &pref, Seq: seq})
}

// persist stores pref on the server for a logged in user and in the local
// prefs file otherwise. A failed save leaves the recorded choice in place.
func (a *Actions) persist(ctx context.Context, pref sotah.UserPreference) error {
	snap := a.store.Snapshot()
	if snap.AuthLevel != state.AuthAuthenticated {
		err := a.local.update(func(p *prefs.Prefs) {
			p.Region = pref.CurrentRegion
			p.Realm = pref.CurrentRealm
		})
		if err != nil {
			return fmt.Errorf("save local preferences: %w", err)
		}
		return nil
	}

	saved, err := a.api.SavePreferences(ctx, snap.Token(), pref)
	if err != nil {
		a.logger.Warn("save preferences failed", zap.Error(err))
		return fmt.Errorf("save preferences: %w", err)
	}
	if saved != nil && *saved != pref {
		a.record(*saved)
	}
	return nil
}

// Login authenticates, persists the token and applies the user's stored
// preference.
func (a *Actions) Login(ctx context.Context, email, password string) error {
	profile, err := a.api.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	a.persistToken(ctx, profile.Token)
	a.store.Dispatch(state.UserLogin{Profile: profile})
	return a.afterAuth(ctx)
}

// Register creates an account and logs it in.
func (a *Actions) Register(ctx context.Context, email, password string) error {
	profile, err := a.api.Register(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	a.persistToken(ctx, profile.Token)
	a.store.Dispatch(state.UserRegister{Profile: profile})
	return a.afterAuth(ctx)
}

func (a *Actions) persistToken(ctx context.Context, token string) {
	if a.sessions == nil {
		return
	}
	if err := a.sessions.SaveToken(ctx, token); err != nil {
		a.logger.Warn("persist session token", zap.Error(err))
	}
}

// afterAuth closes the login dialog, loads the server preference and
// switches to its region and realm when they are known.
func (a *Actions) afterAuth(ctx context.Context) error {
	a.store.Dispatch(state.ChangeIsLoginDialogOpen{Open: false})
	a.syncer.preferences(ctx)

	snap := a.store.Snapshot()
	if snap.UserPreferences.Level == fetch.Failure {
		return errPreferencesUnavailable
	}
	pref := snap.Preference()
	if pref == nil {
		return nil
	}
	if region, ok := snap.Regions[pref.CurrentRegion]; ok &&
		(snap.CurrentRegion == nil || snap.CurrentRegion.Name != region.Name) {
		a.store.Dispatch(state.RegionChange{Region: region})
		return nil
	}
	if realm, ok := snap.Realms[pref.CurrentRealm]; ok &&
		(snap.CurrentRealm == nil || snap.CurrentRealm.Slug != realm.Slug) {
		a.store.Dispatch(state.RealmChange{Realm: realm})
	}
	return nil
}

// Logout forgets the session token and the user-scoped state.
func (a *Actions) Logout(ctx context.Context) error {
	a.store.Dispatch(state.UserLogout{})
	if a.sessions == nil {
		return nil
	}
	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// RefreshPricelists re-fetches the pricelists of the current realm for a
// logged in user.
func (a *Actions) RefreshPricelists(ctx context.Context) {
	snap := a.store.Snapshot()
	if snap.AuthLevel != state.AuthAuthenticated || snap.CurrentRealm == nil {
		return
	}
	a.syncer.start(ctx, JobPricelists)
}

// SelectList marks list as the selected pricelist.
func (a *Actions) SelectList(list sotah.Pricelist) {
	a.store.Dispatch(state.ChangeSelectedList{List: list})
}

// SetLoginDialogOpen opens or closes the login dialog.
func (a *Actions) SetLoginDialogOpen(open bool) {
	a.store.Dispatch(state.ChangeIsLoginDialogOpen{Open: open})
}

// SetTheme persists the dashboard theme.
func (a *Actions) SetTheme(name string) error {
	return a.local.update(func(p *prefs.Prefs) { p.Theme = name })
}

var _ ui.Actions = (*Actions)(nil)
