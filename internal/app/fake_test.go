package app

import (
	"context"
	"errors"
	"sync"

	"github.com/five82/realmboard/internal/sotah"
)

var (
	eu        = sotah.Region{Name: "eu", Hostname: "eu.api.blizzard.com"}
	us        = sotah.Region{Name: "us", Hostname: "us.api.blizzard.com"}
	draenor   = sotah.Realm{Slug: "draenor", Name: "Draenor", RegionName: "eu"}
	orgrimmar = sotah.Realm{Slug: "org", Name: "Orgrimmar", RegionName: "us"}
	stormwind = sotah.Realm{Slug: "sw", Name: "Stormwind", RegionName: "us"}
)

// fakeAPI serves canned responses and records calls.
type fakeAPI struct {
	mu sync.Mutex

	pingErrs  []error
	bootErrs  []error
	boot      *sotah.Boot
	realms    map[sotah.RegionName][]sotah.Realm
	user      sotah.User
	reloadErr error
	profile   sotah.Profile
	loginErr  error
	pref      *sotah.UserPreference
	prefErr   error
	saveErr   error
	saved     []sotah.UserPreference
	lists     []sotah.Pricelist

	realmsGate chan struct{} // blocks Realms until closed
	onSave     func()        // runs inside SavePreferences before it answers

	calls []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		boot: &sotah.Boot{Regions: []sotah.Region{eu, us}},
		realms: map[sotah.RegionName][]sotah.Realm{
			"eu": {draenor},
			"us": {orgrimmar, stormwind},
		},
	}
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeAPI) Ping(context.Context) error {
	f.record("ping")
	f.mu.Lock()
	defer f.mu.Unlock()
	return pop(&f.pingErrs)
}

func (f *fakeAPI) Boot(context.Context) (*sotah.Boot, error) {
	f.record("boot")
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := pop(&f.bootErrs); err != nil {
		return nil, err
	}
	return f.boot, nil
}

// pop returns and removes the first queued error, or nil once the queue
// is drained.
func pop(errs *[]error) error {
	if len(*errs) == 0 {
		return nil
	}
	err := (*errs)[0]
	*errs = (*errs)[1:]
	return err
}

func (f *fakeAPI) Realms(ctx context.Context, region sotah.RegionName) ([]sotah.Realm, error) {
	f.record("realms")
	f.mu.Lock()
	gate := f.realmsGate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	realms, ok := f.realms[region]
	if !ok {
		return nil, errors.New("unknown region")
	}
	return realms, nil
}

func (f *fakeAPI) Login(_ context.Context, email, _ string) (sotah.Profile, error) {
	f.record("login")
	if f.loginErr != nil {
		return sotah.Profile{}, f.loginErr
	}
	p := f.profile
	p.User.Email = email
	return p, nil
}

func (f *fakeAPI) Register(ctx context.Context, email, password string) (sotah.Profile, error) {
	return f.Login(ctx, email, password)
}

func (f *fakeAPI) ReloadUser(context.Context, string) (sotah.User, error) {
	f.record("reload")
	return f.user, f.reloadErr
}

func (f *fakeAPI) Preferences(context.Context, string) (*sotah.UserPreference, error) {
	f.record("preferences")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pref, f.prefErr
}

func (f *fakeAPI) SavePreferences(_ context.Context, _ string, pref sotah.UserPreference) (*sotah.UserPreference, error) {
	f.record("save-preferences")
	if f.onSave != nil {
		f.onSave()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = append(f.saved, pref)
	f.pref = &pref
	return &pref, nil
}

func (f *fakeAPI) Pricelists(context.Context, string, sotah.RegionName, sotah.RealmSlug) ([]sotah.Pricelist, error) {
	f.record("pricelists")
	return f.lists, nil
}

var _ sotah.API = (*fakeAPI)(nil)

// memSessions is an in-memory tokenStore.
type memSessions struct {
	mu    sync.Mutex
	token string
}

func (m *memSessions) SaveToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memSessions) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func (m *memSessions) get() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}
