package ui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/realmboard/internal/sotah"
	"github.com/five82/realmboard/internal/state"
)

type fakeActions struct {
	mu       sync.Mutex
	regions  []sotah.Region
	realms   []sotah.Realm
	logins   []string
	register []string
	logouts  int
	selected []sotah.Pricelist
	dialog   []bool
	themes   []string
	err      error
}

func (f *fakeActions) ChangeRegion(_ context.Context, region sotah.Region) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regions = append(f.regions, region)
	return f.err
}

func (f *fakeActions) ChangeRealm(_ context.Context, realm sotah.Realm) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.realms = append(f.realms, realm)
	return f.err
}

func (f *fakeActions) Login(_ context.Context, email, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins = append(f.logins, email)
	return f.err
}

func (f *fakeActions) Register(_ context.Context, email, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.register = append(f.register, email)
	return f.err
}

func (f *fakeActions) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	return f.err
}

func (f *fakeActions) RefreshPricelists(context.Context) {}

func (f *fakeActions) SelectList(list sotah.Pricelist) {
	f.selected = append(f.selected, list)
}

func (f *fakeActions) SetLoginDialogOpen(open bool) {
	f.dialog = append(f.dialog, open)
}

func (f *fakeActions) SetTheme(name string) error {
	f.themes = append(f.themes, name)
	return nil
}

var (
	regionEU = sotah.Region{Name: "eu", Hostname: "eu.api.blizzard.com"}
	regionUS = sotah.Region{Name: "us", Hostname: "us.api.blizzard.com"}

	realmDraenor    = sotah.Realm{RegionName: "eu", Name: "Draenor", Slug: "draenor", Population: sotah.PopulationHigh, Status: true}
	realmSilvermoon = sotah.Realm{RegionName: "eu", Name: "Silvermoon", Slug: "silvermoon", Population: sotah.PopulationFull, Queue: true, Status: true}
)

func reduceAll(s *state.AppState, events ...state.Event) *state.AppState {
	for _, ev := range events {
		s = state.Reduce(s, ev)
	}
	return s
}

// bootedState is an anonymous session with eu realms loaded.
func bootedState() *state.AppState {
	return reduceAll(state.Reduce(nil, nil),
		state.RequestPing{},
		state.ReceivePing{OK: true},
		state.ChangeAuthLevel{Level: state.AuthUnauthenticated},
		state.RequestUserPreferences{},
		state.ReceiveUserPreferences{},
		state.RequestBoot{},
		state.ReceiveBoot{Boot: &sotah.Boot{Regions: []sotah.Region{regionEU, regionUS}}},
		state.RequestRealms{},
		state.ReceiveRealms{Realms: []sotah.Realm{realmDraenor, realmSilvermoon}},
	)
}

func loggedInState() *state.AppState {
	return reduceAll(bootedState(),
		state.UserLogin{Profile: sotah.Profile{User: sotah.User{ID: 7, Email: "ada@example.com"}, Token: "tok"}},
		state.RequestPricelists{},
		state.ReceivePricelists{Pricelists: []sotah.Pricelist{
			{ID: 1, Name: "Herbs", Entries: []sotah.PricelistEntry{{ItemID: 2447, QuantityModifier: 20}}},
			{ID: 2, Name: "Ores"},
		}},
	)
}

func newTestModel(t *testing.T, s *state.AppState) (Model, *fakeActions) {
	t.Helper()
	actions := &fakeActions{}
	m := New(Options{
		Store:   state.NewStore(s, zap.NewNop()),
		Actions: actions,
		Logger:  zap.NewNop(),
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 110, Height: 30})
	m = next.(Model)
	m.applySnapshot(s)
	return m, actions
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestView_LoadingBeforeWindowSize(t *testing.T) {
	m := New(Options{})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View() = %q, want Loading...", got)
	}
}

func TestApplySnapshot_FillsRealmTableInDeliveryOrder(t *testing.T) {
	m, _ := newTestModel(t, bootedState())

	rows := m.realmTable.Rows()
	if len(rows) != 2 {
		t.Fatalf("realm rows = %d, want 2", len(rows))
	}
	if rows[0][1] != "Draenor" || rows[1][1] != "Silvermoon" {
		t.Fatalf("rows = %v, want Draenor then Silvermoon", rows)
	}
	if rows[0][0] != "●" || rows[1][0] != "" {
		t.Fatalf("current realm marker = %q/%q, want first row marked", rows[0][0], rows[1][0])
	}
	if rows[1][3] != "yes" || rows[1][2] != "Full" {
		t.Fatalf("silvermoon row = %v", rows[1])
	}
}

func TestRealmsView_EnterPicksRealmUnderCursor(t *testing.T) {
	m, actions := newTestModel(t, bootedState())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should emit a realm pick")
	}
	picked, ok := cmd().(realmPickedMsg)
	if !ok || picked.realm.Slug != "silvermoon" {
		t.Fatalf("picked = %#v, want silvermoon", picked)
	}

	_, cmd = press(t, m, picked)
	done, ok := cmd().(actionDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("action result = %#v", done)
	}
	if len(actions.realms) != 1 || actions.realms[0].Slug != "silvermoon" {
		t.Fatalf("ChangeRealm calls = %v", actions.realms)
	}
}

func TestViewSwitching(t *testing.T) {
	m, _ := newTestModel(t, bootedState())

	m, _ = press(t, m, runes("p"))
	if m.currentView != ViewPricelists {
		t.Fatalf("view = %v, want pricelists", m.currentView)
	}
	if !strings.Contains(m.View(), "Log in (L)") {
		t.Fatal("anonymous pricelists view should ask to log in")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.currentView != ViewRealms {
		t.Fatalf("view = %v, want realms", m.currentView)
	}
}

func TestRegionPicker_RequiresBoot(t *testing.T) {
	m, _ := newTestModel(t, state.Reduce(nil, nil))
	m, _ = press(t, m, runes("r"))
	if m.modal != nil {
		t.Fatal("region picker should not open before boot")
	}
}

func TestRegionPicker_FilterAndPick(t *testing.T) {
	m, actions := newTestModel(t, bootedState())

	m, _ = press(t, m, runes("r"))
	if _, ok := m.modal.(*pickerModal); !ok {
		t.Fatalf("modal = %T, want picker", m.modal)
	}

	m, _ = press(t, m, runes("us"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.modal != nil {
		t.Fatal("picker should close on enter")
	}
	picked, ok := cmd().(regionPickedMsg)
	if !ok || picked.region.Name != "us" {
		t.Fatalf("picked = %#v, want us", picked)
	}

	_, cmd = press(t, m, picked)
	cmd()
	if len(actions.regions) != 1 || actions.regions[0].Name != "us" {
		t.Fatalf("ChangeRegion calls = %v", actions.regions)
	}
}

func TestPicker_StartsOnCurrentItem(t *testing.T) {
	s := bootedState()
	p := newRealmPicker(s).(*pickerModal)
	if got := p.items[p.matches[p.cursor]].label; got != "Draenor" {
		t.Fatalf("cursor on %q, want Draenor", got)
	}
}

func TestLoginDialog_SubmitAndClose(t *testing.T) {
	m, actions := newTestModel(t, bootedState())

	m, _ = press(t, m, runes("L"))
	login, ok := m.modal.(*loginModal)
	if !ok {
		t.Fatalf("modal = %T, want login", m.modal)
	}
	if len(actions.dialog) != 1 || !actions.dialog[0] {
		t.Fatalf("dialog calls = %v, want [true]", actions.dialog)
	}

	m, _ = press(t, m, runes("ada@example.com"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = press(t, m, runes("secret"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !login.pending {
		t.Fatal("login should be pending after submit")
	}
	submit, ok := cmd().(loginSubmitMsg)
	if !ok || submit.email != "ada@example.com" || submit.password != "secret" || submit.register {
		t.Fatalf("submit = %#v", submit)
	}

	m, cmd = press(t, m, submit)
	done := cmd().(actionDoneMsg)
	m, _ = press(t, m, done)
	if login.pending {
		t.Fatal("pending should clear once the action finishes")
	}
	if len(actions.logins) != 1 || actions.logins[0] != "ada@example.com" {
		t.Fatalf("Login calls = %v", actions.logins)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.modal != nil {
		t.Fatal("esc should close the login dialog")
	}
	if got := actions.dialog[len(actions.dialog)-1]; got {
		t.Fatal("closing the dialog should clear the store flag")
	}
}

func TestLoginDialog_RequiresFields(t *testing.T) {
	l := newLoginModal()
	l.setFocus(fieldPassword)
	_, cmd, closed := l.Update(tea.KeyMsg{Type: tea.KeyEnter}, DefaultKeyMap())
	if closed || cmd != nil {
		t.Fatal("empty form must not submit")
	}
	if l.err != "email is required" || l.focus != fieldEmail {
		t.Fatalf("err = %q focus = %d", l.err, l.focus)
	}
}

func TestLoginDialog_ToggleRegister(t *testing.T) {
	l := newLoginModal()
	l.Update(tea.KeyMsg{Type: tea.KeyCtrlN}, DefaultKeyMap())
	if !l.register {
		t.Fatal("ctrl+n should switch to register")
	}
	if !strings.Contains(l.View(GetTheme(""), 80, 24), "Register") {
		t.Fatal("register mode should be labelled")
	}
}

func TestApplySnapshot_ClosesLoginWhenStoreCloses(t *testing.T) {
	m, _ := newTestModel(t, bootedState())
	m.modal = newLoginModal()

	m.applySnapshot(reduceAll(bootedState(), state.ChangeIsLoginDialogOpen{Open: false}))
	if m.modal != nil {
		t.Fatal("login modal should follow the store flag")
	}
}

func TestLoginKey_LogsOutWhenAuthenticated(t *testing.T) {
	m, actions := newTestModel(t, loggedInState())

	_, cmd := press(t, m, runes("L"))
	if cmd == nil {
		t.Fatal("expected logout command")
	}
	cmd()
	if actions.logouts != 1 {
		t.Fatalf("logouts = %d, want 1", actions.logouts)
	}
}

func TestPricelists_NavigateSelectsList(t *testing.T) {
	m, actions := newTestModel(t, loggedInState())
	m, _ = press(t, m, runes("p"))

	if !strings.Contains(m.View(), "Herbs") {
		t.Fatal("pricelists view should show list names")
	}

	m, _ = press(t, m, runes("j"))
	if m.listRow != 1 {
		t.Fatalf("listRow = %d, want 1", m.listRow)
	}
	if len(actions.selected) != 1 || actions.selected[0].ID != 2 {
		t.Fatalf("SelectList calls = %v", actions.selected)
	}

	m, _ = press(t, m, runes("j"))
	if m.listRow != 1 {
		t.Fatalf("listRow = %d, want clamp at 1", m.listRow)
	}
}

func TestCycleTheme_Persists(t *testing.T) {
	m, actions := newTestModel(t, bootedState())
	m, _ = press(t, m, runes("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	if len(actions.themes) != 1 || actions.themes[0] != "Kanagawa" {
		t.Fatalf("SetTheme calls = %v", actions.themes)
	}
}

func TestActionError_ShownInHeader(t *testing.T) {
	m, _ := newTestModel(t, bootedState())
	m, _ = press(t, m, actionDoneMsg{name: "change realm", err: context.DeadlineExceeded})
	if m.errorMsg == "" {
		t.Fatal("errorMsg should be set")
	}
	if !strings.Contains(m.renderHeader(), "deadline") {
		t.Fatal("header should show the action error")
	}
}

func TestHeader_PingFailure(t *testing.T) {
	s := reduceAll(state.Reduce(nil, nil), state.RequestPing{}, state.ReceivePing{OK: false})
	m, _ := newTestModel(t, s)
	if !strings.Contains(m.renderHeader(), "API DOWN") {
		t.Fatal("header should flag the unreachable API")
	}
}

func TestRealmsView_FailureMessage(t *testing.T) {
	s := reduceAll(bootedState(), state.RegionChange{Region: regionUS}, state.RequestRealms{}, state.ReceiveRealms{})
	m, _ := newTestModel(t, s)
	if len(m.realmTable.Rows()) != 2 {
		t.Fatalf("last known realms should stay listed, got %d rows", len(m.realmTable.Rows()))
	}
	if !strings.Contains(m.View(), "Refresh failed") {
		t.Fatal("realms view should report the failed refresh")
	}
}

func TestRealmRow_AuctionAge(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	prev := relativeNow
	relativeNow = func() time.Time { return now }
	t.Cleanup(func() { relativeNow = prev })

	r := realmDraenor
	r.LastModified = now.Add(-5 * time.Minute).Unix()
	row := realmRow(r, false, true)
	if row[5] != "5m ago" {
		t.Fatalf("auction age = %q, want 5m ago", row[5])
	}
	if len(row) != len(realmColumns(LayoutWideWidth)) {
		t.Fatalf("wide row has %d cells, columns %d", len(row), len(realmColumns(LayoutWideWidth)))
	}
}
