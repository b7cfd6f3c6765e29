package state

import "github.com/five82/realmboard/internal/sotah"

// Event is the closed set of inputs accepted by Reduce. Only types in this
// package implement it.
//
// Receive events carry the Seq of the request they answer. Seq zero means
// "untagged": the receive is applied to whatever request is in flight.
type Event interface {
	Kind() string
	event()
}

type (
	RequestPing struct{}
	ReceivePing struct {
		OK  bool
		Seq uint64
	}

	RequestBoot struct{}
	// ReceiveBoot carries the boot payload; a nil Boot signals failure.
	ReceiveBoot struct {
		Boot *sotah.Boot
		Seq  uint64
	}

	RequestRealms struct{}
	// ReceiveRealms carries the current region's realms; nil or empty
	// signals failure.
	ReceiveRealms struct {
		Realms []sotah.Realm
		Seq    uint64
	}

	RegionChange struct{ Region sotah.Region }
	RealmChange  struct{ Realm sotah.Realm }

	RequestUserPreferences struct{}
	// ReceiveUserPreferences carries the stored preference, which may be
	// nil when the user never saved one.
	ReceiveUserPreferences struct {
		Preference *sotah.UserPreference
		Err        error
		Seq        uint64
	}

	UserLogin         struct{ Profile sotah.Profile }
	UserRegister      struct{ Profile sotah.Profile }
	UserLogout        struct{}
	ReceiveUserReload struct {
		User sotah.User
		Err  error
	}

	ChangeAuthLevel         struct{ Level AuthLevel }
	ChangeIsLoginDialogOpen struct{ Open bool }

	RequestPricelists struct{}
	ReceivePricelists struct {
		Pricelists []sotah.Pricelist
		Err        error
		Seq        uint64
	}
	ChangeSelectedList        struct{ List sotah.Pricelist }
	ChangeIsAddListDialogOpen struct{ Open bool }
)

func (RequestPing) Kind() string               { return "request-ping" }
func (ReceivePing) Kind() string               { return "receive-ping" }
func (RequestBoot) Kind() string               { return "request-boot" }
func (ReceiveBoot) Kind() string               { return "receive-boot" }
func (RequestRealms) Kind() string             { return "request-realms" }
func (ReceiveRealms) Kind() string             { return "receive-realms" }
func (RegionChange) Kind() string              { return "region-change" }
func (RealmChange) Kind() string               { return "realm-change" }
func (RequestUserPreferences) Kind() string    { return "request-user-preferences" }
func (ReceiveUserPreferences) Kind() string    { return "receive-user-preferences" }
func (UserLogin) Kind() string                 { return "user-login" }
func (UserRegister) Kind() string              { return "user-register" }
func (UserLogout) Kind() string                { return "user-logout" }
func (ReceiveUserReload) Kind() string         { return "receive-user-reload" }
func (ChangeAuthLevel) Kind() string           { return "change-auth-level" }
func (ChangeIsLoginDialogOpen) Kind() string   { return "change-is-login-dialog-open" }
func (RequestPricelists) Kind() string         { return "request-pricelists" }
func (ReceivePricelists) Kind() string         { return "receive-pricelists" }
func (ChangeSelectedList) Kind() string        { return "change-selected-list" }
func (ChangeIsAddListDialogOpen) Kind() string { return "change-is-add-list-dialog-open" }

func (RequestPing) event()               {}
func (ReceivePing) event()               {}
func (RequestBoot) event()               {}
func (ReceiveBoot) event()               {}
func (RequestRealms) event()             {}
func (ReceiveRealms) event()             {}
func (RegionChange) event()              {}
func (RealmChange) event()               {}
func (RequestUserPreferences) event()    {}
func (ReceiveUserPreferences) event()    {}
func (UserLogin) event()                 {}
func (UserRegister) event()              {}
func (UserLogout) event()                {}
func (ReceiveUserReload) event()         {}
func (ChangeAuthLevel) event()           {}
func (ChangeIsLoginDialogOpen) event()   {}
func (RequestPricelists) event()         {}
func (ReceivePricelists) event()         {}
func (ChangeSelectedList) event()        {}
func (ChangeIsAddListDialogOpen) event() {}
