// Package app wires configuration, the session store, the API client, the
// state store and the UI into the realmboard dashboard.
//
// # Components
//
//   - app.go: Run, the composition root, and Logout for the CLI
//   - sync.go: Syncer, which watches store snapshots and issues the fetches
//     that Plan says are due
//   - poller.go: backoff and realm refresh timing
//   - actions.go: Actions, the user intents invoked by the UI
//   - local.go: locally remembered preferences for anonymous sessions
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()      Read config.toml
//	       ├─────> logging.New()      File logger
//	       ├─────> session.Open()     Preloaded token
//	       ├─────> state.NewStore()   Shared store
//	       ├─────> Syncer.Run()       Background fetches
//	       └─────> ui.Run()           TUI (blocks)
//
//	Syncer loop:
//	┌─────────────────────────────────────────┐
//	│ store.Subscribe() snapshot              │
//	│  ├─> Plan(snapshot) -> jobs             │
//	│  ├─> Dispatch(Request*) -> Seq          │
//	│  ├─> API call                           │
//	│  └─> Dispatch(Receive* tagged with Seq) │
//	└─────────────────────────────────────────┘
//
// Every fetch goes through the store, so the UI only ever sees reducer
// output. Failures are recorded as Failure levels and logged; only ping is
// retried automatically. Realms are refreshed on a ticker once settled.
package app
