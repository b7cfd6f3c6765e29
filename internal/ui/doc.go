// Package ui provides the terminal dashboard for realmboard.
//
// The UI is a Bubble Tea program. It never owns application state: every
// tick it takes a snapshot from state.Store and renders it, and every user
// intent goes through the Actions interface, which dispatches events to the
// store and talks to the API.
//
// # Views
//
//   - Realms: realms of the current region in delivery order, with the
//     current realm marked.
//   - Pricelists: the logged in user's lists for the current realm and the
//     entries of the selected list.
//   - Logs: the tail of realmboard's own log file, following new lines.
//
// Region and realm pickers and the login dialog are modals layered over the
// current view. The login dialog mirrors the store's login-dialog flag.
//
// # Key Bindings
//
//   - v / p / l: Realms / Pricelists / Logs view
//   - r / R: Pick region / realm
//   - L: Log in or out
//   - ctrl+r: Refresh pricelists
//   - T: Cycle theme
//   - h or ?: Help
//   - e or Ctrl+C: Exit
package ui
