// Package ui implements the terminal user interface for Vitrine using
// Bubble Tea.
//
// # Overview
//
// The interface follows the Elm architecture: a root Model owns all UI
// state, Update handles messages, and View renders the current frame.
// Five views share the frame: the shop listing, product detail, cart,
// and the login and signup forms.
//
// # Architecture
//
//	┌─────────────────────────────────────────┐
//	│ Model (root)                            │
//	│  ├─> shopModel     listing + filters    │
//	│  ├─> detailModel   single product       │
//	│  ├─> cartModel     cart + totals        │
//	│  └─> formModel     login / signup       │
//	└─────────────────────────────────────────┘
//
// # The Dispatch Pipeline
//
// Every filter key runs through Model.dispatch, which keeps three systems
// agreeing on the current state:
//
//  1. The action is dispatched to the filter store (reducer applies)
//  2. The new state is rendered to a URL; gender and category changes
//     push a history entry, everything else replaces in place
//  3. A fetch is triggered - immediately for discrete changes, debounced
//     for text and price input
//
// Back/forward navigation runs the pipeline in reverse through
// Model.navigate: the history URL is parsed, the store state replaced,
// and a fetch issued. Navigate never writes history, which is the guard
// that keeps the synchronizer from looping.
//
// # Store Updates
//
// Run subscribes to the filter store and forwards every committed
// mutation into the program as a message. The UI re-reads an immutable
// snapshot on each one; no fetch result is ever pushed into UI state
// directly.
//
// # Input Focus
//
// Text-entry modes (search, price, auth forms) capture the keyboard;
// global bindings are suspended until escape or enter leaves the mode.
//
// # Theming
//
// Two built-in themes (Dracula, Slate) cycle at runtime and persist to
// the preferences file. Styles are pre-built lipgloss values; switching
// themes restyles every sub-model in place.
package ui
