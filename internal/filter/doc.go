// Package filter holds the canonical description of what the shopper is
// looking at: category, gender, search text, sort order, page, and price
// range, plus the thread-safe store that owns it.
//
// # Overview
//
// Every view of the product listing renders from a single State value.
// Mutations flow through a pure reducer, so the rules that keep the state
// coherent live in exactly one place and are trivially testable.
//
// # State Transitions
//
// Apply maps (state, bounds, action) to the next state. The reducer
// enforces three cross-field rules:
//
//   - Every action except SetPage resets pagination to page 1. A filter
//     change invalidates the current page; staying on page 7 of a result
//     set that no longer has 7 pages would strand the shopper.
//   - SetGender clears the category selection. Categories are
//     gender-partitioned, so a men's category under a women's listing is
//     contradictory and the category always yields.
//   - SetPriceRange normalizes its input: an inverted pair is swapped,
//     then both ends are clamped to the catalog bounds.
//
// Unknown gender and sort values degrade to their defaults (all,
// featured) instead of erroring. URLs and persisted state may carry
// stale values; degrading keeps them loadable.
//
// # The Store
//
// Store wraps a State, the catalog price bounds, and the most recent
// ResultSet behind an RWMutex. The UI reads immutable Snapshot copies;
// fetch completions write results concurrently.
//
// Result handling is asymmetric on purpose:
//
//   - ApplyResult replaces the items wholesale on success
//   - FailResult keeps the previous items and only flips the status,
//     so the grid stays populated while an error banner shows
//
// # Subscriptions
//
// Subscribe registers a listener invoked after every committed mutation.
// Listeners run outside the lock and may read snapshots. The UI uses this
// to forward store changes into the render loop.
//
// # Bounds Lifecycle
//
// The catalog price extent is not known at startup. SetBounds records it
// when the first response reports it; a price selection still tracking
// the old default follows the new bounds, while an explicit selection is
// re-clamped and otherwise left alone.
package filter
