// Package fetcher turns filter state into catalog requests and reconciles
// the responses into the store.
//
// # Overview
//
// The Orchestrator is the only component that talks to the product listing
// endpoint. It owns three concerns that are easy to get wrong separately:
// request sequencing, debouncing, and page clamping.
//
// # Sequencing
//
// Responses can arrive out of order: a request for "shoes" may complete
// after the request for "shoes under $50" that superseded it. Every
// Refresh increments a sequence number and tags its request; when a
// response arrives, it is committed only if its sequence is still the
// latest issued. A superseded request's context is also cancelled, but
// cancellation is best-effort - the sequence check is what guarantees a
// stale response can never overwrite a fresher one.
//
// # Debouncing
//
// Text and price filters change on every keystroke. RefreshDebounced
// schedules a fetch after an idle interval and restarts the clock on each
// call, so a burst of keystrokes produces one request. The filter state
// and URL still update immediately; only the network call waits.
//
// Close stops the pending timer and marks the orchestrator closed, so a
// debounce can never fire after teardown.
//
// # Page Clamping
//
// Before building a request the orchestrator clamps the page into
// [1, ceil(total/pageSize)] using the last known total. A corrected page
// is committed back to the store so the URL bar and the request agree on
// what is being shown.
//
// # Defensive Gender Filtering
//
// The server filters by gender, but a response issued before a gender
// switch may still carry products from the other partition. FilterByGender
// re-applies the gender rule client-side using the category-to-gender
// index. The pass is idempotent and keeps products in unknown categories.
package fetcher
