package shopurl

import "sync"

// History models browser-style navigation over canonical URLs. Filter
// tweaks call Replace so back/forward moves between browsing contexts, not
// keystrokes; gender/category navigation calls Push to open a new context.
type History struct {
	mu      sync.Mutex
	entries []string
	pos     int
}

// NewHistory starts a history at the given URL.
func NewHistory(initial string) *History {
	return &History{entries: []string{initial}}
}

// Current returns the active URL.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.pos]
}

// Push appends a new entry, discarding any forward entries.
func (h *History) Push(u string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.entries[h.pos] == u {
		return
	}
	h.entries = append(h.entries[:h.pos+1], u)
	h.pos = len(h.entries) - 1
}

// Replace overwrites the active entry without growing the stack.
func (h *History) Replace(u string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.pos] = u
}

// Back moves to the previous entry. The second return is false when
// already at the oldest entry.
func (h *History) Back() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pos == 0 {
		return h.entries[h.pos], false
	}
	h.pos--
	return h.entries[h.pos], true
}

// Forward moves to the next entry. The second return is false when already
// at the newest entry.
func (h *History) Forward() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pos >= len(h.entries)-1 {
		return h.entries[h.pos], false
	}
	h.pos++
	return h.entries[h.pos], true
}
