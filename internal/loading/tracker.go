// Package loading toggles the full-page overlay and per-element busy state.
package loading

import (
	"sync"

	"hospihub/adminkit/internal/dom"
)

const (
	// OverlaySelector identifies the shared full-page overlay node.
	OverlaySelector = "#loading-overlay"

	overlayHTML = `<div id="loading-overlay" class="loading-overlay"><div class="spinner"></div></div>`
	busyClass   = "is-loading"
)

// Tracker owns the single page overlay and the set of busy elements.
// There is no reference counting: overlapping shows on the same target are
// collapsed, and one hide clears the target regardless of prior shows.
type Tracker struct {
	mu          sync.Mutex
	doc         *dom.Document
	pageVisible bool
	busy        map[string]bool
}

func NewTracker(doc *dom.Document) *Tracker {
	return &Tracker{doc: doc, busy: make(map[string]bool)}
}

// ShowPage displays the full-page overlay, creating it at most once.
func (t *Tracker) ShowPage() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pageVisible {
		return
	}
	t.pageVisible = true
	if t.doc == nil {
		return
	}
	if t.doc.Count(OverlaySelector) == 0 {
		t.doc.AppendHTML("body", overlayHTML)
	}
	t.doc.RemoveClass(OverlaySelector, "hidden")
}

// HidePage clears the overlay no matter how many ShowPage calls preceded it.
func (t *Tracker) HidePage() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.pageVisible {
		return
	}
	t.pageVisible = false
	if t.doc != nil {
		t.doc.AddClass(OverlaySelector, "hidden")
	}
}

func (t *Tracker) IsPageLoading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pageVisible
}

// Show marks the element at sel busy: adds the loading class and disables it.
func (t *Tracker) Show(sel string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.busy[sel] = true
	if t.doc != nil {
		t.doc.AddClass(sel, busyClass)
		t.doc.SetAttr(sel, "disabled", "disabled")
	}
}

// Hide restores the element at sel.
func (t *Tracker) Hide(sel string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.busy, sel)
	if t.doc != nil {
		t.doc.RemoveClass(sel, busyClass)
		t.doc.RemoveAttr(sel, "disabled")
	}
}

func (t *Tracker) IsBusy(sel string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.busy[sel]
}
