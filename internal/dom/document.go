// Package dom wraps a parsed HTML document with the class, attribute, and
// animation helpers the admin pages rely on. All access goes through a
// mutex so timers (notification dismissal, animation frames) can mutate the
// tree safely.
package dom

import (
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Document is a mutex-guarded HTML document.
type Document struct {
	mu     sync.Mutex
	doc    *goquery.Document
	logger *zap.Logger
}

// Parse builds a Document from raw HTML.
func Parse(html string, logger *zap.Logger) (*Document, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	return &Document{doc: gq, logger: logger.Named("dom")}, nil
}

// With runs fn against the selection for sel while holding the document
// lock. fn must not retain the selection.
func (d *Document) With(sel string, fn func(*goquery.Selection)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.doc.Find(sel))
}

func (d *Document) AddClass(sel, class string) {
	d.With(sel, func(s *goquery.Selection) { s.AddClass(class) })
}

func (d *Document) RemoveClass(sel, class string) {
	d.With(sel, func(s *goquery.Selection) { s.RemoveClass(class) })
}

func (d *Document) ToggleClass(sel, class string) {
	d.With(sel, func(s *goquery.Selection) { s.ToggleClass(class) })
}

func (d *Document) HasClass(sel, class string) bool {
	var has bool
	d.With(sel, func(s *goquery.Selection) { has = s.HasClass(class) })
	return has
}

// Attr returns the attribute value on the first matched element.
func (d *Document) Attr(sel, name string) (string, bool) {
	var (
		val string
		ok  bool
	)
	d.With(sel, func(s *goquery.Selection) { val, ok = s.Attr(name) })
	return val, ok
}

func (d *Document) SetAttr(sel, name, value string) {
	d.With(sel, func(s *goquery.Selection) { s.SetAttr(name, value) })
}

func (d *Document) RemoveAttr(sel, name string) {
	d.With(sel, func(s *goquery.Selection) { s.RemoveAttr(name) })
}

// AppendHTML appends a fragment inside the first element matching sel.
func (d *Document) AppendHTML(sel, html string) {
	d.With(sel, func(s *goquery.Selection) { s.First().AppendHtml(html) })
}

// Remove detaches every element matching sel from the tree.
func (d *Document) Remove(sel string) {
	d.With(sel, func(s *goquery.Selection) { s.Remove() })
}

func (d *Document) Text(sel string) string {
	var text string
	d.With(sel, func(s *goquery.Selection) { text = s.Text() })
	return text
}

// Count returns the number of elements matching sel.
func (d *Document) Count(sel string) int {
	var n int
	d.With(sel, func(s *goquery.Selection) { n = s.Length() })
	return n
}

// HTML renders the whole document back to markup.
func (d *Document) HTML() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.Html()
}
