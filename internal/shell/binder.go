package shell

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"hospihub/adminkit/internal/dom"
	"hospihub/adminkit/internal/form"
	"hospihub/adminkit/internal/httpclient"
	"hospihub/adminkit/internal/input"
	"hospihub/adminkit/internal/loading"
	"hospihub/adminkit/internal/notify"
	"hospihub/adminkit/pkg/result"
)

// ConfirmFunc decides whether a guarded action proceeds. The argument is
// the data-confirm prompt text.
type ConfirmFunc func(prompt string) bool

// DeleteBinding is a wired data-delete button.
type DeleteBinding struct {
	Selector string
	URL      string
	Confirm  string
	Target   string
}

// Binder scans a rendered page and wires every data-ajax form and
// data-delete button through the API client, the way the admin pages bind
// at load.
type Binder struct {
	doc      *dom.Document
	client   *httpclient.Client
	notifier *notify.Notifier
	tracker  *loading.Tracker
	logger   *zap.Logger

	// ConfirmPrompt guards data-confirm deletes. The default declines, so
	// a missing hook never destroys data.
	ConfirmPrompt ConfirmFunc

	forms   map[string]*form.Binding
	deletes map[string]DeleteBinding
	rules   []input.RuleSet
}

func NewBinder(doc *dom.Document, client *httpclient.Client, notifier *notify.Notifier, tracker *loading.Tracker, logger *zap.Logger) *Binder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Binder{
		doc:           doc,
		client:        client,
		notifier:      notifier,
		tracker:       tracker,
		logger:        logger.Named("binder"),
		ConfirmPrompt: func(string) bool { return false },
		forms:         make(map[string]*form.Binding),
		deletes:       make(map[string]DeleteBinding),
	}
}

// BindAll walks the document once and registers every opted-in element.
func (b *Binder) BindAll() {
	b.bindForms()
	b.bindDeletes()
	b.rules = input.Attach(b.doc, "input[data-numeric], input[data-maxlength], input[data-email], input[data-pattern]")
	b.logger.Info("page bindings registered",
		zap.Int("forms", len(b.forms)),
		zap.Int("deletes", len(b.deletes)),
		zap.Int("input_rules", len(b.rules)))
}

// Rules returns the live-validation rule sets declared on the page inputs.
func (b *Binder) Rules() []input.RuleSet {
	return b.rules
}

func (b *Binder) bindForms() {
	var selectors []string
	b.doc.With("form[data-ajax]", func(s *goquery.Selection) {
		s.Each(func(i int, f *goquery.Selection) {
			id, ok := f.Attr("id")
			if !ok || id == "" {
				// Forms without an id get a synthetic one so each
				// binding's selector resolves to exactly that form, no
				// matter where it sits in the tree.
				id = fmt.Sprintf("adminkit-ajax-form-%d", i+1)
				f.SetAttr("id", id)
			}
			selectors = append(selectors, "#"+id)
		})
	})
	for _, sel := range selectors {
		b.forms[sel] = form.Bind(b.doc, sel, b.client, b.notifier, b.tracker, b.logger)
	}
}

func (b *Binder) bindDeletes() {
	b.doc.With("[data-delete]", func(s *goquery.Selection) {
		s.Each(func(_ int, el *goquery.Selection) {
			url, ok := el.Attr("data-url")
			if !ok || url == "" {
				return
			}
			id, _ := el.Attr("id")
			if id == "" {
				return
			}
			confirm, _ := el.Attr("data-confirm")
			target, _ := el.Attr("data-target")
			b.deletes["#"+id] = DeleteBinding{
				Selector: "#" + id,
				URL:      url,
				Confirm:  confirm,
				Target:   target,
			}
		})
	})
}

// Form returns the submit binding registered for sel.
func (b *Binder) Form(sel string) (*form.Binding, bool) {
	f, ok := b.forms[sel]
	return f, ok
}

// Forms lists the selectors of all bound forms.
func (b *Binder) Forms() []string {
	out := make([]string, 0, len(b.forms))
	for sel := range b.forms {
		out = append(out, sel)
	}
	return out
}

// Deletes lists all bound delete buttons.
func (b *Binder) Deletes() []DeleteBinding {
	out := make([]DeleteBinding, 0, len(b.deletes))
	for _, d := range b.deletes {
		out = append(out, d)
	}
	return out
}

// TriggerDelete fires the delete bound at sel: confirm prompt (when
// declared), DELETE through the client, and on success removal of the
// data-target node plus a success toast.
func (b *Binder) TriggerDelete(ctx context.Context, sel string) result.Result {
	binding, ok := b.deletes[sel]
	if !ok {
		return result.Failure(0, "Nothing is bound to this element.")
	}

	if binding.Confirm != "" && !b.ConfirmPrompt(binding.Confirm) {
		b.logger.Debug("delete cancelled at confirm prompt", zap.String("selector", sel))
		return result.Failure(0, "Cancelled.")
	}

	if b.tracker != nil {
		b.tracker.Show(sel)
		defer b.tracker.Hide(sel)
	}

	res := b.client.Delete(ctx, binding.URL)
	if !res.OK {
		if b.notifier != nil {
			b.notifier.Show(notify.SeverityError, res.Message, 0)
		}
		return res
	}

	if binding.Target != "" {
		b.doc.Remove(binding.Target)
	}
	if b.notifier != nil {
		b.notifier.Show(notify.SeveritySuccess, "Deleted successfully.", 0)
	}
	return res
}
