// Package form serializes, validates, and binds admin forms to the API
// client.
package form

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"hospihub/adminkit/internal/dom"
	"hospihub/adminkit/internal/httpclient"
	"hospihub/adminkit/internal/loading"
	"hospihub/adminkit/internal/notify"
	"hospihub/adminkit/pkg/result"
)

const invalidClass = "is-invalid"

const fieldSelector = "input[name], select[name], textarea[name]"

// Serialize collects the named fields of the form at formSel into a
// mapping, in document order. Repeated names collapse into a []string of
// their values; unchecked checkboxes and radios are omitted.
func Serialize(doc *dom.Document, formSel string) map[string]interface{} {
	values := make(map[string]interface{})

	doc.With(formSel, func(form *goquery.Selection) {
		form.First().Find(fieldSelector).Each(func(_ int, field *goquery.Selection) {
			name, _ := field.Attr("name")
			if name == "" {
				return
			}
			value, ok := fieldValue(field)
			if !ok {
				return
			}
			switch existing := values[name].(type) {
			case nil:
				values[name] = value
			case string:
				values[name] = []string{existing, value}
			case []string:
				values[name] = append(existing, value)
			}
		})
	})

	return values
}

func fieldValue(field *goquery.Selection) (string, bool) {
	switch goquery.NodeName(field) {
	case "select":
		opt := field.Find("option[selected]").First()
		if opt.Length() == 0 {
			return "", false
		}
		if v, ok := opt.Attr("value"); ok {
			return v, true
		}
		return strings.TrimSpace(opt.Text()), true
	case "textarea":
		return field.Text(), true
	default:
		typ, _ := field.Attr("type")
		if typ == "checkbox" || typ == "radio" {
			if _, checked := field.Attr("checked"); !checked {
				return "", false
			}
			if v, ok := field.Attr("value"); ok {
				return v, true
			}
			return "on", true
		}
		v, _ := field.Attr("value")
		return v, true
	}
}

// ValidateRequired checks every required named field of the form, marks the
// empty ones with the invalid class, and returns their names.
func ValidateRequired(doc *dom.Document, formSel string) []string {
	values := Serialize(doc, formSel)
	var missing []string

	doc.With(formSel, func(form *goquery.Selection) {
		form.First().Find("[required][name]").Each(func(_ int, field *goquery.Selection) {
			name, _ := field.Attr("name")
			if isPresent(values[name]) {
				field.RemoveClass(invalidClass)
				return
			}
			field.AddClass(invalidClass)
			missing = append(missing, name)
		})
	})

	return missing
}

func isPresent(v interface{}) bool {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val) != ""
	case []string:
		for _, s := range val {
			if strings.TrimSpace(s) != "" {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// SubmitFunc performs a bound form submission.
type SubmitFunc func(ctx context.Context) result.Result

// Binding ties one form to the API client.
type Binding struct {
	doc      *dom.Document
	client   *httpclient.Client
	notifier *notify.Notifier
	tracker  *loading.Tracker
	logger   *zap.Logger

	FormSel    string
	Method     string
	URL        string
	SuccessMsg string
}

// Bind prepares a submit function for the form at formSel. The method comes
// from the form's method attribute and the endpoint from data-action,
// falling back to the action attribute. The submit control is disabled for
// the duration and restored in every outcome, including a panic downstream.
func Bind(doc *dom.Document, formSel string, client *httpclient.Client, notifier *notify.Notifier, tracker *loading.Tracker, logger *zap.Logger) *Binding {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Binding{
		doc:      doc,
		client:   client,
		notifier: notifier,
		tracker:  tracker,
		logger:   logger.Named("form"),
		FormSel:  formSel,
		Method:   "POST",
	}

	if m, ok := doc.Attr(formSel, "method"); ok && m != "" {
		b.Method = strings.ToUpper(m)
	}
	if u, ok := doc.Attr(formSel, "data-action"); ok && u != "" {
		b.URL = u
	} else if u, ok := doc.Attr(formSel, "action"); ok {
		b.URL = u
	}
	if msg, ok := doc.Attr(formSel, "data-success"); ok {
		b.SuccessMsg = msg
	}

	return b
}

// Submit validates, serializes, and sends the form through the client.
func (b *Binding) Submit(ctx context.Context) result.Result {
	submitSel := b.FormSel + " [type=submit]"
	if b.tracker != nil {
		b.tracker.Show(submitSel)
		defer b.tracker.Hide(submitSel)
	}

	if missing := ValidateRequired(b.doc, b.FormSel); len(missing) > 0 {
		b.logger.Debug("form validation failed", zap.Strings("missing", missing))
		if b.notifier != nil {
			b.notifier.Show(notify.SeverityWarning, "Please fill in all required fields.", 0)
		}
		return result.Failure(0, "Please fill in all required fields.")
	}

	payload := Serialize(b.doc, b.FormSel)
	res := b.client.Do(ctx, b.Method, b.URL, payload)

	if b.notifier != nil {
		if res.OK {
			if b.SuccessMsg != "" {
				b.notifier.Show(notify.SeveritySuccess, b.SuccessMsg, 0)
			}
		} else {
			b.notifier.Show(notify.SeverityError, res.Message, 0)
		}
	}
	return res
}
