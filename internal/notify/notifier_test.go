package notify

import (
	"testing"
	"time"

	"hospihub/adminkit/internal/dom"
)

func newTestNotifier(t *testing.T) (*Notifier, *dom.Document) {
	t.Helper()
	doc, err := dom.Parse(`<html><body><main>page</main></body></html>`, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return NewNotifier(doc, nil), doc
}

func TestShowRendersIntoContainer(t *testing.T) {
	n, doc := newTestNotifier(t)

	id := n.Show(SeverityError, "Save failed", -1)

	if doc.Count(ContainerSelector) != 1 {
		t.Fatal("container not created")
	}
	if doc.Count("#notif-"+id) != 1 {
		t.Fatal("notification node not rendered")
	}
	if got := doc.Text("#notif-" + id); got != "Save failed" {
		t.Fatalf("node text = %q", got)
	}
	if !doc.HasClass("#notif-"+id, "notification-error") {
		t.Fatal("severity class missing")
	}
}

func TestContainerCreatedOnce(t *testing.T) {
	n, doc := newTestNotifier(t)

	n.Show(SeverityInfo, "one", -1)
	n.Show(SeverityInfo, "two", -1)

	if got := doc.Count(ContainerSelector); got != 1 {
		t.Fatalf("container count = %d, want 1", got)
	}
	if got := doc.Count(ContainerSelector + " .notification"); got != 2 {
		t.Fatalf("stacked notifications = %d, want 2", got)
	}
}

func TestMessageIsEscaped(t *testing.T) {
	n, doc := newTestNotifier(t)

	id := n.Show(SeverityWarning, `<script>alert("x")</script>`, -1)
	if doc.Count("#notif-"+id+" script") != 0 {
		t.Fatal("markup in message rendered as nodes")
	}
}

func TestDismissRemovesNode(t *testing.T) {
	n, doc := newTestNotifier(t)

	id := n.Show(SeveritySuccess, "Saved", -1)
	n.Dismiss(id)

	if doc.Count("#notif-"+id) != 0 {
		t.Fatal("node survived Dismiss")
	}
	if len(n.Active()) != 0 {
		t.Fatalf("Active = %+v after Dismiss", n.Active())
	}

	// Dismissing again is a no-op.
	n.Dismiss(id)
}

func TestAutoDismiss(t *testing.T) {
	n, doc := newTestNotifier(t)

	id := n.Show(SeverityInfo, "transient", 20*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if doc.Count("#notif-"+id) == 0 && len(n.Active()) == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("notification not auto-dismissed")
}

func TestActiveOldestFirst(t *testing.T) {
	n, _ := newTestNotifier(t)

	n.Show(SeverityInfo, "first", -1)
	time.Sleep(2 * time.Millisecond)
	n.Show(SeverityError, "second", -1)

	active := n.Active()
	if len(active) != 2 {
		t.Fatalf("Active = %d entries, want 2", len(active))
	}
	if active[0].Message != "first" || active[1].Message != "second" {
		t.Fatalf("Active order = %q, %q", active[0].Message, active[1].Message)
	}
}
