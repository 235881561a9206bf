// Package notify renders transient severity-tagged messages into the fixed
// notification container and auto-dismisses them.
package notify

import (
	"fmt"
	"html"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hospihub/adminkit/internal/dom"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

const (
	// ContainerSelector identifies the fixed-position container all
	// notifications stack into.
	ContainerSelector = "#notification-container"

	containerHTML  = `<div id="notification-container" class="notification-container"></div>`
	DefaultTimeout = 5 * time.Second
)

// Notification is one live message. It disappears on dismissal or timeout.
type Notification struct {
	ID        string
	Severity  Severity
	Message   string
	CreatedAt time.Time
}

// Notifier owns the container node and the dismissal timers. There is no
// queue: concurrent notifications simply stack.
type Notifier struct {
	mu     sync.Mutex
	doc    *dom.Document
	anim   *dom.Animator
	logger *zap.Logger
	active map[string]Notification
	timers map[string]*time.Timer
}

func NewNotifier(doc *dom.Document, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		doc:    doc,
		anim:   dom.NewAnimator(doc),
		logger: logger.Named("notify"),
		active: make(map[string]Notification),
		timers: make(map[string]*time.Timer),
	}
}

// Show inserts a notification node and schedules its dismissal after
// duration (DefaultTimeout when zero; negative disables auto-dismiss).
// Returns the notification ID.
func (n *Notifier) Show(severity Severity, message string, duration time.Duration) string {
	if duration == 0 {
		duration = DefaultTimeout
	}

	notif := Notification{
		ID:        uuid.New().String(),
		Severity:  severity,
		Message:   message,
		CreatedAt: time.Now(),
	}

	n.mu.Lock()
	n.ensureContainerLocked()
	n.doc.AppendHTML(ContainerSelector, fmt.Sprintf(
		`<div id="notif-%s" class="notification notification-%s">%s</div>`,
		notif.ID, severity, html.EscapeString(message)))
	n.active[notif.ID] = notif
	if duration > 0 {
		n.timers[notif.ID] = time.AfterFunc(duration, func() { n.Dismiss(notif.ID) })
	}
	n.mu.Unlock()

	n.logger.Debug("notification shown",
		zap.String("id", notif.ID),
		zap.String("severity", string(severity)),
		zap.String("message", message))
	return notif.ID
}

// Dismiss fades the notification out and removes its node. Dismissing an
// unknown or already-dismissed ID is a no-op.
func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	_, ok := n.active[id]
	if !ok {
		n.mu.Unlock()
		return
	}
	delete(n.active, id)
	if t := n.timers[id]; t != nil {
		t.Stop()
		delete(n.timers, id)
	}
	n.mu.Unlock()

	sel := "#notif-" + id
	n.anim.FadeOut(sel, 150*time.Millisecond)
	n.doc.Remove(sel)
}

// Active returns the live notifications, oldest first.
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, 0, len(n.active))
	for _, notif := range n.active {
		out = append(out, notif)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (n *Notifier) ensureContainerLocked() {
	if n.doc.Count(ContainerSelector) == 0 {
		n.doc.AppendHTML("body", containerHTML)
	}
}
