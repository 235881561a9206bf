package dom

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const defaultFrameInterval = 16 * time.Millisecond

// Animator steps inline styles frame by frame, the way the admin pages
// animate without a CSS transition dependency.
type Animator struct {
	doc      *Document
	Frames   int
	Interval time.Duration

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

func NewAnimator(doc *Document) *Animator {
	return &Animator{
		doc:      doc,
		Frames:   10,
		Interval: defaultFrameInterval,
		sleep:    time.Sleep,
	}
}

// FadeIn clears display:none and steps opacity from 0 to 1.
func (a *Animator) FadeIn(sel string, duration time.Duration) {
	a.setStyle(sel, prop{"opacity", "0.00"}, prop{"display", ""})
	a.step(duration, func(progress float64) {
		a.setStyle(sel, prop{"opacity", fmt.Sprintf("%.2f", progress)})
	})
}

// FadeOut steps opacity from 1 to 0 and hides the element.
func (a *Animator) FadeOut(sel string, duration time.Duration) {
	a.step(duration, func(progress float64) {
		a.setStyle(sel, prop{"opacity", fmt.Sprintf("%.2f", 1-progress)})
	})
	a.setStyle(sel, prop{"opacity", "0.00"}, prop{"display", "none"})
}

// SlideUp collapses the element height to zero and hides it.
func (a *Animator) SlideUp(sel string, duration time.Duration) {
	a.step(duration, func(progress float64) {
		a.setStyle(sel,
			prop{"overflow", "hidden"},
			prop{"height", fmt.Sprintf("%.0f%%", (1-progress)*100)})
	})
	a.setStyle(sel, prop{"display", "none"})
}

// SlideDown reveals the element and grows its height back to natural size.
func (a *Animator) SlideDown(sel string, duration time.Duration) {
	a.step(duration, func(progress float64) {
		a.setStyle(sel,
			prop{"display", ""},
			prop{"overflow", "hidden"},
			prop{"height", fmt.Sprintf("%.0f%%", progress*100)})
	})
	a.setStyle(sel, prop{"overflow", ""}, prop{"height", ""}, prop{"display", ""})
}

// prop is one inline style declaration. An empty value removes the
// property.
type prop struct {
	name  string
	value string
}

// setStyle merges props into the element's existing style attribute, so a
// fade never destroys server-rendered declarations alongside it.
func (a *Animator) setStyle(sel string, props ...prop) {
	a.doc.With(sel, func(s *goquery.Selection) {
		existing, _ := s.Attr("style")
		merged := mergeStyle(existing, props)
		if merged == "" {
			s.RemoveAttr("style")
			return
		}
		s.SetAttr("style", merged)
	})
}

// mergeStyle applies props to a style declaration string, preserving the
// order of declarations it does not touch.
func mergeStyle(existing string, props []prop) string {
	var names []string
	values := make(map[string]string)
	for _, decl := range strings.Split(existing, ";") {
		name, value, ok := strings.Cut(decl, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			continue
		}
		if _, seen := values[name]; !seen {
			names = append(names, name)
		}
		values[name] = strings.TrimSpace(value)
	}

	for _, p := range props {
		if p.value == "" {
			delete(values, p.name)
			continue
		}
		if _, seen := values[p.name]; !seen {
			names = append(names, p.name)
		}
		values[p.name] = p.value
	}

	var b strings.Builder
	for _, name := range names {
		value, ok := values[name]
		if !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(';')
		}
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(value)
	}
	return b.String()
}

// step invokes fn once per frame with progress in (0, 1], spreading frames
// evenly across duration.
func (a *Animator) step(duration time.Duration, fn func(progress float64)) {
	frames := a.Frames
	if frames < 1 {
		frames = 1
	}
	interval := a.Interval
	if duration > 0 {
		interval = duration / time.Duration(frames)
	}
	for i := 1; i <= frames; i++ {
		fn(float64(i) / float64(frames))
		if i < frames {
			a.sleep(interval)
		}
	}
}
