package dom

import (
	"strings"
	"testing"
	"time"
)

func newTestAnimator(t *testing.T) (*Animator, *Document, *int) {
	t.Helper()
	doc, err := Parse(`<html><body><div id="panel">content</div></body></html>`, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	a := NewAnimator(doc)
	sleeps := 0
	a.sleep = func(time.Duration) { sleeps++ }
	return a, doc, &sleeps
}

func TestFadeOutStepsFrames(t *testing.T) {
	a, doc, sleeps := newTestAnimator(t)
	a.Frames = 5

	a.FadeOut("#panel", 100*time.Millisecond)

	// One inter-frame sleep fewer than frames.
	if *sleeps != 4 {
		t.Fatalf("sleeps = %d, want 4", *sleeps)
	}
	style, _ := doc.Attr("#panel", "style")
	if !strings.Contains(style, "display:none") {
		t.Fatalf("final style = %q, want hidden", style)
	}
}

func TestFadeInEndsFullyOpaque(t *testing.T) {
	a, doc, _ := newTestAnimator(t)

	a.FadeIn("#panel", 50*time.Millisecond)

	style, _ := doc.Attr("#panel", "style")
	if !strings.Contains(style, "opacity:1.00") {
		t.Fatalf("final style = %q, want opacity:1.00", style)
	}
}

func TestSlideUpHides(t *testing.T) {
	a, doc, _ := newTestAnimator(t)

	a.SlideUp("#panel", 50*time.Millisecond)

	style, _ := doc.Attr("#panel", "style")
	if !strings.Contains(style, "display:none") {
		t.Fatalf("final style = %q, want hidden", style)
	}
}

func TestAnimationPreservesExistingInlineStyle(t *testing.T) {
	doc, err := Parse(`<html><body><div id="panel" style="width:120px;color:red">content</div></body></html>`, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	a := NewAnimator(doc)
	a.sleep = func(time.Duration) {}

	a.FadeOut("#panel", 50*time.Millisecond)

	style, _ := doc.Attr("#panel", "style")
	for _, want := range []string{"width:120px", "color:red", "opacity:0.00", "display:none"} {
		if !strings.Contains(style, want) {
			t.Fatalf("style after FadeOut = %q, missing %q", style, want)
		}
	}

	a.FadeIn("#panel", 50*time.Millisecond)

	style, _ = doc.Attr("#panel", "style")
	if strings.Contains(style, "display:none") {
		t.Fatalf("style after FadeIn = %q, element still hidden", style)
	}
	for _, want := range []string{"width:120px", "color:red", "opacity:1.00"} {
		if !strings.Contains(style, want) {
			t.Fatalf("style after FadeIn = %q, missing %q", style, want)
		}
	}
}

func TestMergeStyle(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		props    []prop
		want     string
	}{
		{"empty base", "", []prop{{"opacity", "0.50"}}, "opacity:0.50"},
		{"override keeps position", "opacity:1.00;width:10px", []prop{{"opacity", "0.30"}}, "opacity:0.30;width:10px"},
		{"append new", "width:10px", []prop{{"display", "none"}}, "width:10px;display:none"},
		{"remove property", "overflow:hidden;height:50%", []prop{{"overflow", ""}, {"height", ""}}, ""},
		{"sloppy whitespace", " width : 10px ; color:red", []prop{{"opacity", "0.10"}}, "width:10px;color:red;opacity:0.10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mergeStyle(tt.existing, tt.props); got != tt.want {
				t.Fatalf("mergeStyle(%q) = %q, want %q", tt.existing, got, tt.want)
			}
		})
	}
}

func TestSlideDownRestoresNaturalHeight(t *testing.T) {
	a, doc, _ := newTestAnimator(t)

	a.SlideUp("#panel", 0)
	a.SlideDown("#panel", 0)

	if _, ok := doc.Attr("#panel", "style"); ok {
		t.Fatal("style attr should be cleared after SlideDown")
	}
}
