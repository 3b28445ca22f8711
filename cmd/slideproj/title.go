package main

import (
	"strings"

	"fyne.io/fyne/v2"
	"github.com/rivo/uniseg"
)

const (
	appName    = "slideproj"
	titleLimit = 80
	ellipsis   = "…"
)

// windowTitle shows slide captions in the window title. It implements
// presenter.TitleDisplay.
type windowTitle struct {
	window fyne.Window
	limit  int
}

func (t *windowTitle) SetTitle(caption string) {
	t.window.SetTitle(titleText(caption, t.limit))
}

func titleText(caption string, limit int) string {
	caption = strings.Join(strings.Fields(caption), " ")
	if caption == "" {
		return appName
	}
	return truncateGraphemes(caption, limit) + " - " + appName
}

// truncateGraphemes shortens s to at most limit grapheme clusters, marking
// the cut with an ellipsis.
func truncateGraphemes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if uniseg.GraphemeClusterCount(s) <= limit {
		return s
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for n := 0; n < limit-1 && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	b.WriteString(ellipsis)
	return b.String()
}
