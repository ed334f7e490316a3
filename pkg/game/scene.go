package game

import "github.com/decker502/botdash/pkg/stats"

// Line 是页面上的一行：标签与值
type Line struct {
	Label string
	Value string
}

// Scene represents one dashboard page (overview, cluster, player).
// A page only decides what to show; the active backend decides how to draw it.
type Scene interface {
	// ID is the stable page identifier used on the command line.
	ID() string

	// Title is the label shown on the page's tab.
	Title() string

	// Lines returns the rows to display for the given stats view.
	Lines(v stats.View) []Line
}
