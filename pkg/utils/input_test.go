package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointerTrackerMovedOnlyOnChange(t *testing.T) {
	var pt PointerTracker

	_, _, ok := pt.Position()
	assert.False(t, ok)

	ev := pt.Observe(InputState{X: 10, Y: 20, Present: true})
	assert.True(t, ev.Moved, "first sample counts as a move")
	assert.Equal(t, 10.0, ev.X)
	assert.Equal(t, 20.0, ev.Y)

	ev = pt.Observe(InputState{X: 10, Y: 20, Present: true})
	assert.False(t, ev.Moved)

	ev = pt.Observe(InputState{X: 11, Y: 20, Present: true})
	assert.True(t, ev.Moved)

	x, y, ok := pt.Position()
	assert.True(t, ok)
	assert.Equal(t, 11, x)
	assert.Equal(t, 20, y)
}

func TestPointerTrackerOutsideWindow(t *testing.T) {
	var pt PointerTracker
	pt.Observe(InputState{X: 5, Y: 5, Present: true})

	ev := pt.Observe(InputState{X: -3, Y: 40, Present: false})
	assert.False(t, ev.Moved)

	x, y, _ := pt.Position()
	assert.Equal(t, 5, x, "position keeps the last in-window sample")
	assert.Equal(t, 5, y)
}

func TestPointerTrackerClick(t *testing.T) {
	var pt PointerTracker
	ev := pt.Observe(InputState{X: 30, Y: 40, JustPressed: true, Present: true})
	assert.True(t, ev.Clicked)
	assert.True(t, ev.Moved)

	ev = pt.Observe(InputState{X: 30, Y: 40, Present: true})
	assert.False(t, ev.Clicked)
}
