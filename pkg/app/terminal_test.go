package app

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/botdash/pkg/render"
)

func newTestTerminal(t *testing.T, cols, rows int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(cols, rows)

	d := newTestDashboard(t, DashboardOptions{Tabs: TerminalTabBar})
	return NewTerminal(d, screen, 60, nil), screen
}

func screenText(screen tcell.SimulationScreen, col, row, n int) string {
	var out []rune
	for i := 0; i < n; i++ {
		r, _, _, _ := screen.GetContent(col+i, row)
		out = append(out, r)
	}
	return string(out)
}

func TestTerminalPopulatesFieldFromScreenSize(t *testing.T) {
	term, screen := newTestTerminal(t, 80, 24)
	defer screen.Fini()

	w, h := term.dash.Field().Bounds()
	assert.Equal(t, float64(80*render.CellWidth), w)
	assert.Equal(t, float64(24*render.CellHeight), h)
	assert.True(t, term.dash.Field().Ready())
}

func TestTerminalKeys(t *testing.T) {
	term, screen := newTestTerminal(t, 80, 24)
	defer screen.Fini()

	assert.False(t, term.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone)))
	assert.Equal(t, 2, term.dash.Pages().ActiveIndex())

	assert.False(t, term.HandleEvent(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)))
	assert.Equal(t, 0, term.dash.Pages().ActiveIndex())

	assert.True(t, term.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(t, term.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestTerminalMouseClickBursts(t *testing.T) {
	term, screen := newTestTerminal(t, 80, 24)
	defer screen.Fini()

	term.HandleEvent(tcell.NewEventMouse(40, 15, tcell.ButtonNone, tcell.ModNone))
	_, before := term.dash.Field().Counts()

	term.HandleEvent(tcell.NewEventMouse(40, 15, tcell.Button1, tcell.ModNone))
	_, transient := term.dash.Field().Counts()
	assert.Equal(t, term.dash.Field().Config().BurstCount, transient-before)

	// 按住不放不会重复爆发，只可能留下一个移动粒子
	term.HandleEvent(tcell.NewEventMouse(41, 15, tcell.Button1, tcell.ModNone))
	_, after := term.dash.Field().Counts()
	assert.LessOrEqual(t, after, transient+1)

	x, y := term.dash.Field().Pointer()
	assert.Equal(t, float64(41*render.CellWidth+render.CellWidth/2), x)
	assert.Equal(t, float64(15*render.CellHeight+render.CellHeight/2), y)
}

func TestTerminalMouseClickOnTab(t *testing.T) {
	term, screen := newTestTerminal(t, 80, 24)
	defer screen.Fini()

	// 第二个标签从第 14 列开始（1 + 12 + 1）
	term.HandleEvent(tcell.NewEventMouse(15, 2, tcell.ButtonNone, tcell.ModNone))
	_, before := term.dash.Field().Counts()

	term.HandleEvent(tcell.NewEventMouse(15, 2, tcell.Button1, tcell.ModNone))
	assert.Equal(t, 1, term.dash.Pages().ActiveIndex())
	_, after := term.dash.Field().Counts()
	assert.Equal(t, term.dash.Field().Config().BurstCount, after-before)
}

func TestTerminalResize(t *testing.T) {
	term, screen := newTestTerminal(t, 80, 24)
	defer screen.Fini()

	screen.SetSize(40, 12)
	term.HandleEvent(tcell.NewEventResize(40, 12))
	w, h := term.dash.Field().Bounds()
	assert.Equal(t, float64(40*render.CellWidth), w)
	assert.Equal(t, float64(12*render.CellHeight), h)
}

func TestTerminalFrameDrawsOverlay(t *testing.T) {
	term, screen := newTestTerminal(t, 80, 24)
	defer screen.Fini()

	term.Frame()

	assert.Equal(t, "Bot Dashboard", screenText(screen, 1, 0, len("Bot Dashboard")))
	badge := "● Connecting"
	assert.Equal(t, badge, screenText(screen, 80-len([]rune(badge))-1, 0, len([]rune(badge))))
	assert.Equal(t, "[1 Overview]", screenText(screen, 1, 2, len("[1 Overview]")))
	assert.Equal(t, "Users", screenText(screen, 2, 4, len("Users")))
}

func TestTerminalRunStopsOnCancel(t *testing.T) {
	term, _ := newTestTerminal(t, 40, 12)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- term.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
