package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/decker502/botdash/pkg/game"
	"github.com/decker502/botdash/pkg/render"
	"github.com/decker502/botdash/pkg/utils"
)

// TerminalTabBar 终端后端的标签栏布局（虚拟像素，第 2 行，每个标签 12 个单元宽）
var TerminalTabBar = game.TabBar{
	X:        render.CellWidth,
	Y:        2 * render.CellHeight,
	TabWidth: 12 * render.CellWidth,
	Height:   render.CellHeight,
	Gap:      render.CellWidth,
}

// DefaultFrameRate 终端后端的帧率
const DefaultFrameRate = 30

// Terminal 是仪表盘的终端后端
//
// 每个字符单元对应 render.CellWidth × render.CellHeight 个虚拟像素，
// 鼠标与窗口尺寸变化来自 tcell 事件。
type Terminal struct {
	dash    *Dashboard
	screen  tcell.Screen
	surface *render.TerminalSurface
	pointer utils.PointerTracker
	logger  *zap.Logger

	frameRate   int
	buttonsDown bool
	pressed     bool
}

// NewTerminal 创建终端后端；screen 必须已经 Init
func NewTerminal(dash *Dashboard, screen tcell.Screen, frameRate int, logger *zap.Logger) *Terminal {
	if logger == nil {
		logger = zap.NewNop()
	}
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	t := &Terminal{
		dash:      dash,
		screen:    screen,
		surface:   render.NewTerminalSurface(screen, render.Background),
		logger:    logger.Named("terminal"),
		frameRate: frameRate,
	}
	t.resize()
	return t
}

// Run 运行帧循环，直到按下 q/Esc/Ctrl-C 或 ctx 被取消；返回前恢复终端
func (t *Terminal) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer t.screen.Fini()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(t.frameRate))
	defer ticker.Stop()

	t.logger.Info("terminal backend started", zap.Int("fps", t.frameRate))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if t.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			t.Frame()
		}
	}
}

// HandleEvent 处理一个终端事件；返回 true 表示用户请求退出
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
		t.resize()
	case *tcell.EventKey:
		return t.handleKey(ev)
	case *tcell.EventMouse:
		col, row := ev.Position()
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !t.buttonsDown {
			t.pressed = true
		}
		t.buttonsDown = down
		t.pointerAt(col, row)
	}
	return false
}

func (t *Terminal) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyTab:
		t.dash.NextPage()
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q', 'Q':
			return true
		case '1', '2', '3':
			t.dash.SelectPage(int(r - '1'))
		}
	}
	return false
}

// pointerAt 把单元坐标换算为单元中心的虚拟像素坐标并转发
func (t *Terminal) pointerAt(col, row int) {
	w, h := t.surface.Size()
	state := utils.InputState{
		X:           col*render.CellWidth + render.CellWidth/2,
		Y:           row*render.CellHeight + render.CellHeight/2,
		JustPressed: t.pressed,
	}
	state.Present = state.X >= 0 && state.Y >= 0 && state.X < w && state.Y < h
	t.pressed = false
	t.dash.HandlePointer(t.pointer.Observe(state))
}

func (t *Terminal) resize() {
	w, h := t.surface.Size()
	t.dash.Resize(w, h)
	t.logger.Debug("terminal resized", zap.Int("width", w), zap.Int("height", h))
}

// Frame 推进一帧并绘制到终端
func (t *Terminal) Frame() {
	t.dash.Step(1.0 / float64(t.frameRate))

	t.surface.Clear()
	t.dash.Draw(t.surface)
	t.drawOverlay(t.dash.Frame())
	t.surface.Show()
}

func (t *Terminal) drawOverlay(f Frame) {
	cols, _ := t.screen.Size()
	t.surface.DrawText(1, 0, "Bot Dashboard", textColor)
	t.surface.DrawText(cols-len([]rune(f.Badge))-1, 0, f.Badge, StatusColor(f.Status))

	tb := t.dash.TabBar()
	for i, tab := range f.Tabs {
		x, y, _, _ := tb.Rect(i)
		col, row := render.CellAt(x, y)
		label := fmt.Sprintf("[%d %s]", i+1, tab.Title)
		clr := dimTextColor
		if tab.Active {
			clr = textColor
		}
		t.surface.DrawText(col, row, label, clr)
	}

	_, tabRow := render.CellAt(tb.X, tb.Y)
	row := tabRow + 2
	for _, line := range f.Lines {
		t.surface.DrawText(2, row, line.Label, scaleAlpha(dimTextColor, f.Alpha))
		t.surface.DrawText(22, row, line.Value, scaleAlpha(textColor, f.Alpha))
		row++
	}
}
