// Package app 提供仪表盘的运行后端
//
// Dashboard 与后端无关；App 把它包装成 ebiten.Game，Terminal 把它接到 tcell 终端。
package app

import (
	"bytes"
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/botdash/pkg/config"
	"github.com/decker502/botdash/pkg/game"
	"github.com/decker502/botdash/pkg/render"
	"github.com/decker502/botdash/pkg/utils"
)

// 窗口布局（像素）
const (
	marginX     = 24
	titleY      = 20
	lineHeight  = 30
	fontSize    = 18
	titleSize   = 24
	labelColumn = 200
)

// DefaultTabBar 窗口后端的标签栏布局
var DefaultTabBar = game.TabBar{X: marginX, Y: 64, TabWidth: 120, Height: 32, Gap: 8}

// pageKeys 按顺序切换到对应页面的按键
var pageKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3}

var (
	textColor     = color.NRGBA{R: 240, G: 230, B: 250, A: 255}
	dimTextColor  = color.NRGBA{R: 180, G: 160, B: 200, A: 255}
	tabColor      = color.NRGBA{R: 255, G: 105, B: 180, A: 60}
	activeTabFill = color.NRGBA{R: 255, G: 105, B: 180, A: 140}
)

// App 是仪表盘的窗口后端，实现 ebiten.Game 接口
type App struct {
	dash    *Dashboard
	surface *render.EbitenSurface
	pointer utils.PointerTracker
	window  config.WindowConfig
	logger  *zap.Logger
	ctx     context.Context

	face      *text.GoTextFace
	titleFace *text.GoTextFace

	pendingWindowSizeReset   bool
	windowSizeResetCountdown int
}

// NewApp 创建窗口后端
func NewApp(dash *Dashboard, window config.WindowConfig, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	return &App{
		dash:      dash,
		surface:   render.NewEbitenSurface(render.Background),
		window:    window,
		logger:    logger.Named("app"),
		face:      &text.GoTextFace{Source: src, Size: fontSize},
		titleFace: &text.GoTextFace{Source: src, Size: titleSize},
	}, nil
}

// Update 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if a.ctx != nil && a.ctx.Err() != nil {
		return ebiten.Termination
	}

	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.window.Width, a.window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}
	a.handleKeys()

	w, h := a.surface.Size()
	a.dash.HandlePointer(a.pointer.Observe(utils.GetInputState(w, h)))

	a.dash.Step(1.0 / float64(ebiten.TPS()))
	return nil
}

func (a *App) toggleFullscreen() {
	if !ebiten.IsFullscreen() {
		ebiten.SetFullscreen(true)
		return
	}
	ebiten.SetFullscreen(false)
	if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
		ebiten.RestoreWindow()
	}
	a.pendingWindowSizeReset = true
	a.windowSizeResetCountdown = 3
	a.logger.Debug("exit fullscreen, resetting window size in 3 frames")
}

func (a *App) handleKeys() {
	for i, k := range pageKeys {
		if inpututil.IsKeyJustPressed(k) {
			a.dash.SelectPage(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		a.dash.NextPage()
	}
}

// Draw 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.surface.Bind(screen)
	if !a.dash.Field().Ready() {
		screen.Fill(render.Background)
	}
	a.dash.Draw(a.surface)
	a.dash.DrawGlow(a.surface)
	a.drawOverlay(screen, a.dash.Frame())
}

func (a *App) drawOverlay(screen *ebiten.Image, f Frame) {
	drawText(screen, a.titleFace, "Bot Dashboard", marginX, titleY, textColor, 1)

	w := screen.Bounds().Dx()
	badgeWidth, _ := text.Measure(f.Badge, a.face, 0)
	drawText(screen, a.face, f.Badge, float64(w)-marginX-badgeWidth, titleY+4, StatusColor(f.Status), 1)

	tb := a.dash.TabBar()
	for i, tab := range f.Tabs {
		x, y, tw, th := tb.Rect(i)
		fill := tabColor
		if tab.Active {
			fill = activeTabFill
		}
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(tw), float32(th), fill, true)
		label := fmt.Sprintf("%d %s", i+1, tab.Title)
		lw, lh := text.Measure(label, a.face, 0)
		drawText(screen, a.face, label, x+(tw-lw)/2, y+(th-lh)/2, textColor, 1)
	}

	y := tb.Y + tb.Height + 24
	for _, line := range f.Lines {
		drawText(screen, a.face, line.Label, marginX, y, dimTextColor, f.Alpha)
		drawText(screen, a.face, line.Value, marginX+labelColumn, y, textColor, f.Alpha)
		y += lineHeight
	}
}

func drawText(dst *ebiten.Image, face text.Face, s string, x, y float64, clr color.Color, alpha float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(dst, s, face, op)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时用背景色填充 letterbox 区域
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(render.Background)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑屏幕尺寸跟随窗口尺寸，尺寸变化时粒子场重新填充
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.dash.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run 打开窗口并运行帧循环，直到窗口关闭或 ctx 被取消
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx
	ebiten.SetWindowSize(a.window.Width, a.window.Height)
	ebiten.SetWindowTitle(a.window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	a.logger.Info("window backend started",
		zap.Int("width", a.window.Width), zap.Int("height", a.window.Height))
	return ebiten.RunGame(a)
}
