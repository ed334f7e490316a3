package app

import (
	"image/color"

	"go.uber.org/zap"

	"github.com/decker502/botdash/pkg/config"
	"github.com/decker502/botdash/pkg/game"
	"github.com/decker502/botdash/pkg/scenes"
	"github.com/decker502/botdash/pkg/stats"
	"github.com/decker502/botdash/pkg/systems"
	"github.com/decker502/botdash/pkg/utils"
)

// StatsSource 提供统计快照（通常是 *stats.Poller）
type StatsSource interface {
	Snapshot() stats.Snapshot
}

// 指针光晕参数
const (
	glowRadius = 140.0
	glowRings  = 12
	glowAlpha  = 0.4
)

// GlowColor 指针光晕颜色（与连线同色）
var GlowColor = systems.ConnectionColor

// Tab 标签栏上的一个标签
type Tab struct {
	Title  string
	Active bool
}

// Frame 一帧需要绘制的文本内容，与后端无关
type Frame struct {
	Badge  string
	Status stats.Status
	Tabs   []Tab
	Lines  []game.Line
	// Alpha 页面内容的不透明度（已缓动）
	Alpha float64
}

// Dashboard 把粒子场、页面和统计数据组合在一起
//
// 后端（ebiten 窗口或终端）负责采集输入并调用 HandlePointer/Resize/Step，
// 然后用 Draw/DrawGlow/Frame 的结果绘制画面。所有方法必须在帧循环所在的
// goroutine 中调用。
type Dashboard struct {
	field   *systems.ParticleSystem
	painter *systems.RenderSystem
	pages   *game.SceneManager
	tabs    game.TabBar
	source  StatsSource
	updates <-chan *config.Config
	logger  *zap.Logger

	width, height int
	pointerSeen   bool
}

// DashboardOptions 创建 Dashboard 的参数
type DashboardOptions struct {
	Field  *systems.ParticleSystem
	Source StatsSource
	// Updates 配置热更新通道，可以为 nil
	Updates <-chan *config.Config
	// Tabs 标签栏布局，Count 会被设置为页面数量
	Tabs game.TabBar
	// Page 初始页面 ID，为空时显示第一个页面
	Page   string
	Logger *zap.Logger
}

// NewDashboard 创建仪表盘
func NewDashboard(opts DashboardOptions) *Dashboard {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	pages := game.NewSceneManager(logger, scenes.All()...)
	if opts.Page != "" && !pages.JumpTo(opts.Page) {
		logger.Warn("unknown page, showing the first one", zap.String("page", opts.Page))
	}

	tabs := opts.Tabs
	tabs.Count = len(pages.Scenes())

	return &Dashboard{
		field:   opts.Field,
		painter: systems.NewRenderSystem(opts.Field),
		pages:   pages,
		tabs:    tabs,
		source:  opts.Source,
		updates: opts.Updates,
		logger:  logger.Named("dashboard"),
	}
}

// Resize 视口尺寸变化时重新填充粒子场；尺寸未变时不做任何事
func (d *Dashboard) Resize(width, height int) {
	if width == d.width && height == d.height {
		return
	}
	d.width, d.height = width, height
	d.field.Resize(width, height)
}

// HandlePointer 转发一帧的指针事件
//
// 每次点击都在指针处产生粒子爆发；点中标签时同时切换页面。
func (d *Dashboard) HandlePointer(ev utils.PointerEvents) {
	if ev.Moved {
		d.pointerSeen = true
		d.field.PointerMove(ev.X, ev.Y)
	}
	if !ev.Clicked {
		return
	}
	if i, ok := d.tabs.HitTest(ev.X, ev.Y); ok {
		d.pages.SwitchTo(i)
	}
	d.field.Click(ev.X, ev.Y)
}

// SelectPage 按标签索引切换页面（键盘 1–3）
func (d *Dashboard) SelectPage(index int) bool {
	return d.pages.SwitchTo(index)
}

// NextPage 切换到下一个页面（Tab 键）
func (d *Dashboard) NextPage() bool {
	return d.pages.Next()
}

// ApplyConfig 应用新的配置：粒子场以新参数重新填充
func (d *Dashboard) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	d.field.Reconfigure(cfg.Field)
	d.logger.Debug("field reconfigured", zap.Int("particles", len(d.field.Particles())))
}

// Step 推进一帧：先应用待处理的配置，再推进粒子场和页面动画
func (d *Dashboard) Step(deltaTime float64) {
	select {
	case cfg := <-d.updates:
		d.ApplyConfig(cfg)
	default:
	}
	d.field.Tick()
	d.pages.Update(deltaTime)
}

// Draw 绘制粒子场
func (d *Dashboard) Draw(s systems.Surface) {
	d.painter.Draw(s)
}

// DrawGlow 在指针位置绘制柔和的光晕；指针从未移动过时不绘制
func (d *Dashboard) DrawGlow(s systems.Surface) {
	if !d.pointerSeen || !d.field.Ready() {
		return
	}
	x, y := d.field.Pointer()
	// 由外向内叠加半透明圆盘，中心最亮
	for i := 0; i < glowRings; i++ {
		radius := glowRadius * (1 - float64(i)/glowRings)
		alpha := glowAlpha * utils.EaseOutCubic(float64(i+1)/glowRings) / glowRings
		s.FillCircle(x, y, radius, scaleAlpha(GlowColor, alpha))
	}
}

// Frame 返回本帧的文本内容
func (d *Dashboard) Frame() Frame {
	var snap stats.Snapshot
	if d.source != nil {
		snap = d.source.Snapshot()
	}
	view := stats.NewView(snap)

	f := Frame{
		Badge:  view.Badge,
		Status: view.Status,
		Alpha:  utils.EaseInOutQuad(d.pages.Alpha()),
	}
	active := d.pages.ActiveIndex()
	for i, p := range d.pages.Scenes() {
		f.Tabs = append(f.Tabs, Tab{Title: p.Title(), Active: i == active})
	}
	if cur := d.pages.GetCurrentScene(); cur != nil {
		f.Lines = cur.Lines(view)
	}
	return f
}

// TabBar 返回标签栏布局
func (d *Dashboard) TabBar() game.TabBar {
	return d.tabs
}

// Field 返回粒子场
func (d *Dashboard) Field() *systems.ParticleSystem {
	return d.field
}

// Pages 返回页面管理器
func (d *Dashboard) Pages() *game.SceneManager {
	return d.pages
}

// StatusColor 状态徽标颜色
func StatusColor(s stats.Status) color.NRGBA {
	switch s {
	case stats.StatusOnline:
		return color.NRGBA{R: 80, G: 220, B: 120, A: 255}
	case stats.StatusOffline:
		return color.NRGBA{R: 240, G: 80, B: 90, A: 255}
	default:
		return color.NRGBA{R: 240, G: 200, B: 80, A: 255}
	}
}

func scaleAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(utils.Clamp01(alpha)*255 + 0.5)
	return c
}
