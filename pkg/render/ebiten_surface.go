// Package render 提供粒子场的绘制后端
//
// EbitenSurface 绘制到 Ebitengine 的屏幕图像，TerminalSurface 绘制到 tcell 终端。
// 两者都满足 systems.Surface 接口。
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Background 仪表盘背景色（深紫）
var Background = color.NRGBA{R: 15, G: 10, B: 26, A: 255}

// EbitenSurface 将绘制调用转发到当前帧的 ebiten 屏幕
//
// 每帧在 Draw 中调用 Bind 绑定新的屏幕图像；未绑定时所有调用都是空操作。
type EbitenSurface struct {
	target     *ebiten.Image
	background color.Color
}

// NewEbitenSurface 创建 ebiten 绘制表面
func NewEbitenSurface(background color.Color) *EbitenSurface {
	return &EbitenSurface{background: background}
}

// Bind 绑定本帧的绘制目标
func (s *EbitenSurface) Bind(target *ebiten.Image) {
	s.target = target
}

// Size 返回绑定目标的像素尺寸，未绑定时返回 0
func (s *EbitenSurface) Size() (int, int) {
	if s.target == nil {
		return 0, 0
	}
	b := s.target.Bounds()
	return b.Dx(), b.Dy()
}

// Clear 用背景色填充整个屏幕
func (s *EbitenSurface) Clear() {
	if s.target == nil {
		return
	}
	s.target.Fill(s.background)
}

// FillCircle 绘制实心圆（抗锯齿）
func (s *EbitenSurface) FillCircle(x, y, radius float64, clr color.Color) {
	if s.target == nil {
		return
	}
	vector.DrawFilledCircle(s.target, float32(x), float32(y), float32(radius), clr, true)
}

// StrokeLine 绘制线段（抗锯齿）
func (s *EbitenSurface) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	if s.target == nil {
		return
	}
	vector.StrokeLine(s.target, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), clr, true)
}
