package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// 每个终端字符单元对应的虚拟像素尺寸
// 字符单元大约是 1:2 的长宽比，这样粒子场的运动在终端里看起来不会被拉伸
const (
	CellWidth  = 8
	CellHeight = 16
)

// TerminalSurface 将粒子场绘制到 tcell 屏幕
//
// 粒子场工作在虚拟像素坐标中（单元数 × CellWidth/CellHeight），
// 每个粒子落在一个字符单元上，连线用 Bresenham 算法逐单元绘制。
// 连线不会覆盖同一帧中已经绘制了粒子的单元。
type TerminalSurface struct {
	screen     tcell.Screen
	background color.NRGBA
	occupied   map[[2]int]bool
}

// NewTerminalSurface 创建终端绘制表面
func NewTerminalSurface(screen tcell.Screen, background color.NRGBA) *TerminalSurface {
	return &TerminalSurface{
		screen:     screen,
		background: background,
		occupied:   make(map[[2]int]bool),
	}
}

// Size 返回虚拟像素尺寸
func (s *TerminalSurface) Size() (int, int) {
	cols, rows := s.screen.Size()
	return cols * CellWidth, rows * CellHeight
}

// CellAt 将虚拟像素坐标转换为字符单元坐标
func CellAt(x, y float64) (int, int) {
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

// Clear 清空屏幕并重置本帧的占用记录
func (s *TerminalSurface) Clear() {
	s.screen.Fill(' ', s.baseStyle())
	clear(s.occupied)
}

// FillCircle 在圆心所在单元绘制一个粒子字符，半径越大字符越粗
func (s *TerminalSurface) FillCircle(x, y, radius float64, clr color.Color) {
	col, row := CellAt(x, y)
	if !s.inside(col, row) {
		return
	}

	glyph := '·'
	switch {
	case radius >= 3:
		glyph = '●'
	case radius >= 2:
		glyph = '•'
	}

	s.screen.SetContent(col, row, glyph, nil, s.baseStyle().Foreground(s.blend(clr)))
	s.occupied[[2]int{col, row}] = true
}

// StrokeLine 逐单元绘制线段
func (s *TerminalSurface) StrokeLine(x0, y0, x1, y1, _ float64, clr color.Color) {
	c0, r0 := CellAt(x0, y0)
	c1, r1 := CellAt(x1, y1)
	style := s.baseStyle().Foreground(s.blend(clr))

	dc := abs(c1 - c0)
	dr := -abs(r1 - r0)
	sc, sr := 1, 1
	if c0 > c1 {
		sc = -1
	}
	if r0 > r1 {
		sr = -1
	}
	errAcc := dc + dr

	for {
		if s.inside(c0, r0) && !s.occupied[[2]int{c0, r0}] {
			s.screen.SetContent(c0, r0, '.', nil, style)
		}
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * errAcc
		if e2 >= dr {
			errAcc += dr
			c0 += sc
		}
		if e2 <= dc {
			errAcc += dc
			r0 += sr
		}
	}
}

// DrawText 在指定单元位置绘制一行文本，超出屏幕的部分被截断
func (s *TerminalSurface) DrawText(col, row int, text string, clr color.Color) {
	style := s.baseStyle().Foreground(s.blend(clr))
	for _, r := range text {
		if s.inside(col, row) {
			s.screen.SetContent(col, row, r, nil, style)
		}
		col++
	}
}

// Show 将本帧内容刷新到终端
func (s *TerminalSurface) Show() {
	s.screen.Show()
}

func (s *TerminalSurface) baseStyle() tcell.Style {
	return tcell.StyleDefault.Background(tcell.NewRGBColor(
		int32(s.background.R), int32(s.background.G), int32(s.background.B)))
}

// blend 终端不支持透明度，按 alpha 与背景色预先混合
func (s *TerminalSurface) blend(clr color.Color) tcell.Color {
	c := color.NRGBAModel.Convert(clr).(color.NRGBA)
	a := float64(c.A) / 255
	mix := func(fg, bg uint8) int32 {
		return int32(math.Round(float64(fg)*a + float64(bg)*(1-a)))
	}
	return tcell.NewRGBColor(mix(c.R, s.background.R), mix(c.G, s.background.G), mix(c.B, s.background.B))
}

func (s *TerminalSurface) inside(col, row int) bool {
	cols, rows := s.screen.Size()
	return col >= 0 && row >= 0 && col < cols && row < rows
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
