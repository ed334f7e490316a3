// Package utils 提供输入与动画相关的通用工具
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState 存储当前帧的指针状态
// 统一处理鼠标和触摸输入
type InputState struct {
	// X, Y 指针位置
	X, Y int
	// JustPressed 本帧刚刚点击/触摸
	JustPressed bool
	// Present 指针是否在窗口内（触摸时总为 true）
	Present bool
}

// GetInputState 读取当前帧的输入状态
// 同时支持鼠标点击和触摸输入，优先检测触摸
func GetInputState(width, height int) InputState {
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return InputState{X: x, Y: y, JustPressed: true, Present: true}
	}
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return InputState{X: x, Y: y, Present: true}
	}

	x, y := ebiten.CursorPosition()
	return InputState{
		X:           x,
		Y:           y,
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Present:     x >= 0 && y >= 0 && x < width && y < height,
	}
}

// PointerEvents 一帧内需要转发给粒子场的指针事件
type PointerEvents struct {
	// Moved 指针移动到了新位置
	Moved bool
	// Clicked 本帧发生了点击
	Clicked bool
	// X, Y 事件位置
	X, Y float64
}

// PointerTracker 把逐帧采样的指针状态转换为离散事件
//
// ebiten 只提供轮询接口，粒子场需要的是"移动"和"点击"事件，
// 因此记录上一帧的位置，只有位置变化时才产生移动事件。
type PointerTracker struct {
	lastX, lastY int
	seen         bool
}

// Observe 处理一帧的输入状态
// 参数：
//   - s: 当前帧的输入状态
//
// 返回：本帧应转发的事件
func (pt *PointerTracker) Observe(s InputState) PointerEvents {
	ev := PointerEvents{X: float64(s.X), Y: float64(s.Y), Clicked: s.JustPressed}
	if !s.Present {
		return ev
	}
	if !pt.seen || s.X != pt.lastX || s.Y != pt.lastY {
		ev.Moved = true
		pt.lastX, pt.lastY = s.X, s.Y
		pt.seen = true
	}
	return ev
}

// Position 返回最后一次记录的指针位置
func (pt *PointerTracker) Position() (x, y int, ok bool) {
	return pt.lastX, pt.lastY, pt.seen
}
