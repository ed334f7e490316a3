package game

import (
	"go.uber.org/zap"
)

// 页面切换动画时长（秒）
const (
	// FadeOutDuration 旧页面淡出时长，结束后切换到新页面
	FadeOutDuration = 0.25
	// FadeInDuration 新页面淡入时长
	FadeInDuration = 0.3
)

// transitionPhase 页面切换阶段
type transitionPhase int

const (
	phaseIdle transitionPhase = iota
	phaseFadingOut
	phaseFadingIn
)

// SceneManager manages which dashboard page is visible and animates switches
// between them: the current page fades out, then the target page fades in.
// Only one page is visible at any given time.
type SceneManager struct {
	scenes  []Scene
	current int
	target  int
	phase   transitionPhase
	elapsed float64
	logger  *zap.Logger
}

// NewSceneManager creates a manager showing the first of the given pages.
func NewSceneManager(logger *zap.Logger, scenes ...Scene) *SceneManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SceneManager{
		scenes: scenes,
		logger: logger.Named("pages"),
	}
}

// Scenes 返回所有页面，按标签顺序
func (sm *SceneManager) Scenes() []Scene {
	return sm.scenes
}

// GetCurrentScene 返回当前可见的页面，没有页面时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	if len(sm.scenes) == 0 {
		return nil
	}
	return sm.scenes[sm.current]
}

// ActiveIndex 返回被选中的标签索引
//
// 切换过程中返回目标页面：标签高亮立即切换，页面内容随动画切换。
func (sm *SceneManager) ActiveIndex() int {
	if sm.phase == phaseFadingOut {
		return sm.target
	}
	return sm.current
}

// SwitchTo 开始切换到指定页面
//
// 返回 false 表示无需切换：索引越界或该页面已经是选中页面。
func (sm *SceneManager) SwitchTo(index int) bool {
	if index < 0 || index >= len(sm.scenes) || index == sm.ActiveIndex() {
		return false
	}

	switch sm.phase {
	case phaseFadingOut:
		// 淡出尚未完成，只需更换目标
		sm.target = index
	default:
		// 从当前不透明度开始淡出，淡入中途切换时不会闪烁
		start := (1 - sm.Alpha()) * FadeOutDuration
		sm.target = index
		sm.phase = phaseFadingOut
		sm.elapsed = start
	}

	sm.logger.Debug("switching page",
		zap.String("from", sm.scenes[sm.current].ID()),
		zap.String("to", sm.scenes[index].ID()))
	return true
}

// SwitchToID 按页面 ID 切换，找不到时返回 false
func (sm *SceneManager) SwitchToID(id string) bool {
	for i, s := range sm.scenes {
		if s.ID() == id {
			return sm.SwitchTo(i)
		}
	}
	return false
}

// JumpTo 立即显示指定页面，不播放动画（用于启动时选择初始页面）
func (sm *SceneManager) JumpTo(id string) bool {
	for i, s := range sm.scenes {
		if s.ID() == id {
			sm.current, sm.target = i, i
			sm.phase = phaseIdle
			sm.elapsed = 0
			return true
		}
	}
	return false
}

// Next 切换到下一个页面（循环）
func (sm *SceneManager) Next() bool {
	if len(sm.scenes) < 2 {
		return false
	}
	return sm.SwitchTo((sm.ActiveIndex() + 1) % len(sm.scenes))
}

// Update advances the page transition by deltaTime seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	switch sm.phase {
	case phaseFadingOut:
		sm.elapsed += deltaTime
		if sm.elapsed >= FadeOutDuration {
			sm.current = sm.target
			sm.phase = phaseFadingIn
			sm.elapsed = 0
		}
	case phaseFadingIn:
		sm.elapsed += deltaTime
		if sm.elapsed >= FadeInDuration {
			sm.phase = phaseIdle
			sm.elapsed = 0
		}
	}
}

// Alpha 返回当前页面内容的不透明度 [0, 1]
func (sm *SceneManager) Alpha() float64 {
	switch sm.phase {
	case phaseFadingOut:
		return clamp01(1 - sm.elapsed/FadeOutDuration)
	case phaseFadingIn:
		return clamp01(sm.elapsed / FadeInDuration)
	default:
		return 1
	}
}

// Transitioning 是否正在播放切换动画
func (sm *SceneManager) Transitioning() bool {
	return sm.phase != phaseIdle
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
