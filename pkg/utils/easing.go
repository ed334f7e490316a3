package utils

import "math"

// 缓动函数
//
// 输入进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 页面淡入淡出与指针光晕的强度都经过缓动，避免线性变化显得生硬。

// EaseOutCubic 三次方缓出：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-Clamp01(t), 3)
}

// EaseInOutQuad 二次方缓入缓出
func EaseInOutQuad(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// Clamp01 把值限制在 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
