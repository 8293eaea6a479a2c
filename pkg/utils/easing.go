package utils

import "math"

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值（EaseOutBack 会短暂超过 1）。
//
// 参考：https://easings.net/

// EaseFunc 缓动函数类型
type EaseFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
// 返回值 = 输入值（匀速运动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutQuad 二次方缓出
// 特点：开始较快，结束慢
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInQuad 二次方缓入
// 特点：开始慢，结束较快
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseInOutQuad 二次方缓入缓出
//
//	t < 0.5: f(t) = 2t²
//	t >= 0.5: f(t) = 1 - (-2t + 2)² / 2
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// EaseOutSine 正弦缓出，火焰粒子上升时使用
// 公式：f(t) = sin(t·π/2)
func EaseOutSine(t float64) float64 {
	return math.Sin(t * math.Pi / 2)
}

// EaseOutCubic 三次方缓出
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// EaseOutBack 返回带回弹的缓出函数
// overshoot 越大，超过终点的幅度越大（星星出现时使用 2）
// 公式：f(t) = 1 + (s+1)(t-1)³ + s(t-1)²
func EaseOutBack(overshoot float64) EaseFunc {
	return func(t float64) float64 {
		u := t - 1
		return 1 + (overshoot+1)*u*u*u + overshoot*u*u
	}
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi] 范围内
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
