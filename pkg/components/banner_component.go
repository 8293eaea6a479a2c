package components

import (
	"github.com/charmbracelet/harmonica"

	"github.com/mjohnson139/expo-animations/internal/particle"
)

// BannerComponent 动画标题文字（"HIGH SCORE!" / "YOU'RE ON FIRE!"）
//
// 弹出阶段由弹簧驱动（Spring/Scale/Velocity），
// 进入脉动阶段后改用 Banner.Pulse 的确定性循环。
type BannerComponent struct {
	Banner particle.Banner
	State  particle.BannerState

	Spring   harmonica.Spring
	Scale    float64 // 弹簧当前位置
	Velocity float64 // 弹簧当前速度
}
