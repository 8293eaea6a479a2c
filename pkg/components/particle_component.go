package components

import "github.com/mjohnson139/expo-animations/internal/particle"

// ParticleComponent 一个正在播放的粒子
//
// Particle 是生成器给出的不可变描述（含完整关键帧时间线），
// State 由 MotionSystem 每帧根据播放时间重新计算，渲染系统只读取 State。
type ParticleComponent struct {
	Particle particle.Particle
	State    particle.State
}

// GlowComponent 持续循环的辅助光效（火焰边缘光、高分背景光）
// 不计入粒子数量，也不会触发完成信号
type GlowComponent struct {
	Glow  particle.Glow
	State particle.GlowState
}
