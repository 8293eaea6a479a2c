package systems

import (
	"github.com/mjohnson139/expo-animations/pkg/components"
	"github.com/mjohnson139/expo-animations/pkg/ecs"
)

// MotionSystem 粒子运动系统
//
// 粒子不保存可变的动画状态：每帧根据播放时间对各自的关键帧时间线求值，
// 结果写入 ParticleComponent.State / GlowComponent.State 供渲染读取。
type MotionSystem struct {
	entityManager *ecs.EntityManager
}

// NewMotionSystem 创建粒子运动系统
func NewMotionSystem(em *ecs.EntityManager) *MotionSystem {
	return &MotionSystem{entityManager: em}
}

// Evaluate 计算 runID 的所有粒子与光效在 elapsed（毫秒）时的状态
// 返回完成粒子是否已经结束淡出
func (s *MotionSystem) Evaluate(runID string, elapsed float64) (completed bool) {
	for _, id := range ecs.GetEntitiesWith2[*components.ParticleComponent, *components.RunComponent](s.entityManager) {
		run, _ := ecs.GetComponent[*components.RunComponent](s.entityManager, id)
		if run.RunID != runID {
			continue
		}
		pc, _ := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		pc.State = pc.Particle.StateAt(elapsed)
		// 完成粒子淡出结束即触发，不等位移与颜色轨道
		if pc.Particle.Completion && elapsed >= pc.Particle.FadeEnd() {
			completed = true
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.GlowComponent, *components.RunComponent](s.entityManager) {
		run, _ := ecs.GetComponent[*components.RunComponent](s.entityManager, id)
		if run.RunID != runID {
			continue
		}
		gc, _ := ecs.GetComponent[*components.GlowComponent](s.entityManager, id)
		gc.State = gc.Glow.StateAt(elapsed)
	}

	return completed
}
