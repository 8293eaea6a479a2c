package systems

import (
	"github.com/mjohnson139/expo-animations/pkg/components"
	"github.com/mjohnson139/expo-animations/pkg/ecs"
)

// BannerSystem 标题文字系统
// 弹出阶段每个逻辑帧推进一次弹簧，之后使用确定性的脉动循环
type BannerSystem struct {
	entityManager *ecs.EntityManager
}

// NewBannerSystem 创建标题文字系统
func NewBannerSystem(em *ecs.EntityManager) *BannerSystem {
	return &BannerSystem{entityManager: em}
}

// Update 更新 runID 的标题状态，elapsed 为播放时间（毫秒）
func (s *BannerSystem) Update(runID string, elapsed float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.BannerComponent, *components.RunComponent](s.entityManager) {
		run, _ := ecs.GetComponent[*components.RunComponent](s.entityManager, id)
		if run.RunID != runID {
			continue
		}
		bc, _ := ecs.GetComponent[*components.BannerComponent](s.entityManager, id)

		state := bc.Banner.StateAt(elapsed)
		pulse := bc.Banner.Pulse
		if pulse.Period <= 0 || elapsed < pulse.Start {
			bc.Scale, bc.Velocity = bc.Spring.Update(bc.Scale, bc.Velocity, 1.0)
			state.Scale = bc.Scale
		}
		bc.State = state
	}
}
