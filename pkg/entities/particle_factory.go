package entities

import (
	"github.com/charmbracelet/harmonica"

	"github.com/mjohnson139/expo-animations/internal/particle"
	"github.com/mjohnson139/expo-animations/pkg/components"
	"github.com/mjohnson139/expo-animations/pkg/ecs"
)

// 标题弹出弹簧参数：约 250ms 到达峰值（≈1.2），500ms 内基本稳定
const (
	BannerSpringFrequency = 14.0
	BannerSpringDamping   = 0.45
)

// RunSpec 一次播放需要生成的全部实体
type RunSpec struct {
	RunID     string
	Particles []particle.Particle
	Glows     []particle.Glow
	Banner    *particle.Banner
	TPS       int // 用于弹簧步长
}

// SpawnRun 为一次播放创建实体，返回按创建顺序排列的实体 ID
//
// 粒子实体先于光效与标题创建，保证实体 ID 顺序与粒子下标一致。
func SpawnRun(em *ecs.EntityManager, spec RunSpec) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, len(spec.Particles)+len(spec.Glows)+1)

	for _, p := range spec.Particles {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.RunComponent{RunID: spec.RunID})
		ecs.AddComponent(em, id, &components.ParticleComponent{
			Particle: p,
			State:    p.StateAt(0),
		})
		ids = append(ids, id)
	}

	for _, g := range spec.Glows {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.RunComponent{RunID: spec.RunID})
		ecs.AddComponent(em, id, &components.GlowComponent{
			Glow:  g,
			State: g.StateAt(0),
		})
		ids = append(ids, id)
	}

	if spec.Banner != nil {
		tps := spec.TPS
		if tps <= 0 {
			tps = 60
		}
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.RunComponent{RunID: spec.RunID})
		ecs.AddComponent(em, id, &components.BannerComponent{
			Banner: *spec.Banner,
			State:  spec.Banner.StateAt(0),
			Spring: harmonica.NewSpring(harmonica.FPS(tps), BannerSpringFrequency, BannerSpringDamping),
		})
		ids = append(ids, id)
	}

	return ids
}

// DestroyRun 立即销毁属于 runID 的所有实体，返回销毁数量
func DestroyRun(em *ecs.EntityManager, runID string) int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.RunComponent](em) {
		run, ok := ecs.GetComponent[*components.RunComponent](em, id)
		if !ok || run.RunID != runID {
			continue
		}
		em.DestroyEntityNow(id)
		n++
	}
	return n
}
