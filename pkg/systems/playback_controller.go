package systems

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/mjohnson139/expo-animations/internal/particle"
	"github.com/mjohnson139/expo-animations/pkg/components"
	"github.com/mjohnson139/expo-animations/pkg/config"
	"github.com/mjohnson139/expo-animations/pkg/ecs"
	"github.com/mjohnson139/expo-animations/pkg/entities"
)

// ErrAlreadyPlaying 播放中再次 Start（不支持重叠播放）
var ErrAlreadyPlaying = errors.New("animation already playing")

// PlaybackState 播放状态
type PlaybackState int

const (
	StateStopped PlaybackState = iota
	StatePlaying
)

func (s PlaybackState) String() string {
	if s == StatePlaying {
		return "PLAYING"
	}
	return "STOPPED"
}

// RunInfo 一次播放的摘要，在 OnStart 回调中传出
type RunInfo struct {
	RunID         string
	Kind          config.AnimationKind
	Values        *config.Values // 播放开始时的参数快照
	ParticleCount int
}

// Frame 某一时刻的渲染描述（按粒子下标排序）
type Frame struct {
	RunID     string
	Elapsed   float64 // 毫秒
	Particles []particle.State
	Glows     []particle.GlowState
	Banner    *particle.BannerState
}

// PlaybackCallbacks 播放控制器回调集合（均可为 nil）
type PlaybackCallbacks struct {
	OnStateChange func(state PlaybackState)
	OnStart       func(info RunInfo)
	OnComplete    func(runID string)
}

// PlaybackController 播放控制器
//
// 状态机：STOPPED --Start--> PLAYING --(完成信号 | Stop)--> STOPPED
//
// 职责：
//   - Start 时快照参数、生成粒子并创建本次播放的实体
//   - 每帧推进播放时间，由 MotionSystem 求值所有粒子
//   - 完成粒子淡出结束时触发一次完成信号并回到 STOPPED
//   - Stop 立即销毁所有实体，之后旧 RunID 的完成信号被忽略
//
// 粒子数为 0 时（例如 edge-only）没有完成粒子，播放会一直保持 PLAYING 直到手动停止。
type PlaybackController struct {
	entityManager *ecs.EntityManager
	generator     *particle.Generator
	motion        *MotionSystem
	banners       *BannerSystem
	kind          config.AnimationKind
	tps           int

	state   PlaybackState
	runID   string
	elapsed float64 // 毫秒
	count   int

	callbacks PlaybackCallbacks
}

// NewPlaybackController 创建播放控制器
func NewPlaybackController(em *ecs.EntityManager, gen *particle.Generator, kind config.AnimationKind, tps int, callbacks PlaybackCallbacks) *PlaybackController {
	return &PlaybackController{
		entityManager: em,
		generator:     gen,
		motion:        NewMotionSystem(em),
		banners:       NewBannerSystem(em),
		kind:          kind,
		tps:           tps,
		callbacks:     callbacks,
	}
}

// State 当前状态
func (c *PlaybackController) State() PlaybackState {
	return c.state
}

// IsPlaying 是否正在播放
func (c *PlaybackController) IsPlaying() bool {
	return c.state == StatePlaying
}

// RunID 当前播放的 ID，停止时为空
func (c *PlaybackController) RunID() string {
	return c.runID
}

// Elapsed 当前播放已进行的时间（毫秒）
func (c *PlaybackController) Elapsed() float64 {
	return c.elapsed
}

// ParticleCount 当前播放的粒子数量
func (c *PlaybackController) ParticleCount() int {
	return c.count
}

// Kind 控制器对应的动画类别
func (c *PlaybackController) Kind() config.AnimationKind {
	return c.kind
}

// Start 开始一次播放，返回新的 RunID
func (c *PlaybackController) Start(values *config.Values) (string, error) {
	if c.state == StatePlaying {
		return "", fmt.Errorf("start %s: %w (run %s)", c.kind, ErrAlreadyPlaying, c.runID)
	}
	if values == nil {
		return "", fmt.Errorf("start %s: nil parameter values", c.kind)
	}

	snapshot := values.Clone()
	count := particle.CountFor(c.kind, snapshot)
	particles := c.generator.Generate(c.kind, snapshot, count)

	spec := entities.RunSpec{
		RunID:     uuid.NewString(),
		Particles: particles,
		Glows:     c.generator.Glows(c.kind, snapshot),
		TPS:       c.tps,
	}
	if banner, ok := c.generator.Banner(c.kind, snapshot); ok {
		spec.Banner = &banner
	}
	entities.SpawnRun(c.entityManager, spec)

	c.runID = spec.RunID
	c.elapsed = 0
	c.count = count
	c.setState(StatePlaying)

	log.Printf("[Playback] 开始播放 %s run=%s 粒子=%d 光效=%d", c.kind, c.runID, count, len(spec.Glows))

	if c.callbacks.OnStart != nil {
		c.callbacks.OnStart(RunInfo{RunID: c.runID, Kind: c.kind, Values: snapshot, ParticleCount: count})
	}

	c.motion.Evaluate(c.runID, 0)
	c.banners.Update(c.runID, 0)
	return c.runID, nil
}

// Stop 立即停止播放（硬取消，不等待淡出）
// 未在播放时返回 false
func (c *PlaybackController) Stop() bool {
	if c.state != StatePlaying {
		return false
	}
	runID := c.runID
	n := c.teardown()
	log.Printf("[Playback] 手动停止 run=%s，销毁 %d 个实体", runID, n)
	return true
}

// Toggle 播放/停止切换，返回切换后的状态
func (c *PlaybackController) Toggle(values *config.Values) (PlaybackState, error) {
	if c.Stop() {
		return c.state, nil
	}
	_, err := c.Start(values)
	return c.state, err
}

// Update 推进播放时间
// 参数：
//   - dt: 时间增量（秒）
func (c *PlaybackController) Update(dt float64) {
	if c.state != StatePlaying {
		return
	}

	c.elapsed += dt * 1000
	runID := c.runID
	completed := c.motion.Evaluate(runID, c.elapsed)
	c.banners.Update(runID, c.elapsed)

	if completed {
		c.SignalCompletion(runID)
	}
}

// SignalCompletion 投递完成信号
// 只有当前播放的 RunID 有效；已停止或过期的 RunID 被忽略并返回 false
func (c *PlaybackController) SignalCompletion(runID string) bool {
	if c.state != StatePlaying || runID != c.runID {
		log.Printf("[Playback] 忽略过期的完成信号 run=%s", runID)
		return false
	}

	log.Printf("[Playback] 播放完成 run=%s (%.0fms)", runID, c.elapsed)
	if c.callbacks.OnComplete != nil {
		c.callbacks.OnComplete(runID)
	}
	c.teardown()
	return true
}

// Snapshot 返回当前帧的渲染描述；停止时返回空帧
func (c *PlaybackController) Snapshot() Frame {
	frame := Frame{RunID: c.runID, Elapsed: c.elapsed}
	if c.state != StatePlaying {
		return frame
	}

	em := c.entityManager
	for _, id := range ecs.GetEntitiesWith2[*components.ParticleComponent, *components.RunComponent](em) {
		if run, _ := ecs.GetComponent[*components.RunComponent](em, id); run.RunID != c.runID {
			continue
		}
		pc, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
		frame.Particles = append(frame.Particles, pc.State)
	}
	for _, id := range ecs.GetEntitiesWith2[*components.GlowComponent, *components.RunComponent](em) {
		if run, _ := ecs.GetComponent[*components.RunComponent](em, id); run.RunID != c.runID {
			continue
		}
		gc, _ := ecs.GetComponent[*components.GlowComponent](em, id)
		frame.Glows = append(frame.Glows, gc.State)
	}
	for _, id := range ecs.GetEntitiesWith2[*components.BannerComponent, *components.RunComponent](em) {
		if run, _ := ecs.GetComponent[*components.RunComponent](em, id); run.RunID != c.runID {
			continue
		}
		bc, _ := ecs.GetComponent[*components.BannerComponent](em, id)
		state := bc.State
		frame.Banner = &state
	}
	return frame
}

// teardown 销毁当前播放的实体并回到 STOPPED
func (c *PlaybackController) teardown() int {
	n := entities.DestroyRun(c.entityManager, c.runID)
	c.runID = ""
	c.count = 0
	c.setState(StateStopped)
	return n
}

func (c *PlaybackController) setState(state PlaybackState) {
	if c.state == state {
		return
	}
	c.state = state
	if c.callbacks.OnStateChange != nil {
		c.callbacks.OnStateChange(state)
	}
}
