package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/mjohnson139/expo-animations/internal/particle"
	"github.com/mjohnson139/expo-animations/pkg/config"
	"github.com/mjohnson139/expo-animations/pkg/ecs"
	"github.com/mjohnson139/expo-animations/pkg/systems"
)

// panelRows 底部状态栏行数：标题 + 最多 4 个参数 + 帮助
const panelRows = 6

// preview 终端预览的状态（不依赖 tcell，便于测试）
type preview struct {
	catalog *config.Catalog
	defs    []config.AnimationDefinition
	index   int
	seed    int64
	tps     int

	values     *config.Values
	focused    int
	em         *ecs.EntityManager
	generator  *particle.Generator
	controller *systems.PlaybackController
	raster     *raster

	completed int
}

func newPreview(catalog *config.Catalog, seed int64, tps, cols, rows int) *preview {
	p := &preview{
		catalog: catalog,
		defs:    catalog.List(),
		seed:    seed,
		tps:     tps,
		raster:  newRaster(cols, max(rows-panelRows, 0), particle.Opaque(8, 8, 16)),
	}
	p.selectAnimation(0)
	return p
}

// selectAnimation 切换动画：停止当前播放并使用新动画的默认参数
func (p *preview) selectAnimation(index int) {
	if len(p.defs) == 0 {
		return
	}
	index = ((index % len(p.defs)) + len(p.defs)) % len(p.defs)
	if p.controller != nil {
		p.controller.Stop()
	}

	def := p.defs[index]
	p.index = index
	p.focused = 0
	p.values = config.InitialValues(def)
	p.em = ecs.NewEntityManager()
	w, h := p.raster.viewport()
	p.generator = particle.NewGenerator(particle.SourceFor(p.seed), w, h)
	p.controller = systems.NewPlaybackController(p.em, p.generator, def.Kind, p.tps, systems.PlaybackCallbacks{
		OnComplete: func(runID string) {
			p.completed++
			log.Printf("[termpreview] %s 完成 (run %s)", def.ID, runID)
		},
	})
}

func (p *preview) selectByID(id string) error {
	for i, def := range p.defs {
		if def.ID == id {
			p.selectAnimation(i)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", config.ErrAnimationNotFound, id)
}

func (p *preview) current() config.AnimationDefinition {
	return p.defs[p.index]
}

func (p *preview) resize(cols, rows int) {
	p.raster.resize(cols, max(rows-panelRows, 0))
	p.generator.SetViewport(p.raster.viewport())
}

func (p *preview) toggle() {
	if _, err := p.controller.Toggle(p.values); err != nil {
		log.Printf("[termpreview] 播放失败: %v", err)
	}
}

func (p *preview) focus(delta int) {
	n := len(p.values.Definition().Parameters)
	if n == 0 {
		return
	}
	p.focused = ((p.focused+delta)%n + n) % n
}

// adjust 调整当前焦点参数：数值按步长，选项循环切换
func (p *preview) adjust(direction int) bool {
	params := p.values.Definition().Parameters
	if p.focused >= len(params) {
		return false
	}
	spec := params[p.focused]

	var changed bool
	var err error
	if spec.IsNumeric() {
		changed, err = p.values.Step(spec.ID, direction)
	} else {
		changed, err = p.values.Cycle(spec.ID, direction)
	}
	if err != nil {
		log.Printf("[termpreview] 调整参数 %s 失败: %v", spec.ID, err)
		return false
	}
	return changed
}

func (p *preview) tick(dt float64) {
	p.controller.Update(dt)
	p.raster.draw(p.controller.Snapshot())
}

// panelLines 底部状态栏文本，焦点参数以 ">" 标记
func (p *preview) panelLines() []string {
	def := p.current()
	lines := []string{fmt.Sprintf("[%d/%d] %s  %s  %.0fms",
		p.index+1, len(p.defs), def.Title, p.controller.State(), p.controller.Elapsed())}

	for i, spec := range def.Parameters {
		marker := " "
		if i == p.focused {
			marker = ">"
		}
		lines = append(lines, fmt.Sprintf("%s %-14s %s", marker, spec.Label, p.displayValue(spec)))
	}
	lines = append(lines, "space play/stop  tab/1-3 switch  ↑↓ focus  ←→ adjust  q quit")
	return lines
}

func (p *preview) displayValue(spec config.ParameterSpec) string {
	if !spec.IsNumeric() {
		return p.values.Choice(spec.ID)
	}
	decimals := 0
	if s := strconv.FormatFloat(spec.Step, 'f', -1, 64); strings.Contains(s, ".") {
		decimals = len(s) - strings.IndexByte(s, '.') - 1
	}
	return strconv.FormatFloat(p.values.Number(spec.ID), 'f', decimals, 64)
}
