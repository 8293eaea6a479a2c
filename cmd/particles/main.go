// Package main dumps a particle run as YAML for inspection and diffing.
//
// It builds the same particles the preview would play and evaluates them at
// a single point in time, without opening a window.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	-anim <id>         Animation to dump (default board-completed)
//	-seed <n>          Random seed (default 1, 0 = time based)
//	-at <ms>           Run time to evaluate at, in milliseconds
//	-set id=value      Override a parameter (repeatable)
//	-width, -height    Viewport size in pixels
//	-verbose           Enable logging
//
// Example:
//
//	go run ./cmd/particles -anim high-score -set intensity=8 -set position=top -at 500
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mjohnson139/expo-animations/internal/particle"
	"github.com/mjohnson139/expo-animations/pkg/config"
)

var errBadOverride = errors.New("override must be id=value")

var (
	animFlag    = flag.String("anim", "board-completed", "animation id")
	seedFlag    = flag.Int64("seed", 1, "random seed (0 = time based)")
	atFlag      = flag.Float64("at", 0, "run time in milliseconds")
	widthFlag   = flag.Float64("width", 800, "viewport width")
	heightFlag  = flag.Float64("height", 600, "viewport height")
	verboseFlag = flag.Bool("verbose", false, "enable verbose logging")
)

// override 一条 -set 参数
type override struct {
	id, value string
}

type dumpParticle struct {
	Index      int     `yaml:"index"`
	Delay      float64 `yaml:"delay"`
	Fade       float64 `yaml:"fade"` // 不透明度归零的时间
	End        float64 `yaml:"end"`
	Completion bool    `yaml:"completion,omitempty"`
	Shape      string  `yaml:"shape"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Scale      float64 `yaml:"scale"`
	Opacity    float64 `yaml:"opacity"`
	Rotation   float64 `yaml:"rotation,omitempty"`
	Color      string  `yaml:"color"`
	Visible    bool    `yaml:"visible"`
	Done       bool    `yaml:"done"`
}

type dumpGlow struct {
	Name    string  `yaml:"name"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Radius  float64 `yaml:"radius"`
	Color   string  `yaml:"color"`
	Opacity float64 `yaml:"opacity"`
}

type dumpBanner struct {
	Text    string  `yaml:"text"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Scale   float64 `yaml:"scale"`
	Opacity float64 `yaml:"opacity"`
	Color   string  `yaml:"color"`
}

// dump 输出文档
type dump struct {
	Animation  string         `yaml:"animation"`
	Kind       string         `yaml:"kind"`
	Seed       int64          `yaml:"seed"`
	At         float64        `yaml:"at"`
	Count      int            `yaml:"count"`
	Completion int            `yaml:"completion"` // -1 表示没有完成粒子
	Params     map[string]any `yaml:"params"`
	Particles  []dumpParticle `yaml:"particles"`
	Glows      []dumpGlow     `yaml:"glows,omitempty"`
	Banner     *dumpBanner    `yaml:"banner,omitempty"`
}

func main() {
	var overrides []override
	flag.Func("set", "override a parameter, id=value (repeatable)", func(s string) error {
		o, err := parseSet(s)
		if err != nil {
			return err
		}
		overrides = append(overrides, o)
		return nil
	})
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	d, err := buildDump(config.DefaultCatalog(), *animFlag, *seedFlag, *atFlag, *widthFlag, *heightFlag, overrides)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	enc.Close()
}

func parseSet(s string) (override, error) {
	id, value, ok := strings.Cut(s, "=")
	id, value = strings.TrimSpace(id), strings.TrimSpace(value)
	if !ok || id == "" || value == "" {
		return override{}, fmt.Errorf("%w: %q", errBadOverride, s)
	}
	return override{id: id, value: value}, nil
}

// applyOverrides 按参数类型写入覆盖值，数值会被限制并量化
func applyOverrides(values *config.Values, overrides []override) error {
	def := values.Definition()
	for _, o := range overrides {
		spec, ok := def.Parameter(o.id)
		if !ok {
			return fmt.Errorf("%w: %q", config.ErrUnknownParameter, o.id)
		}
		if spec.IsNumeric() {
			n, err := strconv.ParseFloat(o.value, 64)
			if err != nil {
				return fmt.Errorf("parameter %s: %w", o.id, err)
			}
			if _, err := values.SetNumber(o.id, n); err != nil {
				return err
			}
			continue
		}
		if _, err := values.SetChoice(o.id, o.value); err != nil {
			return err
		}
	}
	return nil
}

func buildDump(catalog *config.Catalog, id string, seed int64, at, width, height float64, overrides []override) (*dump, error) {
	def, err := catalog.Get(id)
	if err != nil {
		return nil, err
	}
	values := config.InitialValues(def)
	if err := applyOverrides(values, overrides); err != nil {
		return nil, err
	}

	gen := particle.NewGenerator(particle.SourceFor(seed), width, height)
	particles := gen.Generate(def.Kind, values, particle.CountFor(def.Kind, values))
	log.Printf("[particles] %s: %d 个粒子", def.ID, len(particles))

	d := &dump{
		Animation:  def.ID,
		Kind:       string(def.Kind),
		Seed:       seed,
		At:         at,
		Count:      len(particles),
		Completion: particle.CompletionIndex(particles),
		Params:     values.Map(),
		Particles:  make([]dumpParticle, 0, len(particles)),
	}

	for _, p := range particles {
		s := p.StateAt(at)
		d.Particles = append(d.Particles, dumpParticle{
			Index:      p.Index,
			Delay:      round2(p.SpawnDelay),
			Fade:       round2(p.FadeEnd()),
			End:        round2(p.EndTime()),
			Completion: p.Completion,
			Shape:      s.Shape.String(),
			X:          round2(s.Position.X),
			Y:          round2(s.Position.Y),
			Scale:      round2(s.Scale),
			Opacity:    round2(s.Opacity),
			Rotation:   round2(s.Rotation),
			Color:      s.Color.String(),
			Visible:    s.Visible,
			Done:       s.Done,
		})
	}

	for _, g := range gen.Glows(def.Kind, values) {
		s := g.StateAt(at)
		d.Glows = append(d.Glows, dumpGlow{
			Name:    s.Name,
			X:       round2(s.Position.X),
			Y:       round2(s.Position.Y),
			Radius:  round2(s.Radius),
			Color:   s.Color.String(),
			Opacity: round2(s.Opacity),
		})
	}

	if b, ok := gen.Banner(def.Kind, values); ok {
		s := b.StateAt(at)
		d.Banner = &dumpBanner{
			Text:    s.Text,
			X:       round2(s.Position.X),
			Y:       round2(s.Position.Y),
			Scale:   round2(s.Scale),
			Opacity: round2(s.Opacity),
			Color:   s.Color.String(),
		}
	}
	return d, nil
}

func round2(v float64) float64 {
	n, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return n
}
