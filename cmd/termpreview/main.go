// Package main is a terminal preview of the board animations.
//
// It runs the same playback controller as the windowed app and rasterizes
// every frame into terminal cells (one cell = 8×16 px).
//
// Usage:
//
//	go run ./cmd/termpreview [flags]
//
// Flags:
//
//	-anim <id>     Start with a specific animation (board-completed, high-score, on-fire)
//	-seed <n>      Random seed (0 = time based)
//	-tps <n>       Frames per second (default 30)
//	-log <path>    Write logs to a file (terminal output is owned by the preview)
//
// Controls:
//
//	Space         - Play / stop
//	Tab, 1-3      - Switch animation
//	Up/Down       - Focus parameter
//	Left/Right    - Adjust focused parameter
//	Q/Escape      - Quit
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/mjohnson139/expo-animations/internal/particle"
	"github.com/mjohnson139/expo-animations/pkg/config"
)

var (
	animFlag = flag.String("anim", "", "initial animation id")
	seedFlag = flag.Int64("seed", 0, "random seed (0 = time based)")
	tpsFlag  = flag.Int("tps", 30, "frames per second")
	logFlag  = flag.String("log", "", "log file path")
)

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.SetOutput(os.Stderr)
			log.Fatalf("打开日志文件失败: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("创建终端屏幕失败: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化终端失败: %v", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	tps := max(*tpsFlag, 1)
	cols, rows := screen.Size()
	p := newPreview(config.DefaultCatalog(), *seedFlag, tps, cols, rows)
	if *animFlag != "" {
		if err := p.selectByID(*animFlag); err != nil {
			screen.Fini()
			log.SetOutput(os.Stderr)
			log.Fatalf("%v", err)
		}
	}

	events := startInputReader(screen)
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	dt := 1.0 / float64(tps)
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	for {
		select {
		case <-sigs:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				p.resize(screen.Size())
			case *tcell.EventKey:
				if !handleKey(p, ev) {
					return
				}
			}
		case <-ticker.C:
			p.tick(dt)
			render(screen, p)
		}
	}
}

// startInputReader 在独立 goroutine 中读取终端事件
func startInputReader(screen tcell.Screen) <-chan tcell.Event {
	events := make(chan tcell.Event, 16)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()
	return events
}

// handleKey 返回 false 表示退出
func handleKey(p *preview, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		p.selectAnimation(p.index + 1)
	case tcell.KeyBacktab:
		p.selectAnimation(p.index - 1)
	case tcell.KeyUp:
		p.focus(-1)
	case tcell.KeyDown:
		p.focus(1)
	case tcell.KeyLeft:
		p.adjust(-1)
	case tcell.KeyRight:
		p.adjust(1)
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q', 'Q':
			return false
		case ' ':
			p.toggle()
		case '1', '2', '3':
			p.selectAnimation(int(r - '1'))
		}
	}
	return true
}

func render(screen tcell.Screen, p *preview) {
	screen.Clear()
	r := p.raster
	for row := 0; row < r.rows; row++ {
		for col := 0; col < r.cols; col++ {
			c := r.at(col, row)
			style := tcell.StyleDefault.
				Foreground(cellColor(c.fg)).
				Background(cellColor(c.bg)).
				Bold(c.bold)
			screen.SetContent(col, row, c.ch, nil, style)
		}
	}

	panel := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for i, line := range p.panelLines() {
		col := 0
		for _, ch := range line {
			screen.SetContent(col, r.rows+i, ch, nil, panel)
			col++
		}
	}
	screen.Show()
}

func cellColor(t particle.Tint) tcell.Color {
	return tcell.NewRGBColor(int32(t.R), int32(t.G), int32(t.B))
}
