package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	_ "github.com/silbinarywolf/preferdiscretegpu"

	"github.com/mjohnson139/expo-animations/pkg/app"
	"github.com/mjohnson139/expo-animations/pkg/config"
)

func main() {
	configPath := flag.String("config", "", "Path to the YAML app config")
	animation := flag.String("anim", "", "Open this animation directly (board-completed, high-score, on-fire)")
	seed := flag.Int64("seed", 0, "Random seed for particle generation (0 = time based)")
	mute := flag.Bool("mute", false, "Disable sound cues")
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	flag.Parse()

	cfg := config.DefaultAppConfig()
	if *configPath != "" {
		loaded, err := config.LoadAppConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// 命令行参数覆盖配置文件
	if *animation != "" {
		cfg.Playback.Start = *animation
	}
	if *seed != 0 {
		cfg.Playback.Seed = *seed
	}
	cfg.Playback.Mute = cfg.Playback.Mute || *mute
	cfg.Verbose = cfg.Verbose || *verbose
	if cfg.Verbose {
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Playback.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGameWithOptions(gameApp, &ebiten.RunGameOptions{})
	gameApp.SaveOnExit()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
