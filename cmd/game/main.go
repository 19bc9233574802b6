package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/pogo/internal/application/game"
	"github.com/younwookim/pogo/internal/application/replay"
	"github.com/younwookim/pogo/internal/application/scene/playing"
	"github.com/younwookim/pogo/internal/application/system"
	"github.com/younwookim/pogo/internal/infrastructure/config"
	"github.com/younwookim/pogo/internal/infrastructure/level"
)

//go:embed configs
var configFS embed.FS

func main() {
	// Parse command line flags
	configDir := flag.String("config", "", "Read configs from this directory instead of the embedded copy")
	levelName := flag.String("level", "demo", "Level to play (file name under levels/, .json or .tmx)")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded input file")
	headless := flag.Bool("headless", false, "Run the replay without a window and print the outcome")
	maxFrames := flag.Int("max-frames", 0, "Stop a headless replay after this many frames (0 = whole recording)")
	watch := flag.Bool("watch", false, "Reload the level when its file changes (requires -config)")
	flag.Parse()

	// Load configurations from disk or the embedded filesystem
	var loader *config.Loader
	if *configDir != "" {
		loader = config.NewLoader(*configDir)
	} else {
		fsys, err := fs.Sub(configFS, "configs")
		if err != nil {
			log.Fatalf("Failed to get config subfs: %v", err)
		}
		loader = config.NewFSLoader(fsys, "configs")
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	settings := cfg.Settings

	levels := level.NewLoader(loader.FS(), "levels", loader, settings.World)
	load := levels.Func(*levelName)

	var replayData *replay.ReplayData
	if *replayFlag != "" {
		replayData, err = replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		if replayData.Level != "" && replayData.Level != *levelName {
			log.Printf("Replay was recorded on level %q, playing it on %q", replayData.Level, *levelName)
		}
	}

	if *headless {
		if replayData == nil {
			log.Fatalf("-headless requires -replay")
		}
		result, err := RunReplay(context.Background(), settings, load, replayData, *maxFrames)
		if err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		fmt.Println(result)
		return
	}

	// Input sources: a replay replaces live input
	var sources []system.InputSource
	if replayData != nil {
		sources = append(sources, replay.NewReplayer(*replayData))
		log.Printf("Replaying %s (%d frames)", *replayFlag, len(replayData.Frames))
	} else {
		sources = append(sources, system.KeyboardSource{}, system.NewGamepadSource(settings.Input.Deadzone))
	}

	scene := playing.New(cfg, *levelName, load, *recordFlag, sources...)

	if *watch {
		if *configDir == "" {
			log.Fatalf("-watch requires -config")
		}
		watcher, err := level.NewWatcher(filepath.Join(*configDir, "levels"), level.DefaultDebounce)
		if err != nil {
			log.Fatalf("Failed to watch levels: %v", err)
		}
		defer func() { _ = watcher.Close() }()
		go func() {
			for err := range watcher.Errors {
				log.Printf("Level watcher error: %v", err)
			}
		}()
		scene.WatchReloads(watcher.Events)
		log.Printf("Watching %s for level changes", filepath.Join(*configDir, "levels"))
	}

	g := game.New(scene, settings.Display.ScreenWidth, settings.Display.ScreenHeight)
	g.SetDT(1.0 / float64(settings.Display.Framerate))
	defer g.Close()

	// Set up ebiten
	ebiten.SetWindowSize(settings.Display.ScreenWidth*settings.Display.Scale,
		settings.Display.ScreenHeight*settings.Display.Scale)
	ebiten.SetWindowTitle("Pogo")
	ebiten.SetTPS(settings.Display.Framerate)

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		log.Printf("Game stopped: %v", err)
	}
}
