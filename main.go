package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gunturrets/logger"
	"github.com/milk9111/gunturrets/prefabs"
)

func main() {
	sceneName := flag.String("scene", "scene_default.yaml", "scene prefab to load")
	debug := flag.Bool("debug", true, "draw aim rays and limit arcs")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	prefabDir := flag.String("prefabs", "prefabs", "directory whose prefab files override the embedded ones")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	log := logger.Init(logger.Config{Level: *logLevel})
	prefabs.SetDiskRoot(*prefabDir)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("gunturrets")

	game, err := NewGame(*sceneName, *debug)
	if err != nil {
		log.Error("failed to start", "scene", *sceneName, "error", err)
		os.Exit(1)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Error("game stopped", "error", err)
		os.Exit(1)
	}
}
