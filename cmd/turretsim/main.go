package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/milk9111/gunturrets/ecs"
	"github.com/milk9111/gunturrets/ecs/entity"
	"github.com/milk9111/gunturrets/ecs/system"
	"github.com/milk9111/gunturrets/logger"
	"github.com/milk9111/gunturrets/prefabs"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	scene    string
	ticks    int
	dt       float64
	toggleAt map[int]bool
	every    int
	events   bool
	watch    bool
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("turretsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	sceneName := fs.String("scene", "scene_default.yaml", "scene prefab to run")
	ticks := fs.Int("ticks", 600, "number of ticks to simulate")
	dt := fs.Float64("dt", 1.0/60.0, "seconds per tick")
	toggleAt := fs.String("toggle-at", "", "comma separated ticks on which every turret toggles idle")
	every := fs.Int("every", 60, "print status every N ticks, 0 for only the last tick")
	events := fs.Bool("events", false, "print turret events as they happen")
	watch := fs.Bool("watch", false, "run in real time and hot reload prefab changes")
	prefabDir := fs.String("prefabs", "prefabs", "directory whose prefab files override the embedded ones")
	logLevel := fs.String("log-level", "warn", "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := logger.Init(logger.Config{Level: *logLevel, Output: stderr})
	prefabs.SetDiskRoot(*prefabDir)

	toggles, err := parseTicks(*toggleAt)
	if err != nil {
		fmt.Fprintf(stderr, "turretsim: -toggle-at: %v\n", err)
		return 2
	}
	if *ticks < 0 || *dt <= 0 || *every < 0 {
		fmt.Fprintln(stderr, "turretsim: -ticks and -every must not be negative and -dt must be positive")
		return 2
	}

	opts := options{
		scene:    *sceneName,
		ticks:    *ticks,
		dt:       *dt,
		toggleAt: toggles,
		every:    *every,
		events:   *events,
		watch:    *watch,
	}
	if err := simulate(opts, stdout); err != nil {
		log.Error("simulation failed", "scene", opts.scene, "error", err)
		return 1
	}
	return 0
}

func simulate(opts options, out io.Writer) error {
	w := ecs.NewWorld()
	scene, err := entity.LoadScene(w, opts.scene)
	if err != nil {
		return err
	}
	scheduler := ecs.NewScheduler(
		system.NewTargetScriptSystem(),
		system.NewTargetPhysicsSystem(),
		system.NewRockingSystem(),
		system.NewTurretControllerSystem(),
		system.NewTurretAimSystem(),
	)

	var watcher *prefabs.Watcher
	if opts.watch {
		root := prefabs.DiskRoot()
		dirs := []string{root}
		if info, err := os.Stat(filepath.Join(root, "scripts")); err == nil && info.IsDir() {
			dirs = append(dirs, filepath.Join(root, "scripts"))
		}
		watcher, err = prefabs.NewWatcher(dirs...)
		if err != nil {
			return fmt.Errorf("watch %s: %w", prefabs.DiskRoot(), err)
		}
		defer watcher.Close()
	}

	for tick := 1; tick <= opts.ticks; tick++ {
		if watcher != nil {
			for _, path := range watcher.Drain() {
				if _, err := scene.Reload(path); err != nil {
					logger.L().Error("reload failed", "path", path, "error", err)
				}
			}
		}
		if opts.toggleAt[tick] {
			scene.ToggleAll()
		}

		scheduler.Update(w, opts.dt)

		if opts.events {
			for _, ev := range w.Events().Drain() {
				fmt.Fprintf(out, "t=%-5d %-16s %v\n", tick, ev.Type, ev.Data)
			}
		}
		if (opts.every > 0 && tick%opts.every == 0) || tick == opts.ticks {
			fmt.Fprintf(out, "-- tick %d (%.2fs)\n%s", tick, w.Elapsed(), scene.Snapshot())
		}
		if opts.watch {
			time.Sleep(time.Duration(opts.dt * float64(time.Second)))
		}
	}
	return nil
}

func parseTicks(s string) (map[int]bool, error) {
	out := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, fmt.Errorf("tick %d must be positive", n)
		}
		out[n] = true
	}
	return out, nil
}
