package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/gunturrets/ecs"
	"github.com/milk9111/gunturrets/ecs/component"
	"github.com/milk9111/gunturrets/ecs/entity"
	"github.com/milk9111/gunturrets/ecs/render"
	"github.com/milk9111/gunturrets/ecs/system"
	"github.com/milk9111/gunturrets/logger"
	"github.com/milk9111/gunturrets/prefabs"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	viewScale = 7.0
	// messageFrames is how long a HUD notice stays up.
	messageFrames = 120
)

type Game struct {
	frames int

	world     *ecs.World
	scheduler *ecs.Scheduler
	scene     *entity.Scene

	drawer  *render.Drawer
	gizmos  *system.GizmoSystem
	debug   bool
	watcher *prefabs.Watcher

	clipboardReady bool
	message        string
	messageUntil   int

	top  render.View
	side render.View
}

func NewGame(sceneName string, debug bool) (*Game, error) {
	w := ecs.NewWorld()
	scene, err := entity.LoadScene(w, sceneName)
	if err != nil {
		return nil, err
	}

	g := &Game{
		world:  w,
		scene:  scene,
		drawer: render.NewDrawer(),
		debug:  debug,
		top:    render.View{Plane: render.PlaneTop, CenterX: baseWidth / 4, CenterY: baseHeight / 2, Scale: viewScale},
		side:   render.View{Plane: render.PlaneSide, CenterX: baseWidth * 3 / 4, CenterY: baseHeight * 2 / 3, Scale: viewScale},
	}
	g.gizmos = system.NewGizmoSystem(nil)
	if debug {
		g.gizmos.SetDrawer(g.drawer)
	}
	g.scheduler = ecs.NewScheduler(
		system.NewTargetScriptSystem(),
		system.NewTargetPhysicsSystem(),
		system.NewRockingSystem(),
		system.NewTurretControllerSystem(),
		g.gizmos,
		system.NewTurretAimSystem(),
	)

	log := logger.L()
	if err := clipboard.Init(); err != nil {
		log.Warn("clipboard unavailable", "error", err)
	} else {
		g.clipboardReady = true
	}
	g.watcher = newPrefabWatcher()
	return g, nil
}

// newPrefabWatcher watches the prefab override directory when it exists.
func newPrefabWatcher() *prefabs.Watcher {
	root := prefabs.DiskRoot()
	if root == "" {
		return nil
	}
	dirs := []string{root}
	if info, err := os.Stat(filepath.Join(root, "scripts")); err == nil && info.IsDir() {
		dirs = append(dirs, filepath.Join(root, "scripts"))
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		logger.L().Info("prefab hot reload disabled", "dir", root, "error", err)
		return nil
	}
	return w
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	g.reload()
	g.drawer.Reset()

	in, _ := ecs.Get(g.world, g.scene.Input, component.InputComponent.Kind())
	if in != nil {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			in.Toggle = true
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			in.Copy = true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.debug = !g.debug
		if g.debug {
			g.gizmos.SetDrawer(g.drawer)
		} else {
			g.gizmos.SetDrawer(nil)
		}
	}

	g.scheduler.Update(g.world, 1/float64(ebiten.TPS()))
	for _, ev := range g.world.Events().Drain() {
		if ev.Type == ecs.EventTurretAimed {
			g.notify(fmt.Sprintf("%v on target", ev.Data))
		}
	}

	if in != nil && in.Copy {
		in.Copy = false
		g.copySnapshot()
	}
	return nil
}

func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	for _, path := range g.watcher.Drain() {
		used, err := g.scene.Reload(path)
		switch {
		case err != nil:
			logger.L().Error("reload failed", "path", path, "error", err)
			g.notify("reload failed: " + filepath.Base(path))
		case used:
			g.notify("reloaded " + filepath.Base(path))
		}
	}
}

func (g *Game) copySnapshot() {
	if !g.clipboardReady {
		g.notify("clipboard unavailable")
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(g.scene.Snapshot()))
	g.notify("status copied")
}

func (g *Game) notify(msg string) {
	g.message = msg
	g.messageUntil = g.frames + messageFrames
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	vector.StrokeLine(screen, baseWidth/2, 0, baseWidth/2, baseHeight, 1, colornames.Slategray, false)

	for _, v := range []render.View{g.top, g.side} {
		g.drawTargets(screen, v)
		g.drawTurrets(screen, v)
		if g.debug {
			g.drawer.Draw(screen, v)
		}
	}
	g.drawHUD(screen)
}

func (g *Game) drawTargets(screen *ebiten.Image, v render.View) {
	for el := g.scene.Targets.Front(); el != nil; el = el.Next() {
		pose, ok := ecs.WorldPose(g.world, el.Value)
		if !ok {
			continue
		}
		var clr color.Color = colornames.Orange
		if t, ok := ecs.Get(g.world, el.Value, component.TargetComponent.Kind()); ok && !t.Present {
			clr = colornames.Dimgray
		}
		x, y := v.Project(pose.Position)
		vector.DrawFilledCircle(screen, x, y, 5, clr, true)
	}
}

func (g *Game) drawTurrets(screen *ebiten.Image, v render.View) {
	for el := g.scene.Turrets.Front(); el != nil; el = el.Next() {
		t := el.Value
		base := ecs.NewTransformNode(g.world, t.Base)
		bx, by := v.Project(base.Position())
		vector.DrawFilledCircle(screen, bx, by, 6, colornames.Lightsteelblue, true)
		fx, fy := v.Project(base.Position().Add(base.Forward().Mul(3)))
		vector.StrokeLine(screen, bx, by, fx, fy, 3, colornames.Lightsteelblue, true)

		if t.Barrels.Valid() {
			barrels := ecs.NewTransformNode(g.world, t.Barrels)
			x0, y0 := v.Project(barrels.Position())
			x1, y1 := v.Project(barrels.Position().Add(barrels.Forward().Mul(5)))
			clr := colornames.Silver
			if t.Aim.IsAimed() {
				clr = colornames.Lime
			}
			vector.StrokeLine(screen, x0, y0, x1, y1, 2, clr, true)
		}
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s    TPS: %.0f    click: toggle idle    C: copy status    G: gizmos\n\n", g.scene.Name, ebiten.ActualTPS())
	b.WriteString(g.scene.Snapshot())
	if g.frames < g.messageUntil {
		b.WriteString("\n" + g.message)
	}
	ebitenutil.DebugPrintAt(screen, b.String(), 8, 8)
	ebitenutil.DebugPrintAt(screen, "top (XZ)", 8, baseHeight-20)
	ebitenutil.DebugPrintAt(screen, "side (ZY)", baseWidth/2+8, baseHeight-20)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
