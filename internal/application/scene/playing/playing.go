// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/pogo/internal/application/scene"
	"github.com/younwookim/pogo/internal/application/session"
	"github.com/younwookim/pogo/internal/application/state"
	"github.com/younwookim/pogo/internal/application/system"
	"github.com/younwookim/pogo/internal/domain/entity"
	"github.com/younwookim/pogo/internal/domain/physics"
	"github.com/younwookim/pogo/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorSolid      = color.RGBA{80, 80, 100, 255}
	colorGoal       = color.RGBA{90, 200, 220, 160}
	colorPlayer     = color.RGBA{100, 200, 100, 255}
	colorPlayerHurt = color.RGBA{230, 160, 80, 255}
	colorPlayerDead = color.RGBA{120, 120, 120, 255}
	colorEnemy      = color.RGBA{200, 100, 100, 255}
	colorEnemyHurt  = color.RGBA{255, 180, 180, 255}
	colorEnemyDead  = color.RGBA{90, 60, 60, 255}
	colorHitbox     = color.RGBA{255, 255, 255, 90}
	colorSwing      = color.RGBA{180, 220, 255, 60}
	colorHoming     = color.RGBA{255, 220, 80, 140}
	colorSpark      = color.RGBA{255, 255, 200, 255}
	colorGold       = color.RGBA{255, 215, 0, 255}
	colorHealthBG   = color.RGBA{60, 60, 60, 255}
	colorHealthFG   = color.RGBA{100, 200, 100, 255}
	colorOverlay    = color.RGBA{0, 0, 0, 150}
)

// Playing is the main gameplay scene. It hosts a session, feeds it input
// and draws the simulation as debug geometry.
type Playing struct {
	settings  *config.Settings
	sess      *session.Session
	load      session.LoadFunc
	levelName string
	feedback  *Feedback
	death     DeathClock
	sources   []system.InputSource
	reloads   <-chan string
	paused    bool
	screenW   int
	screenH   int
	dt        float64

	// Input recording
	recorder       *Recorder
	recordFilename string
}

// New creates a new Playing scene for the named level.
// If recordPath is not empty, gameplay will be recorded.
func New(cfg *config.GameConfig, levelName string, load session.LoadFunc, recordPath string, sources ...system.InputSource) *Playing {
	settings := cfg.Settings
	p := &Playing{
		settings:       settings,
		load:           load,
		levelName:      levelName,
		feedback:       &Feedback{},
		death:          DeathClock{Duration: settings.Debug.DeathAnimation},
		sources:        sources,
		screenW:        settings.Display.ScreenWidth,
		screenH:        settings.Display.ScreenHeight,
		dt:             1.0 / float64(settings.Display.Framerate),
		recordFilename: recordPath,
	}
	p.sess = session.New(p.feedback, float64(p.screenW), float64(p.screenH), p)

	// Initialize recorder if recording is enabled
	if recordPath != "" {
		p.recorder = NewRecorder(levelName)
		log.Printf("Recording enabled: %s (level: %s)", recordPath, levelName)
	}

	return p
}

// WatchReloads makes the scene re-enter the level whenever a changed file
// name matching the level arrives on ch.
func (p *Playing) WatchReloads(ch <-chan string) {
	p.reloads = ch
}

// Session returns the hosted session
func (p *Playing) Session() *session.Session {
	return p.sess
}

// Poll merges the scene's input sources and records the result. The session
// polls it once per simulated tick.
func (p *Playing) Poll() entity.Input {
	in := system.MergeInputs(p.sources...)
	if p.recorder != nil {
		p.recorder.RecordFrame(in)
	}
	return in
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	p.checkReload()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.paused = !p.paused
	}
	if p.paused {
		return nil, nil
	}

	// F5: Save recording manually
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) && p.recorder != nil {
		p.saveRecording()
	}

	switch p.sess.State() {
	case state.StateCleared:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyR) {
			p.restart()
		}
	case state.StateIdle:
		if err := p.sess.Err(); err != nil {
			return nil, err
		}
	}

	p.step(p.dt)
	return nil, nil // nil = stay on this scene
}

// step advances the simulation and the presentation timers by one frame
func (p *Playing) step(dt float64) {
	p.death.Advance(p.sess.Player(), dt)
	p.sess.Tick(dt)
	p.feedback.Update(dt)
}

func (p *Playing) checkReload() {
	if p.reloads == nil {
		return
	}
	for {
		select {
		case name, ok := <-p.reloads:
			if !ok {
				p.reloads = nil
				return
			}
			if levelFileMatches(name, p.levelName) {
				log.Printf("Level file changed: %s, reloading", name)
				p.restart()
			}
		default:
			return
		}
	}
}

func levelFileMatches(file, level string) bool {
	return file == level || file == level+".json" || file == level+".tmx"
}

func (p *Playing) restart() {
	p.feedback.Cleared = false
	p.sess.Enter(p.load)
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	if p.sess.Player() == nil {
		ebitenutil.DebugPrintAt(screen, "Loading...", p.screenW/2-30, p.screenH/2)
		return
	}

	cam := p.sess.Camera().Pos
	sx, sy := p.feedback.ShakeOffset(p.sess.Frame())
	cam = cam.Add(physics.Vec{X: sx, Y: sy})

	p.drawLevel(screen, cam)
	p.drawEnemies(screen, cam)
	p.drawPlayer(screen, cam)
	p.drawEffects(screen, cam)
	p.drawUI(screen)

	switch {
	case p.paused:
		p.drawOverlay(screen, "PAUSED - ESC to resume")
	case p.sess.State() == state.StateCleared:
		p.drawOverlay(screen, fmt.Sprintf("CLEARED! coins %d/%d - ENTER to replay", p.feedback.Coins, p.feedback.CoinTotal))
	case p.sess.State() == state.StateDead:
		p.drawOverlay(screen, "OUCH")
	}
}

func drawRect(screen *ebiten.Image, r physics.Rect, cam physics.Vec, c color.Color) {
	ebitenutil.DrawRect(screen, r.X-cam.X, r.Y-cam.Y, r.W, r.H, c)
}

func (p *Playing) drawLevel(screen *ebiten.Image, cam physics.Vec) {
	lvl := p.sess.Level()
	for _, s := range lvl.Solids {
		drawRect(screen, s, cam, colorSolid)
	}
	if lvl.Goal != nil {
		drawRect(screen, *lvl.Goal, cam, colorGoal)
	}

	size := 8 * lvl.WorldScale()
	pickups := p.sess.Pickups()
	for _, c := range lvl.Coins {
		if pickups.IsCollected(c.ID) {
			continue
		}
		drawRect(screen, physics.Rect{X: c.Pos.X - size/2, Y: c.Pos.Y - size/2, W: size, H: size}, cam, colorGold)
	}
}

func (p *Playing) drawEnemies(screen *ebiten.Image, cam physics.Vec) {
	target := p.sess.HomingTarget()
	for _, e := range p.sess.Enemies() {
		c := colorEnemy
		switch e.State() {
		case entity.EnemyHurt:
			c = colorEnemyHurt
		case entity.EnemyDead:
			c = colorEnemyDead
		}
		drawRect(screen, e.Rect(), cam, c)

		if e == target {
			r := e.Rect()
			drawRect(screen, physics.Rect{X: r.X - 3, Y: r.Y - 3, W: r.W + 6, H: 3}, cam, colorHoming)
		}
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image, cam physics.Vec) {
	pl := p.sess.Player()
	if !pl.IsVisible() {
		return
	}

	c := colorPlayer
	switch pl.LifeState() {
	case entity.LifeHurt:
		c = colorPlayerHurt
	case entity.LifeDead:
		c = colorPlayerDead
	}
	drawRect(screen, pl.Rect(), cam, c)

	if box, kind, ok := p.sess.Combat().VisualBox(pl); ok {
		trail := colorSwing
		if kind == entity.AttackHoming {
			trail = colorHoming
		}
		drawRect(screen, box, cam, trail)
	}
	if p.settings.Debug.ShowHitboxes && pl.IsAttackActive() {
		box, _ := p.sess.Combat().Hitbox(pl)
		drawRect(screen, box, cam, colorHitbox)
	}
}

func (p *Playing) drawEffects(screen *ebiten.Image, cam physics.Vec) {
	for _, s := range p.feedback.Sparks() {
		size := 6 + 20*(s.TTL/sparkLifetime)
		if s.Homing {
			size *= 1.5
		}
		drawRect(screen, physics.Rect{X: s.Pos.X - size/2, Y: s.Pos.Y - size/2, W: size, H: size}, cam, colorSpark)
	}
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	// Health bar
	barX := 10.0
	barY := float64(p.screenH - 20)
	barW := 100.0
	barH := 10.0

	ebitenutil.DrawRect(screen, barX, barY, barW, barH, colorHealthBG)

	healthRatio := 0.0
	if p.feedback.MaxHealth > 0 {
		healthRatio = float64(p.feedback.Health) / float64(p.feedback.MaxHealth)
	}
	ebitenutil.DrawRect(screen, barX, barY, barW*healthRatio, barH, colorHealthFG)

	coinText := fmt.Sprintf("Coins: %d/%d", p.feedback.Coins, p.feedback.CoinTotal)
	ebitenutil.DebugPrintAt(screen, coinText, 10, p.screenH-35)

	// Controls
	debugText := "Arrows/WASD: Move | Z/Space: Jump | X/J: Attack (air: homing) | ESC: Pause"
	if p.recorder != nil {
		debugText += " | F5: Save replay"
	}
	ebitenutil.DebugPrint(screen, debugText)
}

func (p *Playing) drawOverlay(screen *ebiten.Image, text string) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorOverlay)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-len(text)*3, p.screenH/2-20)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	p.sess.Enter(p.load)
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.sess.Exit()
	if p.recorder != nil {
		p.recorder.Stop()
		p.saveRecording()
	}
}

// Layout returns the game's screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}
