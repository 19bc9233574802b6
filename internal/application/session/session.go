package session

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/younwookim/pogo/internal/application/state"
	"github.com/younwookim/pogo/internal/application/system"
	"github.com/younwookim/pogo/internal/domain/entity"
	"github.com/younwookim/pogo/internal/domain/physics"
)

// Contact and feedback tuning in level units.
const (
	ContactCooldown       = 0.35
	ContactKnockbackSpeed = 320.0
	ContactBounceSpeed    = 220.0
	HitStopDuration       = 0.06

	playerID entity.EntityID = 1
)

// ErrUnknownPhase is returned by RunPhase for a name not in the pipeline.
var ErrUnknownPhase = errors.New("unknown phase")

// LoadFunc produces the level for a session. It runs on its own goroutine
// and should honor ctx cancellation.
type LoadFunc func(ctx context.Context) (*entity.Level, error)

type loadResult struct {
	generation uint64
	level      *entity.Level
	err        error
}

// Session owns every entity of one level run and steps them through a fixed
// phase pipeline. All methods must be called from the goroutine that ticks
// the session.
type Session struct {
	Logger *log.Logger

	listener Listener
	sources  []system.InputSource
	phases   []Phase
	viewW    float64
	viewH    float64

	state      state.SessionState
	generation uint64
	load       LoadFunc
	cancel     context.CancelFunc
	results    chan loadResult
	loadErr    error

	level   *entity.Level
	player  *entity.Player
	enemies []*entity.Enemy
	combat  *system.Combat
	pickups *system.Pickups
	camera  *system.Camera

	frame           uint64
	input           entity.Input
	homingTarget    *entity.Enemy
	struckTarget    *entity.Enemy
	homingHandled   int
	hitStop         float64
	contactCooldown float64
	lastHits        []system.CombatHit
}

// New creates an idle session. listener may be nil.
func New(listener Listener, viewW, viewH float64, sources ...system.InputSource) *Session {
	if listener == nil {
		listener = NopListener{}
	}
	s := &Session{
		Logger:   log.Default(),
		listener: listener,
		sources:  sources,
		viewW:    viewW,
		viewH:    viewH,
		results:  make(chan loadResult, 4),
	}
	s.phases = s.pipeline()
	return s
}

// Enter starts an asynchronous load and returns its generation. Any load
// still in flight from an earlier call is cancelled and its result will be
// discarded.
func (s *Session) Enter(load LoadFunc) uint64 {
	s.supersede()
	s.load = load
	s.state = state.StateLoading

	gen := s.generation
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	results := s.results
	go func() {
		lvl, err := load(ctx)
		select {
		case results <- loadResult{generation: gen, level: lvl, err: err}:
		case <-ctx.Done():
		}
	}()
	return gen
}

// Start begins a session on an already loaded level.
func (s *Session) Start(level *entity.Level) uint64 {
	s.supersede()
	s.load = nil
	s.begin(level)
	return s.generation
}

// Await blocks until the current load finishes and returns its error.
func (s *Session) Await(ctx context.Context) error {
	for s.state == state.StateLoading {
		select {
		case r := <-s.results:
			s.apply(r)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.loadErr
}

// Exit releases every entity and invalidates pending loads.
func (s *Session) Exit() {
	s.supersede()
	s.load = nil
	s.state = state.StateExited
}

// Tick advances the session by dt seconds.
func (s *Session) Tick(dt float64) {
	s.poll()
	if !s.state.IsSimulating() {
		return
	}
	dt = physics.SafeDelta(dt)
	s.frame++
	for _, ph := range s.phases {
		if !ph.Run(dt) {
			return
		}
	}
}

// RunPhase runs a single named phase. It reports whether the pipeline would
// have continued past it.
func (s *Session) RunPhase(name string, dt float64) (bool, error) {
	for _, ph := range s.phases {
		if ph.Name == name {
			if s.player == nil {
				return false, fmt.Errorf("failed to run phase %q: no active level", name)
			}
			return ph.Run(physics.SafeDelta(dt)), nil
		}
	}
	return false, fmt.Errorf("%w: %s", ErrUnknownPhase, name)
}

func (s *Session) supersede() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	s.loadErr = nil
	s.release()
}

func (s *Session) release() {
	s.level = nil
	s.player = nil
	s.enemies = nil
	s.combat = nil
	s.pickups = nil
	s.camera = nil
	s.homingTarget = nil
	s.struckTarget = nil
	s.lastHits = nil
}

func (s *Session) poll() {
	for {
		select {
		case r := <-s.results:
			s.apply(r)
		default:
			return
		}
	}
}

func (s *Session) apply(r loadResult) {
	if r.generation != s.generation || s.state != state.StateLoading {
		s.Logger.Printf("Discarding stale level load (generation %d, current %d)", r.generation, s.generation)
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if r.err != nil {
		s.loadErr = fmt.Errorf("failed to load level: %w", r.err)
		s.state = state.StateIdle
		s.Logger.Printf("Level load failed: %v", r.err)
		return
	}
	s.begin(r.level)
}

func (s *Session) begin(level *entity.Level) {
	scale := level.WorldScale()
	s.level = level
	s.player = entity.NewPlayer(playerID, level.Spawn.X-entity.PlayerWidth*scale/2, level.Spawn.Y-entity.PlayerHeight*scale, scale)

	s.enemies = make([]*entity.Enemy, 0, len(level.Enemies))
	for i, spawn := range level.Enemies {
		s.enemies = append(s.enemies, entity.NewEnemy(playerID+1+entity.EntityID(i), spawn, scale))
	}

	s.combat = system.NewCombat()
	s.combat.OnHit = s.onHit
	s.pickups = system.NewPickups(level.Coins, system.CoinPickupRadius*scale)
	s.pickups.OnCollect = s.listener.CoinCollected
	s.camera = system.NewCamera(s.viewW, s.viewH, level.Bounds)
	s.camera.Snap(s.player.Center())

	s.frame = 0
	s.input = entity.Input{}
	s.homingHandled = 0
	s.hitStop = 0
	s.contactCooldown = 0
	s.state = state.StatePlaying

	s.Logger.Printf("Session started: level=%s generation=%d enemies=%d coins=%d",
		level.ID, s.generation, len(s.enemies), len(level.Coins))
	s.listener.HealthChanged(s.player.Health(), s.player.MaxHealth())
	s.listener.CoinCollected(0, s.pickups.Total())
}

func (s *Session) restart() {
	if s.load != nil {
		s.Enter(s.load)
		return
	}
	s.Start(s.level)
}

func (s *Session) onHit(hit system.CombatHit) {
	s.hitStop = HitStopDuration
	s.listener.CombatHit(hit)
}

func (s *Session) onPlayerDied() {
	s.state = state.StateDead
	s.listener.HealthChanged(s.player.Health(), s.player.MaxHealth())
	s.listener.PlayerDied()
}

func (s *Session) scale() float64 { return s.level.WorldScale() }

// State returns the lifecycle state.
func (s *Session) State() state.SessionState { return s.state }

// Generation returns the token of the most recent Enter, Start or Exit.
func (s *Session) Generation() uint64 { return s.generation }

// Err returns the error of the last failed load.
func (s *Session) Err() error { return s.loadErr }

// Frame returns the number of simulated ticks since the level started.
func (s *Session) Frame() uint64 { return s.frame }

// Level returns the active level or nil.
func (s *Session) Level() *entity.Level { return s.level }

// Player returns the player or nil when no level is active.
func (s *Session) Player() *entity.Player { return s.player }

// Enemies returns the session's enemies, dead ones included.
func (s *Session) Enemies() []*entity.Enemy { return s.enemies }

// Pickups returns the coin tracker.
func (s *Session) Pickups() *system.Pickups { return s.pickups }

// Camera returns the camera.
func (s *Session) Camera() *system.Camera { return s.camera }

// Combat returns the combat resolver.
func (s *Session) Combat() *system.Combat { return s.combat }

// Input returns the input merged this tick.
func (s *Session) Input() entity.Input { return s.input }

// HomingTarget returns the enemy found by this tick's target scan.
func (s *Session) HomingTarget() *entity.Enemy { return s.homingTarget }

// LastHits returns the hits resolved on the most recent combat phase.
func (s *Session) LastHits() []system.CombatHit { return s.lastHits }

// HitStopRemaining returns the remaining freeze time.
func (s *Session) HitStopRemaining() float64 { return max(0, s.hitStop) }
