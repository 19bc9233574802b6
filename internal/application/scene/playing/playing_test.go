package playing

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/pogo/internal/application/replay"
	"github.com/younwookim/pogo/internal/application/scene"
	"github.com/younwookim/pogo/internal/application/state"
	"github.com/younwookim/pogo/internal/application/system"
	"github.com/younwookim/pogo/internal/domain/entity"
	"github.com/younwookim/pogo/internal/domain/physics"
	"github.com/younwookim/pogo/internal/infrastructure/config"
)

const testDT = 1.0 / 60.0

// createTestConfig creates a minimal config for testing
func createTestConfig() *config.GameConfig {
	settings := config.DefaultSettings()
	settings.Display.ScreenWidth = 320
	settings.Display.ScreenHeight = 240
	settings.Debug.DeathAnimation = 0.5
	return &config.GameConfig{
		Settings: &settings,
		Enemies:  config.DefaultEnemyCatalog(),
	}
}

// createTestLevel creates a flat level; the player spawns at x 76..124
func createTestLevel() *entity.Level {
	return &entity.Level{
		ID:     "test",
		Scale:  1,
		Bounds: physics.Rect{X: 0, Y: 0, W: 2000, H: 700},
		Solids: []physics.Rect{{X: 0, Y: 500, W: 2000, H: 40}},
		Spawn:  physics.Vec{X: 100, Y: 500},
		Coins:  []entity.Coin{{ID: "c1", Pos: physics.Vec{X: 100, Y: 450}}},
		Enemies: []entity.EnemySpawn{{
			Kind:           "slime",
			X:              900,
			Y:              500 - entity.EnemyBaseHeight,
			Behavior:       entity.BehaviorIdle,
			GravityEnabled: true,
		}},
	}
}

func staticLoad(lvl *entity.Level) func(context.Context) (*entity.Level, error) {
	return func(context.Context) (*entity.Level, error) { return lvl, nil }
}

func enterAndWait(t *testing.T, p *Playing) {
	t.Helper()
	p.OnEnter()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.Session().Await(ctx))
}

func TestPlaying_ImplementsScene(t *testing.T) {
	var _ scene.Scene = (*Playing)(nil)
	var _ system.InputSource = (*Playing)(nil)
}

func TestPlaying_New(t *testing.T) {
	p := New(createTestConfig(), "test", staticLoad(createTestLevel()), "")

	require.NotNil(t, p)
	assert.Equal(t, state.StateIdle, p.Session().State())
	assert.Nil(t, p.recorder)

	w, h := p.Layout(0, 0)
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)
}

func TestPlaying_EnterLoadsLevel(t *testing.T) {
	p := New(createTestConfig(), "test", staticLoad(createTestLevel()), "")

	enterAndWait(t, p)

	assert.Equal(t, state.StatePlaying, p.Session().State())
	assert.Equal(t, 3, p.feedback.Health)
	assert.Equal(t, 1, p.feedback.CoinTotal)
}

func TestPlaying_StepMovesPlayerAndCollects(t *testing.T) {
	in := system.NewVirtualInput()
	p := New(createTestConfig(), "test", staticLoad(createTestLevel()), "", in)
	enterAndWait(t, p)

	in.SetMoveX(1)
	for i := 0; i < 30; i++ {
		p.step(testDT)
	}

	assert.Greater(t, p.Session().Player().Pos.X, 76.0)
	assert.Equal(t, 1, p.feedback.Coins)
}

func TestPlaying_RecordsSimulatedFrames(t *testing.T) {
	in := system.NewVirtualInput()
	path := filepath.Join(t.TempDir(), "run.json")
	p := New(createTestConfig(), "test", staticLoad(createTestLevel()), path, in)
	require.NotNil(t, p.recorder)
	enterAndWait(t, p)

	in.SetMoveX(1)
	in.PressJump()
	for i := 0; i < 10; i++ {
		p.step(testDT)
	}

	data := p.recorder.GetData()
	require.Len(t, data.Frames, 10)
	assert.Equal(t, "test", data.Level)
	assert.True(t, data.Frames[0].JP)
	assert.False(t, data.Frames[1].JP, "press edge is recorded once")
	assert.Equal(t, 1.0, data.Frames[9].MX)

	p.OnExit()
	assert.False(t, p.recorder.IsRecording())
	assert.Equal(t, state.StateExited, p.Session().State())

	saved, err := replay.LoadReplay(path)
	require.NoError(t, err)
	assert.Len(t, saved.Frames, 10)
}

func TestPlaying_DeathRestartsLevel(t *testing.T) {
	p := New(createTestConfig(), "test", staticLoad(createTestLevel()), "")
	enterAndWait(t, p)

	first := p.Session().Player()
	first.Kill()

	for i := 0; i < 300 && p.Session().Player() == first; i++ {
		p.step(testDT)
		if p.Session().State() == state.StateLoading {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			require.NoError(t, p.Session().Await(ctx))
			cancel()
		}
	}

	assert.NotSame(t, first, p.Session().Player())
	assert.Equal(t, state.StatePlaying, p.Session().State())
}

func TestPlaying_Reload(t *testing.T) {
	p := New(createTestConfig(), "test", staticLoad(createTestLevel()), "")
	enterAndWait(t, p)
	gen := p.Session().Generation()

	reloads := make(chan string, 2)
	p.WatchReloads(reloads)

	reloads <- "other.json"
	p.checkReload()
	assert.Equal(t, gen, p.Session().Generation())

	reloads <- "test.json"
	p.checkReload()
	assert.Greater(t, p.Session().Generation(), gen)
	assert.Equal(t, state.StateLoading, p.Session().State())

	close(reloads)
	p.checkReload()
	assert.Nil(t, p.reloads)
}

func TestLevelFileMatches(t *testing.T) {
	tests := []struct {
		file string
		want bool
	}{
		{"demo", true},
		{"demo.json", true},
		{"demo.tmx", true},
		{"demo2.json", false},
		{"notes.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			assert.Equal(t, tt.want, levelFileMatches(tt.file, "demo"))
		})
	}
}

func TestDeathClock(t *testing.T) {
	p := entity.NewPlayer(1, 0, 0, 1)
	clock := DeathClock{Duration: 0.09}

	clock.Advance(p, 1)
	assert.Equal(t, 0.0, clock.elapsed, "alive players do not advance the clock")

	p.Kill()
	for i := 0; i < 5; i++ {
		clock.Advance(p, testDT)
	}
	p.Update(entity.DeathHoldDuration+1, entity.Input{}, nil)
	assert.False(t, p.IsDeathSequenceComplete(), "animation not finished yet")

	clock.Advance(p, testDT)
	p.Update(entity.DeathHoldDuration+1, entity.Input{}, nil)
	assert.True(t, p.IsDeathSequenceComplete())

	clock.Advance(nil, testDT)
	assert.Equal(t, 0.0, clock.elapsed)
}

func TestFeedback(t *testing.T) {
	f := &Feedback{}

	f.HealthChanged(3, 3)
	f.CoinCollected(2, 5)
	assert.Equal(t, 3, f.Health)
	assert.Equal(t, 2, f.Coins)
	assert.Equal(t, 5, f.CoinTotal)

	x, y := f.ShakeOffset(0)
	assert.Zero(t, x)
	assert.Zero(t, y)

	f.HealthChanged(2, 3)
	x, _ = f.ShakeOffset(0)
	assert.Greater(t, x, 0.0, "damage shakes the screen")

	f.CombatHit(system.CombatHit{Impact: physics.Vec{X: 1, Y: 2}, Attack: entity.AttackHoming})
	require.Len(t, f.Sparks(), 1)
	assert.True(t, f.Sparks()[0].Homing)

	f.Update(1)
	assert.Empty(t, f.Sparks())
	x, _ = f.ShakeOffset(0)
	assert.Zero(t, x)

	f.PlayerDied()
	f.LevelCleared()
	assert.Equal(t, 1, f.Deaths)
	assert.True(t, f.Cleared)
}

func TestRecorder(t *testing.T) {
	r := NewRecorder("demo")
	assert.True(t, r.IsRecording())

	r.RecordFrame(entity.Input{MoveX: -1})
	r.RecordFrame(entity.Input{AttackPressed: true, AttackHeld: true})
	assert.Equal(t, 2, r.FrameCount())

	r.Stop()
	r.RecordFrame(entity.Input{})
	assert.Equal(t, 2, r.FrameCount())

	data := r.GetData()
	assert.Equal(t, replay.FormatVersion, data.Version)
	assert.Equal(t, 1, data.Frames[1].F)
	assert.True(t, data.Frames[1].AP)
}

func TestRecorder_SaveEmpty(t *testing.T) {
	r := NewRecorder("demo")
	err := r.Save(filepath.Join(t.TempDir(), "empty.json"))
	assert.Error(t, err)
}

func TestRecorder_SaveBadPath(t *testing.T) {
	r := NewRecorder("demo")
	r.RecordFrame(entity.Input{})
	err := r.Save(filepath.Join(t.TempDir(), "missing", "run.json"))
	assert.Error(t, err)
}

func TestGenerateFilename(t *testing.T) {
	name := GenerateFilename()
	assert.Regexp(t, `^replay_\d{8}_\d{6}\.json$`, name)
}
