package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/pogo/internal/domain/entity"
)

func TestLoader_LoadSettings(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, 960, cfg.Display.ScreenWidth)
	assert.Equal(t, 540, cfg.Display.ScreenHeight)
	assert.Equal(t, 60, cfg.Display.Framerate)
	assert.Equal(t, 1.0, cfg.World.Scale)
	assert.Equal(t, 0.2, cfg.Input.Deadzone)
	assert.True(t, cfg.Debug.ShowHitboxes)
}

func TestLoader_LoadSettingsDefaults(t *testing.T) {
	fsys := fstest.MapFS{
		"game.json": {Data: []byte(`{"display": {"screenWidth": 320}, "input": {"deadzone": 3}}`)},
	}
	loader := NewFSLoader(fsys, ".")

	cfg, err := loader.LoadSettings()
	require.NoError(t, err)

	def := DefaultSettings()
	assert.Equal(t, 320, cfg.Display.ScreenWidth)
	assert.Equal(t, def.Display.ScreenHeight, cfg.Display.ScreenHeight)
	assert.Equal(t, def.Display.Framerate, cfg.Display.Framerate)
	assert.Equal(t, def.World.Scale, cfg.World.Scale)
	assert.Equal(t, def.Input.Deadzone, cfg.Input.Deadzone, "out of range deadzone falls back")
	assert.Equal(t, def.Debug.DeathAnimation, cfg.Debug.DeathAnimation)
}

func TestLoader_LoadSettingsErrors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"missing", fstest.MapFS{}},
		{"malformed", fstest.MapFS{"game.json": {Data: []byte(`{"display":`)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFSLoader(tt.fsys, ".").LoadSettings()
			assert.Error(t, err)
		})
	}
}

func TestLoader_LoadEnemyCatalog(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	catalog, err := loader.LoadEnemyCatalog()
	require.NoError(t, err)

	slime, err := catalog.Lookup("slime")
	require.NoError(t, err)
	assert.Equal(t, "patrol", slime.Behavior)
	assert.Equal(t, 96.0, slime.PatrolRange)
	assert.Equal(t, 64.0, slime.Hitbox.W)
	assert.Equal(t, 52.0, slime.Hitbox.H)
	require.NotNil(t, slime.Gravity)
	assert.True(t, *slime.Gravity)

	crystal, err := catalog.Lookup("crystal")
	require.NoError(t, err)
	require.NotNil(t, crystal.Gravity)
	assert.False(t, *crystal.Gravity)
}

func TestLoader_LoadEnemyCatalogFallback(t *testing.T) {
	catalog, err := NewFSLoader(fstest.MapFS{}, ".").LoadEnemyCatalog()
	require.NoError(t, err)

	assert.Equal(t, DefaultEnemyCatalog(), catalog)
}

func TestParseEnemyCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", "kinds: [\n"},
		{"unknown behavior", "kinds:\n  bat:\n    behavior: fly\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEnemyCatalog([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestEnemyCatalog_Lookup(t *testing.T) {
	catalog := DefaultEnemyCatalog()

	_, err := catalog.Lookup("dragon")
	assert.ErrorIs(t, err, ErrUnknownEnemyKind)

	kind, err := catalog.Lookup("")
	require.NoError(t, err)
	assert.Equal(t, EnemyKind{}, kind)
}

func TestEnemyKind_Spawn(t *testing.T) {
	catalog := DefaultEnemyCatalog()

	tests := []struct {
		name     string
		kind     string
		behavior entity.Behavior
		gravity  bool
		hitboxW  float64
	}{
		{"slime patrols with gravity", "slime", entity.BehaviorPatrol, true, 64},
		{"crystal floats idle", "crystal", entity.BehaviorIdle, false, 33},
		{"untyped takes defaults", "", entity.BehaviorIdle, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := catalog.Lookup(tt.kind)
			require.NoError(t, err)

			spawn := k.Spawn(tt.kind, 10, 20)

			assert.Equal(t, tt.kind, spawn.Kind)
			assert.Equal(t, 10.0, spawn.X)
			assert.Equal(t, 20.0, spawn.Y)
			assert.Equal(t, tt.behavior, spawn.Behavior)
			assert.Equal(t, tt.gravity, spawn.GravityEnabled)
			assert.Equal(t, tt.hitboxW, spawn.HitboxW)
		})
	}
}

func TestLoader_LoadAll(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadAll()
	require.NoError(t, err)

	assert.NotNil(t, cfg.Settings)
	assert.NotNil(t, cfg.Enemies)
	assert.Equal(t, "../../../cmd/game/configs", loader.BasePath())
}

func TestParseEnemyCatalog_MergesBuiltinKinds(t *testing.T) {
	catalog, err := ParseEnemyCatalog([]byte("kinds:\n  slime:\n    patrol_speed: 120\n  bat:\n    behavior: patrol\n"))
	require.NoError(t, err)

	slime := catalog.Kinds["slime"]
	assert.Equal(t, 120.0, slime.PatrolSpeed)
	assert.Equal(t, "patrol", slime.Behavior)
	assert.Equal(t, entity.DefaultIdleDuration, slime.IdleDuration)
	assert.Equal(t, HitboxSpec{W: 64, H: 52}, slime.Hitbox)
	require.NotNil(t, slime.Gravity)
	assert.True(t, *slime.Gravity)

	bat := catalog.Kinds["bat"]
	assert.Equal(t, 0.0, bat.PatrolSpeed, "kinds without a built-in entry stay as written")
}

func TestEnemyKind_SpawnDefaultsIdleDuration(t *testing.T) {
	tests := []struct {
		name string
		kind EnemyKind
		want float64
	}{
		{"untyped patrol pauses", EnemyKind{Behavior: "patrol"}, entity.DefaultIdleDuration},
		{"explicit idle kept", EnemyKind{Behavior: "patrol", IdleDuration: 1.25}, 1.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Spawn("", 0, 0).IdleDuration)
		})
	}
}
