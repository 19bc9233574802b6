package config

// Settings is the root config for game.json
type Settings struct {
	Display DisplayConfig `json:"display"`
	World   WorldConfig   `json:"world"`
	Input   InputConfig   `json:"input"`
	Debug   DebugConfig   `json:"debug"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
}

// WorldConfig controls the level-to-world transform
type WorldConfig struct {
	Scale   float64 `json:"worldScale"`
	Padding float64 `json:"padding"` // Extra margin around the level's world rect
}

type InputConfig struct {
	Deadzone float64 `json:"deadzone"`
}

type DebugConfig struct {
	ShowHitboxes   bool    `json:"showHitboxes"`
	DeathAnimation float64 `json:"deathAnimation"` // Seconds before the renderer reports the animation done
}

// DefaultSettings returns the settings used when game.json omits a value
func DefaultSettings() Settings {
	return Settings{
		Display: DisplayConfig{ScreenWidth: 960, ScreenHeight: 540, Scale: 1, Framerate: 60},
		World:   WorldConfig{Scale: 1, Padding: 0},
		Input:   InputConfig{Deadzone: 0.2},
		Debug:   DebugConfig{DeathAnimation: 0.8},
	}
}

func (s *Settings) applyDefaults() {
	def := DefaultSettings()
	if s.Display.ScreenWidth <= 0 {
		s.Display.ScreenWidth = def.Display.ScreenWidth
	}
	if s.Display.ScreenHeight <= 0 {
		s.Display.ScreenHeight = def.Display.ScreenHeight
	}
	if s.Display.Scale <= 0 {
		s.Display.Scale = def.Display.Scale
	}
	if s.Display.Framerate <= 0 {
		s.Display.Framerate = def.Display.Framerate
	}
	if s.World.Scale <= 0 {
		s.World.Scale = def.World.Scale
	}
	if s.World.Padding < 0 {
		s.World.Padding = 0
	}
	if s.Input.Deadzone <= 0 || s.Input.Deadzone >= 1 {
		s.Input.Deadzone = def.Input.Deadzone
	}
	if s.Debug.DeathAnimation <= 0 {
		s.Debug.DeathAnimation = def.Debug.DeathAnimation
	}
}
