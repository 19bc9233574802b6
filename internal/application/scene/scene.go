// Package scene defines the Scene interface for game screens.
//
// A screen (the playing session, a level select, a results card) implements
// Scene to handle its own update logic and rendering.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene represents a game screen.
//
// The game loop delegates Update and Draw calls to the current scene.
// Scene transitions are handled by returning a new Scene from Update.
type Scene interface {
	// Update updates the scene state.
	// dt is the fixed delta time in seconds.
	// Returns the next scene if a transition is needed, nil to stay on current scene.
	// Returns an error to terminate the game.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	// Sessions are entered here so a scene can be re-entered.
	OnEnter()

	// OnExit is called when leaving this scene and when the game closes.
	// Use this to release the session and flush recordings.
	OnExit()
}
