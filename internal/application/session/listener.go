package session

import "github.com/younwookim/pogo/internal/application/system"

// Listener receives semantic gameplay events. Presentation, audio and HUD
// collaborators implement it; the session never calls them directly.
type Listener interface {
	CoinCollected(count, total int)
	HealthChanged(health, maxHealth int)
	CombatHit(hit system.CombatHit)
	PlayerDied()
	LevelCleared()
}

// NopListener ignores every event. Embed it to implement a subset.
type NopListener struct{}

func (NopListener) CoinCollected(count, total int)      {}
func (NopListener) HealthChanged(health, maxHealth int) {}
func (NopListener) CombatHit(hit system.CombatHit)      {}
func (NopListener) PlayerDied()                         {}
func (NopListener) LevelCleared()                       {}
