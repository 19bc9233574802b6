package session

import (
	"github.com/younwookim/pogo/internal/application/state"
	"github.com/younwookim/pogo/internal/application/system"
	"github.com/younwookim/pogo/internal/domain/entity"
	"github.com/younwookim/pogo/internal/domain/physics"
)

// Phase is one named step of the tick pipeline. Run returns false to end
// the tick early.
type Phase struct {
	Name string
	Run  func(dt float64) bool
}

// Phase names in pipeline order.
const (
	PhaseMergeInput      = "merge-input"
	PhaseDeathSequence   = "death-sequence"
	PhaseScanHoming      = "scan-homing-target"
	PhaseHitStop         = "hit-stop"
	PhaseUpdatePlayer    = "update-player"
	PhaseUpdateEnemies   = "update-enemies"
	PhaseClampPlayer     = "clamp-player"
	PhaseFallDeath       = "check-fall-death"
	PhaseContactDamage   = "resolve-contact"
	PhaseTriggerHoming   = "trigger-homing"
	PhaseCombat          = "resolve-combat"
	PhasePickups         = "collect-pickups"
	PhaseCheckCompletion = "check-completion"
	PhaseCamera          = "update-camera"
)

func (s *Session) pipeline() []Phase {
	return []Phase{
		{PhaseMergeInput, s.mergeInput},
		{PhaseDeathSequence, s.sequenceDeath},
		{PhaseScanHoming, s.scanHomingTarget},
		{PhaseHitStop, s.applyHitStop},
		{PhaseUpdatePlayer, s.updatePlayer},
		{PhaseUpdateEnemies, s.updateEnemies},
		{PhaseClampPlayer, s.clampPlayer},
		{PhaseFallDeath, s.checkFallDeath},
		{PhaseContactDamage, s.resolveContact},
		{PhaseTriggerHoming, s.triggerHoming},
		{PhaseCombat, s.resolveCombat},
		{PhasePickups, s.collectPickups},
		{PhaseCheckCompletion, s.checkCompletion},
		{PhaseCamera, s.updateCamera},
	}
}

// Phases returns the pipeline phase names in execution order.
func (s *Session) Phases() []string {
	names := make([]string, len(s.phases))
	for i, ph := range s.phases {
		names[i] = ph.Name
	}
	return names
}

func (s *Session) mergeInput(dt float64) bool {
	s.input = system.MergeInputs(s.sources...)
	return true
}

// sequenceDeath restarts the level once the death hold has elapsed.
func (s *Session) sequenceDeath(dt float64) bool {
	if s.player.IsDeathSequenceComplete() {
		s.Logger.Printf("Restarting level %s", s.level.ID)
		s.restart()
		return false
	}
	return true
}

func (s *Session) scanHomingTarget(dt float64) bool {
	s.homingTarget = nil
	p := s.player
	if p.IsDead() || p.Grounded {
		return true
	}
	s.homingTarget = system.FindHomingTarget(p, s.enemies, system.HomingRadius*s.scale())
	if s.homingTarget != nil {
		p.SetNextAttackType(entity.AttackHoming)
	}
	return true
}

// applyHitStop freezes physics and AI. Only the attack cooldown advances and
// attack presses are buffered for when the freeze ends.
func (s *Session) applyHitStop(dt float64) bool {
	if s.hitStop <= 0 {
		return true
	}
	s.hitStop -= dt
	s.player.AdvanceAttack(dt, s.input)
	return false
}

func (s *Session) updatePlayer(dt float64) bool {
	s.player.Update(dt, s.input, s.level.Solids)
	return true
}

func (s *Session) updateEnemies(dt float64) bool {
	for _, e := range s.enemies {
		e.Update(dt, s.level.Solids)
	}
	return true
}

// clampPlayer keeps the player inside the horizontal bounds only, so it can
// fall out of the bottom.
func (s *Session) clampPlayer(dt float64) bool {
	s.player.ClampToBounds(s.level.Bounds, true, false)
	return true
}

func (s *Session) checkFallDeath(dt float64) bool {
	p := s.player
	if p.IsDead() || p.Pos.Y <= s.level.Bounds.Bottom() {
		return true
	}
	p.Kill()
	s.onPlayerDied()
	return true
}

func (s *Session) resolveContact(dt float64) bool {
	if s.contactCooldown > 0 {
		s.contactCooldown = max(0, s.contactCooldown-dt)
	}

	p := s.player
	if p.IsDead() || p.IsInvincible() || p.IsHomingAttackActive() || s.contactCooldown > 0 {
		return true
	}

	rect := p.Rect()
	for _, e := range s.enemies {
		if e.IsDead() || !physics.Overlaps(rect, e.Rect()) {
			continue
		}

		dir := 1.0
		if p.Center().X < e.Center().X {
			dir = -1
		}
		scale := s.scale()
		p.Knockback(physics.Vec{X: dir * ContactKnockbackSpeed * scale, Y: -ContactBounceSpeed * scale})
		s.contactCooldown = ContactCooldown

		if p.ApplyDamage(1) {
			s.onPlayerDied()
			return true
		}
		p.TriggerInvincibility(entity.HitInvincibilityDuration, true)
		p.TriggerHurt(entity.HitInvincibilityDuration / 2)
		s.listener.HealthChanged(p.Health(), p.MaxHealth())
		return true
	}
	return true
}

// triggerHoming runs the homing maneuver once per homing attack sequence.
func (s *Session) triggerHoming(dt float64) bool {
	s.struckTarget = nil
	p := s.player
	target := s.homingTarget
	if p.IsDead() || target == nil || target.IsDead() {
		return true
	}
	seq := p.AttackSequence()
	if p.AttackState() != entity.AttackHoming || seq == s.homingHandled {
		return true
	}
	s.homingHandled = seq

	before := p.Center()
	system.ExecuteHoming(p, target, s.level.Solids)
	s.pickups.CollectAlongSegment(before, p.Center(), p.W/2)
	s.struckTarget = target
	return true
}

func (s *Session) resolveCombat(dt float64) bool {
	s.lastHits = s.combat.Update(s.player, s.enemies, s.struckTarget)
	return true
}

func (s *Session) collectPickups(dt float64) bool {
	if !s.player.IsDead() {
		s.pickups.Update(s.player.Rect())
	}
	return true
}

func (s *Session) checkCompletion(dt float64) bool {
	goal := s.level.Goal
	if goal == nil || s.player.IsDead() || !physics.Overlaps(s.player.Rect(), *goal) {
		return true
	}
	s.state = state.StateCleared
	s.Logger.Printf("Level %s cleared: coins=%d/%d frame=%d", s.level.ID, s.pickups.Count(), s.pickups.Total(), s.frame)
	s.listener.LevelCleared()
	return false
}

func (s *Session) updateCamera(dt float64) bool {
	s.camera.Update(dt, s.player.Center())
	return true
}
