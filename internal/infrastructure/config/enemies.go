package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/younwookim/pogo/internal/domain/entity"
)

// ErrUnknownEnemyKind is returned when a level names a kind missing from
// the catalog.
var ErrUnknownEnemyKind = errors.New("unknown enemy kind")

// EnemyKind is one catalog entry. Lengths and speeds are in level units.
type EnemyKind struct {
	Behavior     string     `yaml:"behavior"`
	PatrolRange  float64    `yaml:"patrol_range"`
	PatrolSpeed  float64    `yaml:"patrol_speed"`
	IdleDuration float64    `yaml:"idle_duration"`
	Gravity      *bool      `yaml:"gravity"`
	Hitbox       HitboxSpec `yaml:"hitbox"`
	Health       int        `yaml:"health"`
}

type HitboxSpec struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// EnemyCatalog maps kind names to their defaults
type EnemyCatalog struct {
	Kinds map[string]EnemyKind `yaml:"kinds"`
}

// DefaultEnemyCatalog is used when no enemies.yaml is present
func DefaultEnemyCatalog() *EnemyCatalog {
	on, off := true, false
	return &EnemyCatalog{Kinds: map[string]EnemyKind{
		"slime": {
			Behavior:     "patrol",
			PatrolRange:  entity.DefaultPatrolRange,
			PatrolSpeed:  entity.DefaultPatrolSpeed,
			IdleDuration: entity.DefaultIdleDuration,
			Gravity:      &on,
			Hitbox:       HitboxSpec{W: 64, H: 52},
			Health:       entity.DefaultEnemyHealth,
		},
		"crystal": {
			Behavior: "idle",
			Gravity:  &off,
			Hitbox:   HitboxSpec{W: 33, H: 79},
			Health:   entity.DefaultEnemyHealth,
		},
	}}
}

// ParseEnemyCatalog decodes enemies.yaml content
func ParseEnemyCatalog(data []byte) (*EnemyCatalog, error) {
	var catalog EnemyCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse enemy catalog: %w", err)
	}
	if catalog.Kinds == nil {
		catalog.Kinds = map[string]EnemyKind{}
	}
	builtin := DefaultEnemyCatalog()
	for name, kind := range catalog.Kinds {
		switch kind.Behavior {
		case "", "idle", "patrol":
		default:
			return nil, fmt.Errorf("failed to parse enemy kind %q: unknown behavior %q", name, kind.Behavior)
		}
		if base, ok := builtin.Kinds[name]; ok {
			catalog.Kinds[name] = kind.merge(base)
		}
	}
	return &catalog, nil
}

// merge fills the fields k leaves unset from base
func (k EnemyKind) merge(base EnemyKind) EnemyKind {
	if k.Behavior == "" {
		k.Behavior = base.Behavior
	}
	if k.PatrolRange <= 0 {
		k.PatrolRange = base.PatrolRange
	}
	if k.PatrolSpeed <= 0 {
		k.PatrolSpeed = base.PatrolSpeed
	}
	if k.IdleDuration <= 0 {
		k.IdleDuration = base.IdleDuration
	}
	if k.Gravity == nil {
		k.Gravity = base.Gravity
	}
	if k.Hitbox.W <= 0 || k.Hitbox.H <= 0 {
		k.Hitbox = base.Hitbox
	}
	if k.Health <= 0 {
		k.Health = base.Health
	}
	return k
}

// Lookup returns the entry for kind. An empty kind yields the zero entry,
// which takes every entity default.
func (c *EnemyCatalog) Lookup(kind string) (EnemyKind, error) {
	if kind == "" {
		return EnemyKind{}, nil
	}
	k, ok := c.Kinds[kind]
	if !ok {
		return EnemyKind{}, fmt.Errorf("%w: %s", ErrUnknownEnemyKind, kind)
	}
	return k, nil
}

// Spawn builds a spawn descriptor for kind at x, y. Tuning comes from the
// catalog entry; an unset idle duration pauses for entity.DefaultIdleDuration.
func (k EnemyKind) Spawn(kind string, x, y float64) entity.EnemySpawn {
	gravity := true
	if k.Gravity != nil {
		gravity = *k.Gravity
	}
	idle := k.IdleDuration
	if idle <= 0 {
		idle = entity.DefaultIdleDuration
	}
	return entity.EnemySpawn{
		Kind:           kind,
		X:              x,
		Y:              y,
		Behavior:       entity.ParseBehavior(k.Behavior),
		PatrolRange:    k.PatrolRange,
		PatrolSpeed:    k.PatrolSpeed,
		IdleDuration:   idle,
		GravityEnabled: gravity,
		HitboxW:        k.Hitbox.W,
		HitboxH:        k.Hitbox.H,
		Health:         k.Health,
	}
}
