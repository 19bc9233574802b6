package level

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNoSolids is returned for a level without any collision geometry.
	ErrNoSolids = errors.New("level has no solids")
	// ErrUnknownFormat is returned for a level file that is neither JSON nor TMX.
	ErrUnknownFormat = errors.New("unknown level format")
)

// Data is a level as authored, in level units
type Data struct {
	LevelID string      `json:"levelId"`
	Name    string      `json:"name"`
	Version int         `json:"version"`
	World   *RectData   `json:"world,omitempty"`
	Spawn   PointData   `json:"spawn"`
	Solids  []RectData  `json:"solids"`
	Goal    *RectData   `json:"goal,omitempty"`
	Coins   []CoinData  `json:"coins"`
	Enemies []EnemyData `json:"enemies"`
}

type PointData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type RectData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type CoinData struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// EnemyData places a catalog kind. Zero or nil fields keep the catalog value.
type EnemyData struct {
	Kind         string  `json:"kind"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Behavior     string  `json:"behavior,omitempty"`
	PatrolRange  float64 `json:"patrolRange,omitempty"`
	PatrolSpeed  float64 `json:"patrolSpeed,omitempty"`
	IdleDuration float64 `json:"idleDuration,omitempty"`
	Gravity      *bool   `json:"gravity,omitempty"`
	Health       int     `json:"health,omitempty"`
}

// ParseJSON decodes and validates a JSON level
func ParseJSON(data []byte) (*Data, error) {
	var d Data
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse level: %w", err)
	}
	if err := d.Normalize(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Normalize replaces missing arrays with empty ones, fills coin IDs and
// rejects levels the simulation cannot run.
func (d *Data) Normalize() error {
	if d.Coins == nil {
		d.Coins = []CoinData{}
	}
	if d.Enemies == nil {
		d.Enemies = []EnemyData{}
	}
	if len(d.Solids) == 0 {
		return fmt.Errorf("%w: %s", ErrNoSolids, d.LevelID)
	}
	for i := range d.Coins {
		if d.Coins[i].ID == "" {
			d.Coins[i].ID = fmt.Sprintf("coin-%d", i)
		}
	}
	for i, s := range d.Solids {
		if s.W <= 0 || s.H <= 0 {
			return fmt.Errorf("failed to validate level %s: solid %d has non-positive size", d.LevelID, i)
		}
	}
	return nil
}
