package level

import (
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Object group names read from Tiled maps
const (
	groupSolids  = "solids"
	groupSpawn   = "spawn"
	groupGoal    = "goal"
	groupCoins   = "coins"
	groupEnemies = "enemies"
)

// LoadTMX reads a Tiled map. Geometry comes from rectangle objects in the
// solids, spawn, goal, coins and enemies object groups. Enemy objects carry
// their kind in a "kind" property and may override tuning with properties
// named like the JSON fields.
func LoadTMX(fsys fs.FS, tmxPath string) (*Data, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("failed to load TMX %s: %w", tmxPath, err)
	}

	d := &Data{
		LevelID: strings.TrimSuffix(path.Base(tmxPath), path.Ext(tmxPath)),
		Version: 1,
		World: &RectData{
			W: float64(levelMap.Width * levelMap.TileWidth),
			H: float64(levelMap.Height * levelMap.TileHeight),
		},
	}
	d.Name = d.LevelID

	for _, og := range levelMap.ObjectGroups {
		for _, o := range og.Objects {
			rect := RectData{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
			switch og.Name {
			case groupSolids:
				d.Solids = append(d.Solids, rect)
			case groupSpawn:
				d.Spawn = PointData{X: o.X, Y: o.Y}
			case groupGoal:
				goal := rect
				d.Goal = &goal
			case groupCoins:
				d.Coins = append(d.Coins, CoinData{ID: o.Name, X: o.X, Y: o.Y})
			case groupEnemies:
				e, err := enemyFromProperties(o.X, o.Y, o.Properties.GetString)
				if err != nil {
					return nil, fmt.Errorf("failed to read enemy %d in %s: %w", o.ID, tmxPath, err)
				}
				d.Enemies = append(d.Enemies, e)
			}
		}
	}

	if err := d.Normalize(); err != nil {
		return nil, err
	}
	return d, nil
}

func enemyFromProperties(x, y float64, prop func(name string) string) (EnemyData, error) {
	e := EnemyData{
		Kind:     prop("kind"),
		X:        x,
		Y:        y,
		Behavior: prop("behavior"),
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"patrolRange", &e.PatrolRange},
		{"patrolSpeed", &e.PatrolSpeed},
		{"idleDuration", &e.IdleDuration},
	}
	for _, f := range floats {
		v := prop(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return EnemyData{}, fmt.Errorf("failed to parse %s: %w", f.name, err)
		}
		*f.dst = n
	}

	if v := prop("gravity"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return EnemyData{}, fmt.Errorf("failed to parse gravity: %w", err)
		}
		e.Gravity = &b
	}
	if v := prop("health"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return EnemyData{}, fmt.Errorf("failed to parse health: %w", err)
		}
		e.Health = n
	}
	return e, nil
}
