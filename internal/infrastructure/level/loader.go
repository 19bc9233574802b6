package level

import (
	"context"
	"fmt"
	"io/fs"
	"path"

	"golang.org/x/sync/errgroup"

	"github.com/younwookim/pogo/internal/domain/entity"
	"github.com/younwookim/pogo/internal/infrastructure/config"
)

// Loader reads level files and the enemy catalog and produces simulation
// levels in world units.
type Loader struct {
	fsys    fs.FS
	configs *config.Loader
	dir     string
	scale   float64
	padding float64
}

// NewLoader creates a loader for levels stored under dir in fsys. The enemy
// catalog is read through configs.
func NewLoader(fsys fs.FS, dir string, configs *config.Loader, world config.WorldConfig) *Loader {
	return &Loader{
		fsys:    fsys,
		configs: configs,
		dir:     dir,
		scale:   world.Scale,
		padding: world.Padding,
	}
}

// Path returns the file path of a level name relative to the loader's fs.
// A name without extension is looked up as JSON.
func (l *Loader) Path(name string) string {
	if path.Ext(name) == "" {
		name += ".json"
	}
	return path.Join(l.dir, name)
}

// Read parses a level file, picking the format from its extension
func (l *Loader) Read(name string) (*Data, error) {
	p := l.Path(name)
	switch path.Ext(p) {
	case ".json":
		raw, err := fs.ReadFile(l.fsys, p)
		if err != nil {
			return nil, fmt.Errorf("failed to read level %s: %w", p, err)
		}
		return ParseJSON(raw)
	case ".tmx":
		return LoadTMX(l.fsys, p)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, p)
	}
}

// Load reads the level and the enemy catalog concurrently and builds the
// world-space level.
func (l *Loader) Load(ctx context.Context, name string) (*entity.Level, error) {
	var (
		data    *Data
		catalog *config.EnemyCatalog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		d, err := l.Read(name)
		if err != nil {
			return err
		}
		data = d
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		if l.configs == nil {
			catalog = config.DefaultEnemyCatalog()
			return nil
		}
		c, err := l.configs.LoadEnemyCatalog()
		if err != nil {
			return err
		}
		catalog = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return NewRuntime(data, l.scale, l.padding).Build(data, catalog)
}

// Func binds Load to a level name for session entry
func (l *Loader) Func(name string) func(context.Context) (*entity.Level, error) {
	return func(ctx context.Context) (*entity.Level, error) {
		return l.Load(ctx, name)
	}
}
