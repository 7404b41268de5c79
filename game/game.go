// Package game owns the running simulation: one level, one player and the
// frame loop that advances them.
package game

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/automoto/cavestory/components"
	cfg "github.com/automoto/cavestory/config"
	"github.com/automoto/cavestory/shared/collision"
	"github.com/automoto/cavestory/shared/gamemath"
	"github.com/automoto/cavestory/shared/leveldata"
	"github.com/automoto/cavestory/systems"
	"github.com/automoto/cavestory/systems/factory"
	"github.com/rs/zerolog/log"
	"github.com/yohamta/donburi"
)

// ErrQuit is returned by Frame once the player asks to leave.
var ErrQuit = errors.New("quit requested")

// LevelLoader builds a level from a map name.
type LevelLoader func(name string) (*leveldata.Level, error)

// NewLevelLoader loads maps from the maps directory of fsys with the scale
// and default spawn point taken from c. imageSize may be nil.
func NewLevelLoader(c cfg.Config, fsys fs.FS, imageSize func(fs.FS, string) (int, int, error)) LevelLoader {
	opts := leveldata.Options{
		Dir:          c.Level.MapsDir,
		Scale:        c.SpriteScale,
		DefaultSpawn: gamemath.NewVec2(c.Level.SpawnX, c.Level.SpawnY),
		ImageSize:    imageSize,
	}
	return func(name string) (*leveldata.Level, error) {
		return leveldata.Load(fsys, name, opts)
	}
}

// Game runs the frame loop. It is driven from a single goroutine.
type Game struct {
	cfg  cfg.Config
	load LevelLoader

	world  donburi.World
	level  *donburi.Entry
	player *donburi.Entry

	last    time.Duration
	started bool

	// OnLevelChange, if set, is called after a level switch succeeded.
	OnLevelChange func(name string)
}

// New loads the initial map. Failing to load it is fatal.
func New(c cfg.Config, load LevelLoader, initialMap string) (*Game, error) {
	g := &Game{
		cfg:   c,
		load:  load,
		world: donburi.NewWorld(),
	}
	if err := g.SwitchLevel(initialMap); err != nil {
		return nil, fmt.Errorf("initial map: %w", err)
	}
	return g, nil
}

// Frame runs one iteration of the loop at time now, measured from any fixed
// origin. in must already hold this frame's key states.
func (g *Game) Frame(now time.Duration, in *components.InputData) error {
	if in.WasPressed(cfg.ActionQuit) {
		return ErrQuit
	}

	for i, action := range cfg.LevelActions {
		if !in.WasPressed(action) || i >= len(g.cfg.Level.Maps) {
			continue
		}
		name := g.cfg.Level.Maps[i]
		if err := g.SwitchLevel(name); err != nil {
			log.Error().Err(err).Str("map", name).Msg("level switch failed, keeping current level")
			continue
		}
		// The load may have taken a while; don't integrate it.
		g.last = now
		g.started = true
		return nil
	}

	systems.UpdatePlayerInput(g.world, g.cfg, in)

	if !g.started {
		g.last = now
		g.started = true
	}
	elapsed := float64(now-g.last) / float64(time.Millisecond)
	g.last = now

	g.Update(gamemath.ClampElapsed(elapsed, g.cfg.MaxFrameTime()))
	return nil
}

// Update advances the simulation by dt milliseconds.
func (g *Game) Update(dt float64) {
	systems.UpdatePhysics(g.world, g.cfg, dt)
	systems.UpdateCollisions(g.world, g.cfg)
	systems.UpdateAnimations(g.world, dt)
}

// SwitchLevel replaces the current level and player with fresh ones built
// from the named map. On error the current level is kept.
func (g *Game) SwitchLevel(name string) error {
	lvl, err := g.load(name)
	if err != nil {
		return err
	}

	if g.player != nil && g.player.Valid() {
		g.world.Remove(g.player.Entity())
	}
	if g.level != nil && g.level.Valid() {
		g.world.Remove(g.level.Entity())
	}

	g.level = factory.CreateLevel(g.world, lvl)
	g.player = factory.CreatePlayer(g.world, g.cfg, lvl.Spawn)

	log.Info().
		Str("map", name).
		Float64("spawnX", lvl.Spawn.X).
		Float64("spawnY", lvl.Spawn.Y).
		Msg("level started")

	if g.OnLevelChange != nil {
		g.OnLevelChange(name)
	}
	return nil
}

func (g *Game) World() donburi.World { return g.world }

func (g *Game) Config() cfg.Config { return g.cfg }

func (g *Game) Player() *donburi.Entry { return g.player }

func (g *Game) Level() *leveldata.Level {
	return components.Level.Get(g.level).CurrentLevel
}

func (g *Game) Collision() *collision.World {
	return components.Level.Get(g.level).World
}
