package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScreenConfig contains window configuration values
type ScreenConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// PlayerConfig contains all player-related tuning values. Speeds are in
// pixels per millisecond and gravity in pixels per millisecond squared.
type PlayerConfig struct {
	WalkSpeed  float64 `yaml:"walkSpeed"`
	JumpSpeed  float64 `yaml:"jumpSpeed"`
	Gravity    float64 `yaml:"gravity"`
	GravityCap float64 `yaml:"gravityCap"`

	// Dimensions of one sprite sheet frame, before scaling
	FrameWidth  int `yaml:"frameWidth"`
	FrameHeight int `yaml:"frameHeight"`

	SpriteSheet   string  `yaml:"spriteSheet"`
	FrameDuration float64 `yaml:"frameDuration"` // ms per animation frame
}

// LoopConfig contains frame loop timing values
type LoopConfig struct {
	FPS int `yaml:"fps"`
	// MaxFrames bounds one integration step to this many target frame periods.
	MaxFrames int `yaml:"maxFrames"`
}

// LevelConfig contains map loading configuration values
type LevelConfig struct {
	MapsDir    string   `yaml:"mapsDir"`
	InitialMap string   `yaml:"initialMap"`
	Maps       []string `yaml:"maps"` // level switch slots, in key order
	SpawnX     float64  `yaml:"spawnX"`
	SpawnY     float64  `yaml:"spawnY"`
	// SlopeBias lifts the body above the slope line so it sits on it visually.
	SlopeBias float64 `yaml:"slopeBias"`
}

// Config is the immutable game configuration. It is built once at startup
// and passed by value to everything that needs it.
type Config struct {
	Screen      ScreenConfig `yaml:"screen"`
	SpriteScale float64      `yaml:"spriteScale"`
	Player      PlayerConfig `yaml:"player"`
	Loop        LoopConfig   `yaml:"loop"`
	Level       LevelConfig  `yaml:"level"`
	Debug       bool         `yaml:"debug"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Screen: ScreenConfig{
			Width:  640,
			Height: 480,
			Title:  "Cavestory",
		},
		SpriteScale: 2,
		Player: PlayerConfig{
			WalkSpeed:     0.2,
			JumpSpeed:     0.7,
			Gravity:       0.002,
			GravityCap:    0.8,
			FrameWidth:    16,
			FrameHeight:   16,
			SpriteSheet:   "sprites/MyChar.png",
			FrameDuration: 100,
		},
		Loop: LoopConfig{
			FPS:       50,
			MaxFrames: 5,
		},
		Level: LevelConfig{
			MapsDir:    "maps",
			InitialMap: "Map 1",
			Maps:       []string{"Map 1", "Map 2"},
			SpawnX:     100,
			SpawnY:     100,
			SlopeBias:  8,
		},
	}
}

// Load reads a YAML file and overlays it onto the defaults. Keys absent from
// the file keep their default value.
func Load(path string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Validate reports every value that would make the simulation misbehave.
func (c Config) Validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size %dx%d must be positive", c.Screen.Width, c.Screen.Height))
	}
	if c.SpriteScale <= 0 {
		errs = append(errs, fmt.Errorf("spriteScale %g must be positive", c.SpriteScale))
	}
	if c.Player.FrameWidth <= 0 || c.Player.FrameHeight <= 0 {
		errs = append(errs, fmt.Errorf("player frame %dx%d must be positive", c.Player.FrameWidth, c.Player.FrameHeight))
	}
	if c.Player.FrameDuration <= 0 {
		errs = append(errs, fmt.Errorf("player frameDuration %g must be positive", c.Player.FrameDuration))
	}
	if c.Player.Gravity < 0 {
		errs = append(errs, fmt.Errorf("player gravity %g must not be negative", c.Player.Gravity))
	}
	if c.Loop.FPS <= 0 {
		errs = append(errs, fmt.Errorf("loop fps %d must be positive", c.Loop.FPS))
	}
	if c.Loop.MaxFrames <= 0 {
		errs = append(errs, fmt.Errorf("loop maxFrames %d must be positive", c.Loop.MaxFrames))
	}
	if c.Level.InitialMap == "" {
		errs = append(errs, errors.New("level initialMap must be set"))
	}
	return errors.Join(errs...)
}

// FramePeriod returns the target frame period in milliseconds.
func (c Config) FramePeriod() float64 {
	return 1000 / float64(c.Loop.FPS)
}

// MaxFrameTime returns the longest elapsed time, in milliseconds, a single
// update is allowed to integrate.
func (c Config) MaxFrameTime() float64 {
	return float64(c.Loop.MaxFrames) * c.FramePeriod()
}

// PlayerSize returns the scaled size of the player's bounding box.
func (c Config) PlayerSize() (w, h float64) {
	return float64(c.Player.FrameWidth) * c.SpriteScale, float64(c.Player.FrameHeight) * c.SpriteScale
}
