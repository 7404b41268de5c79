package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/automoto/cavestory/assets"
	"github.com/automoto/cavestory/config"
	"github.com/automoto/cavestory/fonts"
	"github.com/automoto/cavestory/game"
	"github.com/automoto/cavestory/render"
	"github.com/automoto/cavestory/scenes"
	"github.com/automoto/cavestory/shared/leveldata"
	"github.com/automoto/cavestory/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Debug  bool   `help:"Enable debug logging and the collision overlay."`
	Config string `help:"YAML file overriding the default configuration." type:"existingfile"`
	Assets string `help:"Directory holding maps, tilesets and sprites." default:"Resources" type:"existingdir"`
	Map    string `help:"Map to start on. Defaults to the last map played."`
	List   bool   `help:"List the maps in the assets directory and exit."`
}

type Scene interface {
	Update() error
	Draw(screen *ebiten.Image)
}

type Game struct {
	scene  Scene
	width  int
	height int
}

func (g *Game) Update() error {
	return g.scene.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return g.width, g.height
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	kong.Parse(&CLI,
		kong.Name("cavestory"),
		kong.Description("a small cave story style platformer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	if err := run(); err != nil {
		writeError(err)
	}
}

func run() error {
	c := config.Default()
	if CLI.Config != "" {
		loaded, err := config.Load(CLI.Config)
		if err != nil {
			return err
		}
		c = loaded
	}
	if CLI.Debug {
		c.Debug = true
	}

	resources := os.DirFS(CLI.Assets)

	if CLI.List {
		names, err := leveldata.DiscoverMaps(resources, c.Level.MapsDir)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	if err := fonts.LoadDefaults(); err != nil {
		return err
	}

	persistence, err := systems.InitPersistence("cavestory")
	if err != nil {
		log.Warn().Err(err).Msg("could not initialize persistence")
	}

	load := game.NewLevelLoader(c, resources, assets.ImageSize)
	g, err := startGame(c, load, persistence)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(c.Screen.Width, c.Screen.Height)
	ebiten.SetWindowTitle(c.Screen.Title)
	ebiten.SetTPS(c.Loop.FPS)

	scene := scenes.NewPlatformerScene(g, render.NewRenderer(assets.NewTextures(resources)), persistence)
	err = ebiten.RunGame(&Game{scene: scene, width: c.Screen.Width, height: c.Screen.Height})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// startGame picks the first map: the one asked for on the command line,
// else the last one played, else the configured default.
func startGame(c config.Config, load game.LevelLoader, p *systems.Persistence) (*game.Game, error) {
	if CLI.Map != "" {
		return game.New(c, load, CLI.Map)
	}

	if saved := p.LoadProgress(); saved != nil && saved.LastMap != "" {
		g, err := game.New(c, load, saved.LastMap)
		if err == nil {
			return g, nil
		}
		log.Warn().Err(err).Str("map", saved.LastMap).Msg("cannot resume last map")
	}
	return game.New(c, load, c.Level.InitialMap)
}
