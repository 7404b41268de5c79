package scenes

import (
	"errors"
	"image/color"
	"time"

	"github.com/automoto/cavestory/components"
	"github.com/automoto/cavestory/game"
	"github.com/automoto/cavestory/render"
	"github.com/automoto/cavestory/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog/log"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// fadeSeconds is how long the screen takes to fade in after a level switch.
const fadeSeconds = 0.4

// PlatformerScene feeds keyboard state into the game and draws it.
type PlatformerScene struct {
	game        *game.Game
	renderer    *render.Renderer
	persistence *systems.Persistence

	input components.InputData
	start time.Time

	fade      *gween.Tween
	fadeAlpha float32
}

func NewPlatformerScene(g *game.Game, r *render.Renderer, p *systems.Persistence) *PlatformerScene {
	ps := &PlatformerScene{
		game:        g,
		renderer:    r,
		persistence: p,
		start:       time.Now(),
	}
	g.OnLevelChange = ps.levelChanged
	return ps
}

func (ps *PlatformerScene) Update() error {
	ps.pollInput()

	if err := ps.game.Frame(time.Since(ps.start), &ps.input); err != nil {
		if errors.Is(err, game.ErrQuit) {
			return ebiten.Termination
		}
		return err
	}

	if ps.fade != nil {
		alpha, done := ps.fade.Update(1 / float32(ebiten.TPS()))
		ps.fadeAlpha = alpha
		if done {
			ps.fade = nil
			ps.fadeAlpha = 0
		}
	}
	return nil
}

func (ps *PlatformerScene) pollInput() {
	ps.input.BeginFrame()
	for action, keys := range Bindings {
		for _, key := range keys {
			if ebiten.IsKeyPressed(key) {
				ps.input.Set(action, true)
			}
		}
	}
}

func (ps *PlatformerScene) levelChanged(name string) {
	ps.fade = gween.New(1, 0, fadeSeconds, ease.OutQuad)
	ps.fadeAlpha = 1

	if err := ps.persistence.SaveProgress(systems.SavedProgress{LastMap: name}); err != nil {
		log.Warn().Err(err).Str("map", name).Msg("progress not saved")
	}
}

func (ps *PlatformerScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	ps.renderer.Draw(screen, ps.game)

	if ps.fadeAlpha > 0 {
		w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
		vector.FillRect(screen, 0, 0, float32(w), float32(h), color.RGBA{A: uint8(ps.fadeAlpha * 255)}, false)
	}
}
