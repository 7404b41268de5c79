// Package render draws the simulation with ebitengine. It only reads game
// state.
package render

import (
	"fmt"
	"image/color"

	"github.com/automoto/cavestory/assets"
	"github.com/automoto/cavestory/components"
	"github.com/automoto/cavestory/fonts"
	"github.com/automoto/cavestory/game"
	"github.com/automoto/cavestory/shared/gamemath"
	"github.com/automoto/cavestory/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog/log"
	"github.com/yohamta/donburi"
)

var (
	drawOp = &ebiten.DrawImageOptions{}

	solidColor  = color.RGBA{100, 100, 100, 255}
	slopeColor  = color.RGBA{0, 255, 0, 255}
	playerColor = color.RGBA{0, 0, 255, 255}
	textColor   = color.RGBA{255, 255, 255, 255}
)

type Renderer struct {
	textures *assets.Textures
	// paths that already failed to load, reported once
	missing map[string]bool
}

func NewRenderer(textures *assets.Textures) *Renderer {
	return &Renderer{textures: textures, missing: make(map[string]bool)}
}

// Draw renders the level, then the player, then the debug overlay if
// enabled.
func (r *Renderer) Draw(screen *ebiten.Image, g *game.Game) {
	r.DrawLevel(screen, g)
	r.DrawPlayer(screen, g.World())
	if g.Config().Debug {
		DrawDebug(screen, g)
	}
}

func (r *Renderer) DrawLevel(screen *ebiten.Image, g *game.Game) {
	for _, tile := range g.Level().Tiles {
		img := r.frame(tile.Tileset.ImagePath, tile.Source)
		if img == nil {
			continue
		}
		blit(screen, img, tile.Source, tile.Dest, gamemath.Vec2{})
	}
}

func (r *Renderer) DrawPlayer(screen *ebiten.Image, w donburi.World) {
	tags.Player.Each(w, func(e *donburi.Entry) {
		anim := components.Animation.Get(e)
		if anim.Controller == nil || !anim.Controller.Visible() {
			return
		}
		src, offset, ok := anim.Controller.Frame()
		if !ok {
			return
		}
		img := r.frame(anim.SpriteSheet, src)
		if img == nil {
			return
		}
		blit(screen, img, src, components.Object.Get(e).BoundingBox(), offset)
	})
}

func (r *Renderer) frame(path string, src gamemath.Rect) *ebiten.Image {
	img, err := r.textures.Frame(path, src)
	if err != nil {
		if !r.missing[path] {
			r.missing[path] = true
			log.Error().Err(err).Str("texture", path).Msg("cannot draw texture")
		}
		return nil
	}
	return img
}

// blit stretches src onto dst, shifted by offset.
func blit(screen, img *ebiten.Image, src, dst gamemath.Rect, offset gamemath.Vec2) {
	drawOp.GeoM.Reset()
	drawOp.GeoM.Scale(dst.W/src.W, dst.H/src.H)
	drawOp.GeoM.Translate(float64(int(dst.X+offset.X)), float64(int(dst.Y+offset.Y)))
	screen.DrawImage(img, drawOp)
}

// DrawDebug outlines the collision geometry and the player's bounding box.
func DrawDebug(screen *ebiten.Image, g *game.Game) {
	world := g.Collision()
	for _, rect := range world.Rectangles() {
		outline(screen, rect, solidColor)
	}
	for _, s := range world.Slopes() {
		vector.StrokeLine(screen, float32(s.P1.X), float32(s.P1.Y), float32(s.P2.X), float32(s.P2.Y), 1, slopeColor, false)
	}

	player := g.Player()
	obj := components.Object.Get(player)
	physics := components.Physics.Get(player)
	outline(screen, obj.BoundingBox(), playerColor)

	face := fonts.Debug.Get()
	lines := []string{
		fmt.Sprintf("map %s", g.Level().Name),
		fmt.Sprintf("pos %.1f, %.1f", obj.X, obj.Y),
		fmt.Sprintf("speed %.3f, %.3f", physics.SpeedX, physics.SpeedY),
		fmt.Sprintf("grounded %t", physics.Grounded),
		fmt.Sprintf("tps %.0f", ebiten.ActualTPS()),
	}
	for i, line := range lines {
		text.Draw(screen, line, face, 8, 16+i*14, textColor)
	}
}

func outline(screen *ebiten.Image, r gamemath.Rect, c color.Color) {
	x, y, w, h := float32(r.X), float32(r.Y), float32(r.W), float32(r.H)
	vector.FillRect(screen, x, y, w, 1, c, false)     // Top
	vector.FillRect(screen, x, y+h-1, w, 1, c, false) // Bottom
	vector.FillRect(screen, x, y, 1, h, c, false)     // Left
	vector.FillRect(screen, x+w-1, y, 1, h, c, false) // Right
}
