package assets

import (
	"fmt"
	"image"
	_ "image/png"
	"io/fs"

	"github.com/automoto/cavestory/shared/gamemath"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

type frameKey struct {
	path string
	src  image.Rectangle
}

// Textures loads images from a file system once and hands out the cached
// copy afterwards.
type Textures struct {
	fsys   fs.FS
	images map[string]*ebiten.Image
	frames map[frameKey]*ebiten.Image
}

func NewTextures(fsys fs.FS) *Textures {
	return &Textures{
		fsys:   fsys,
		images: make(map[string]*ebiten.Image),
		frames: make(map[frameKey]*ebiten.Image),
	}
}

// Load returns the image at path, decoding it on first use.
func (t *Textures) Load(path string) (*ebiten.Image, error) {
	if img, ok := t.images[path]; ok {
		return img, nil
	}

	f, err := t.fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := ebitenutil.NewImageFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	t.images[path] = img
	return img, nil
}

// Frame returns the part of the image at path covered by src.
func (t *Textures) Frame(path string, src gamemath.Rect) (*ebiten.Image, error) {
	r := image.Rect(int(src.X), int(src.Y), int(src.Right()), int(src.Bottom()))
	key := frameKey{path: path, src: r}
	if img, ok := t.frames[key]; ok {
		return img, nil
	}

	sheet, err := t.Load(path)
	if err != nil {
		return nil, err
	}
	img := sheet.SubImage(r).(*ebiten.Image)
	t.frames[key] = img
	return img, nil
}

// ImageSize reads only the header of the image at path.
func ImageSize(fsys fs.FS, path string) (w, h int, err error) {
	f, err := fsys.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}
