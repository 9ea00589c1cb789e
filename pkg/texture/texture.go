// Package texture rasterizes the sticker images referenced by the
// document's textures: one PNG per resource key, laid out on a 4x3 net
// with one rounded sticker per color starting at the second column of the
// middle row.
package texture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"runtime"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"golang.org/x/sync/errgroup"

	"github.com/chazu/twisty/pkg/palette"
)

// DefaultResolution is the edge length of one net cell in pixels.
const DefaultResolution = 256

const (
	columns = 4
	rows    = 3

	radiusFactor  = 0.2
	outlineFactor = 0.08
)

// ErrResolution is returned for non-positive resolutions.
var ErrResolution = errors.New("texture: resolution must be positive")

// background is the net color outside the stickers and their outlines.
var background = color.RGBA{A: 255}

// FileName returns the file a resource is stored in.
func FileName(key string) string {
	return key + ".png"
}

// Render draws the net for colors t at res pixels per cell.
func Render(t palette.Tuple, res int) (*image.RGBA, error) {
	if res <= 0 {
		return nil, ErrResolution
	}
	if len(t) == 0 || len(t) > columns-1 {
		return nil, fmt.Errorf("texture: need 1 to %d colors, got %d", columns-1, len(t))
	}

	img := image.NewRGBA(image.Rect(0, 0, columns*res, rows*res))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)

	radius := float64(int(radiusFactor * float64(res)))
	outline := float64(int(outlineFactor * float64(res)))
	half := v2.Vec{X: float64(res) / 2, Y: float64(res) / 2}

	for i, c := range t {
		fill, err := c.RGB()
		if err != nil {
			return nil, err
		}
		cell := image.Rect((i+1)*res, res, (i+2)*res, 2*res)
		center := v2.Vec{X: float64(cell.Min.X), Y: float64(cell.Min.Y)}.Add(half)
		for y := cell.Min.Y; y < cell.Max.Y; y++ {
			for x := cell.Min.X; x < cell.Max.X; x++ {
				p := v2.Vec{X: float64(x) + 0.5, Y: float64(y) + 0.5}.Sub(center)
				if roundedBox(p, half, radius) <= -outline {
					img.SetRGBA(x, y, fill)
				}
			}
		}
	}
	return img, nil
}

// roundedBox is the signed distance from p to a box of half size h whose
// corners are rounded by r. Negative inside.
func roundedBox(p, h v2.Vec, r float64) float64 {
	q := p.Abs().Sub(h).Add(v2.Vec{X: r, Y: r})
	outside := v2.Vec{X: math.Max(q.X, 0), Y: math.Max(q.Y, 0)}.Length()
	inside := math.Min(math.Max(q.X, q.Y), 0)
	return outside + inside - r
}

// Encode writes img as PNG to path, replacing any existing file.
func Encode(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	return png.Encode(f, img)
}

// WriteAll renders every catalog resource into dir and returns the paths in
// catalog order. Files are rendered concurrently.
func WriteAll(ctx context.Context, dir string, c *palette.Catalog, res int) ([]string, error) {
	if res <= 0 {
		return nil, ErrResolution
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}

	resources := c.Resources()
	paths := make([]string, len(resources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, r := range resources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := Render(r.Colors, res)
			if err != nil {
				return fmt.Errorf("texture %s: %w", r.Key, err)
			}
			path := filepath.Join(dir, FileName(r.Key))
			if err := Encode(path, img); err != nil {
				return fmt.Errorf("texture %s: %w", r.Key, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
