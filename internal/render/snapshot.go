package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"

	"chart-board/internal/imageio"
	"chart-board/internal/scene"
	"chart-board/pkg/geometry"
)

// ErrEmptyScene is returned when a snapshot of a board with no elements is
// requested.
var ErrEmptyScene = errors.New("nothing to export")

// snapshotMaxPixels bounds the export allocation; at 1:1 scale a runaway
// board would otherwise exhaust memory.
const snapshotMaxPixels = 64 << 20

// Snapshot renders the whole scene at 1:1 scale onto a fresh image: the
// union of all element bounds plus a fixed padding, with the theme
// background and no grid or selection decorations.
func Snapshot(els []scene.Element, cache *ImageCache, pal Palette, padding float64) (*image.RGBA, error) {
	if len(els) == 0 {
		return nil, ErrEmptyScene
	}

	bounds := els[0].Bounds()
	for _, el := range els[1:] {
		bounds = bounds.Union(el.Bounds())
	}
	bounds = bounds.Expand(padding)

	w := int(math.Ceil(bounds.Width))
	h := int(math.Ceil(bounds.Height))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w*h > snapshotMaxPixels {
		return nil, fmt.Errorf("snapshot too large: %dx%d", w, h)
	}

	cam := geometry.Camera{Scale: 1, Pan: geometry.NewPoint2D(-bounds.X, -bounds.Y)}
	r := NewRenderer(cache)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(pal.Background), image.Point{}, draw.Src)
	for _, el := range els {
		r.drawElement(dst, el, cam, pal)
	}
	return dst, nil
}

// SnapshotPNG renders the scene and encodes it as PNG bytes.
func SnapshotPNG(els []scene.Element, cache *ImageCache, pal Palette, padding float64) ([]byte, error) {
	img, err := Snapshot(els, cache, pal, padding)
	if err != nil {
		return nil, err
	}
	return imageio.EncodePNG(img)
}
