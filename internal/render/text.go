package render

import (
	"image"
	"image/color"
	"log"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"chart-board/internal/scene"
)

// lineSpacing is the line height as a multiple of the font size.
const lineSpacing = 1.3

// fontVariant selects one of the embedded Go fonts.
type fontVariant struct {
	family scene.FontFamily
	bold   bool
	italic bool
}

var (
	parsedFonts   = make(map[fontVariant]*opentype.Font)
	parsedFontsMu sync.Mutex
)

// parsedFont parses and caches the embedded TTF for a variant.
func parsedFont(v fontVariant) *opentype.Font {
	parsedFontsMu.Lock()
	defer parsedFontsMu.Unlock()

	if f, ok := parsedFonts[v]; ok {
		return f
	}

	var ttf []byte
	if v.family == scene.FontMono {
		switch {
		case v.bold && v.italic:
			ttf = gomonobolditalic.TTF
		case v.bold:
			ttf = gomonobold.TTF
		case v.italic:
			ttf = gomonoitalic.TTF
		default:
			ttf = gomono.TTF
		}
	} else {
		switch {
		case v.bold && v.italic:
			ttf = gobolditalic.TTF
		case v.bold:
			ttf = gobold.TTF
		case v.italic:
			ttf = goitalic.TTF
		default:
			ttf = goregular.TTF
		}
	}

	f, err := opentype.Parse(ttf)
	if err != nil {
		// The embedded fonts always parse; this guards a corrupted build.
		log.Printf("parse embedded font: %v", err)
		return nil
	}
	parsedFonts[v] = f
	return f
}

type faceKey struct {
	fontVariant
	// Size in 1/4 pixel quanta, so zooming does not thrash the cache.
	sizeQ int
}

// faceCache caches opentype faces per variant and quantized pixel size.
// Faces are not safe for concurrent use, but the renderer is single-threaded
// by contract; the lock only protects cache structure against the exporter.
type faceCache struct {
	mu    sync.Mutex
	faces map[faceKey]font.Face
}

var faces = &faceCache{faces: make(map[faceKey]font.Face)}

const faceCacheLimit = 64

func (fc *faceCache) get(t *scene.Text, sizePx float64) font.Face {
	if sizePx < 1 {
		sizePx = 1
	}
	key := faceKey{
		fontVariant: fontVariant{family: t.FontFamily, bold: t.Bold, italic: t.Italic},
		sizeQ:       int(sizePx * 4),
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()

	if f, ok := fc.faces[key]; ok {
		return f
	}

	parsed := parsedFont(key.fontVariant)
	if parsed == nil {
		return nil
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(key.sizeQ) / 4,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Printf("build font face: %v", err)
		return nil
	}

	if len(fc.faces) >= faceCacheLimit {
		fc.faces = make(map[faceKey]font.Face)
	}
	fc.faces[key] = face
	return face
}

// MeasureText returns the world-space extent of a text element at its
// stored font attributes. It is the exact measurer installed into the
// session, replacing the character-count estimate.
func MeasureText(t *scene.Text) (w, h float64) {
	face := faces.get(t, t.FontSize)
	if face == nil {
		return 0, 0
	}

	lines := strings.Split(t.Content, "\n")
	var widest fixed.Int26_6
	for _, line := range lines {
		if adv := font.MeasureString(face, line); adv > widest {
			widest = adv
		}
	}
	return fixed26ToFloat(widest), float64(len(lines)) * t.FontSize * lineSpacing
}

// drawText renders a text element's lines at the stored alignment. x/y is
// the screen-space top-left of the text box, boxW its screen width, scale
// the camera scale.
func drawText(dst *image.RGBA, t *scene.Text, x, y, boxW, scale float64, col color.RGBA) {
	face := faces.get(t, t.FontSize*scale)
	if face == nil {
		return
	}

	metrics := face.Metrics()
	lineH := t.FontSize * lineSpacing * scale
	src := image.NewUniform(col)

	for i, line := range strings.Split(t.Content, "\n") {
		if line == "" {
			continue
		}

		lx := x
		if t.Align != scene.AlignLeft {
			lineW := fixed26ToFloat(font.MeasureString(face, line))
			switch t.Align {
			case scene.AlignCenter:
				lx = x + (boxW-lineW)/2
			case scene.AlignRight:
				lx = x + boxW - lineW
			}
		}

		baseline := y + float64(i)*lineH + fixed26ToFloat(metrics.Ascent)
		d := font.Drawer{
			Dst:  dst,
			Src:  src,
			Face: face,
			Dot:  fixed.Point26_6{X: floatToFixed26(lx), Y: floatToFixed26(baseline)},
		}
		d.DrawString(line)
	}
}

func fixed26ToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed26(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
