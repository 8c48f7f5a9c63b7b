package editor

import (
	"log"
	"strings"
	"unicode/utf8"

	"chart-board/internal/imageio"
	"chart-board/internal/scene"
	"chart-board/pkg/geometry"
)

// Imported images are scaled down so their longest edge fits this many
// world units.
const maxImportEdge = 400.0

// AddText commits a new text element at a world point using the session's
// font defaults. Empty content adds nothing.
func (s *Session) AddText(at geometry.Point2D, content string) *scene.Text {
	if content == "" {
		return nil
	}

	t := &scene.Text{
		ID:         scene.NewID(),
		Kind:       scene.KindText,
		X:          at.X,
		Y:          at.Y,
		Content:    content,
		FontSize:   s.fontSize,
		FontFamily: s.fontFamily,
		Bold:       s.bold,
		Italic:     s.italic,
		Align:      s.align,
		Style:      s.style,
	}
	t.Width, t.Height = s.measure(t)

	s.state.Scene.Add(t)
	s.state.Scene.SelectOnly(t.ID)
	s.commit()
	s.emitSelection()
	s.revertToolAfterCommit()
	return t
}

// UpdateText replaces a text element's content and re-measures it.
// Emptying the content deletes the element.
func (s *Session) UpdateText(id, content string) {
	t, _ := s.state.Scene.Get(id).(*scene.Text)
	if t == nil {
		return
	}

	if content == "" {
		s.state.Scene.Remove(id)
		s.commit()
		s.emitSelection()
		return
	}

	t.Content = content
	t.Width, t.Height = s.measure(t)
	s.commitIfChanged()
}

// AddImage commits a new image element centered on a world point, scaled
// down to the import limit. Undecodable data still inserts a default-sized
// element; the renderer skips it until it can be decoded.
func (s *Session) AddImage(at geometry.Point2D, data []byte) *scene.Image {
	w, h := importedSize(data)

	img := &scene.Image{
		ID:     scene.NewID(),
		Kind:   scene.KindImage,
		X:      at.X - w/2,
		Y:      at.Y - h/2,
		Width:  w,
		Height: h,
		Data:   data,
		Style:  s.style,
	}

	s.state.Scene.Add(img)
	s.state.Scene.SelectOnly(img.ID)
	s.commit()
	s.emitSelection()
	s.revertToolAfterCommit()
	return img
}

// SetImageData fills a drawn placeholder with encoded image bytes. The
// bitmap is fitted inside the drawn box preserving aspect ratio; a
// zero-extent placeholder takes the natural (capped) size instead.
func (s *Session) SetImageData(id string, data []byte) {
	img, _ := s.state.Scene.Get(id).(*scene.Image)
	if img == nil {
		return
	}

	img.Data = data
	natW, natH := importedSize(data)
	if img.Width < 1 || img.Height < 1 {
		img.Width, img.Height = natW, natH
	} else if natW > 0 && natH > 0 {
		fit := img.Width / natW
		if other := img.Height / natH; other < fit {
			fit = other
		}
		img.Width = natW * fit
		img.Height = natH * fit
	}

	s.commitIfChanged()
}

// importedSize probes the encoded data and returns the display extent,
// longest edge capped at the import limit.
func importedSize(data []byte) (w, h float64) {
	pw, ph, err := imageio.ProbeSize(data)
	if err != nil || pw <= 0 || ph <= 0 {
		log.Printf("image probe failed: %v", err)
		return 200, 150
	}

	w, h = float64(pw), float64(ph)
	longest := w
	if h > longest {
		longest = h
	}
	if longest > maxImportEdge {
		f := maxImportEdge / longest
		w *= f
		h *= f
	}
	return w, h
}

// estimateTextSize is the headless text measurer: a character-count
// estimate used until the render layer installs the exact one.
func estimateTextSize(t *scene.Text) (w, h float64) {
	lines := strings.Split(t.Content, "\n")
	longest := 0
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > longest {
			longest = n
		}
	}
	return float64(longest) * t.FontSize * 0.6, float64(len(lines)) * t.FontSize * 1.3
}
