package banner

import (
	"path/filepath"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// drawSlot paints one text band. Slot coordinates address the top of the
// band, so the baseline is pushed down by the face ascent.
func (c *Composer) drawSlot(dc *gg.Context, s TextSlot, text string, w, h int) {
	face := c.face(s.Font, s.Points)
	dc.SetFontFace(face)
	dc.SetColor(s.Color)

	x := s.X
	if s.CenterX {
		tw, _ := dc.MeasureString(text)
		x = (float64(w) - tw) / 2
	}
	y := s.Y
	if s.FromBottom {
		y = float64(h) - s.Y
	}
	dc.DrawString(text, x, y+float64(face.Metrics().Ascent.Ceil()))
}

// face loads the slot font from FontsDir, falling back to the embedded
// Go Regular face when the asset is missing or unreadable. A missing
// font never aborts a render.
func (c *Composer) face(file string, points float64) font.Face {
	path := filepath.Join(c.FontsDir, file)
	f, err := gg.LoadFontFace(path, points)
	if err == nil {
		return f
	}
	if c.Log != nil {
		c.Log.Warnf("font %s unavailable, using built-in face: %v", path, err)
	}
	return goFace(points)
}

func goFace(points float64) font.Face {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
