package banner

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	"go.uber.org/zap"

	"qrbanner/internal/domain/common/errorz"
)

// Texts carries the caller-supplied strings for the three slots. An
// empty string skips its slot entirely; later slots keep their absolute
// positions.
type Texts struct {
	Title    string
	Subtitle string
	Footer   string
}

func (t Texts) get(slot string) string {
	switch slot {
	case SlotTitle:
		return t.Title
	case SlotSubtitle:
		return t.Subtitle
	case SlotFooter:
		return t.Footer
	}
	return ""
}

// Composer holds the disk font directory and the warn logger for font
// fallbacks. One Composer may serve concurrent renders: every Compose
// call draws into its own context and loads its own font faces.
type Composer struct {
	FontsDir string
	Log      *zap.SugaredLogger
}

// Compose draws one banner: base fill, ordered panels, gradient overlay,
// QR placement, then text slots. The canvas must contain the placed QR
// region in full; otherwise the render fails instead of clipping.
func (c *Composer) Compose(l Layout, qrImg image.Image, texts Texts) (image.Image, error) {
	qrEdge := qrImg.Bounds().Dx()
	w, h := l.Canvas.size(qrEdge)

	place, err := placeQR(l.QRRule, qrEdge, w, h)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(l.Fill)
	dc.Clear()

	for _, p := range l.Panels {
		dc.SetColor(p.Color)
		dc.DrawRectangle(p.X0*float64(w), p.Y0*float64(h), (p.X1-p.X0)*float64(w), (p.Y1-p.Y0)*float64(h))
		dc.Fill()
	}

	if l.Gradient != nil {
		drawGradient(dc, *l.Gradient, w, h)
	}

	drawQR(dc, l.QRRule, qrImg, place)

	for _, slot := range l.Slots {
		text := texts.get(slot.Slot)
		if text == "" {
			continue
		}
		c.drawSlot(dc, slot, text, w, h)
	}

	return dc.Image(), nil
}

// placement is the resolved QR region: size is the drawn edge, either
// the scaled symbol or the card including its padding.
type placement struct {
	x, y, size int
}

func placeQR(r QRRule, qrEdge, w, h int) (placement, error) {
	var p placement
	switch {
	case r.Scale > 0:
		p.size = int(r.Scale * float64(w))
		p.x = (w - p.size) / 2
		p.y = (h - p.size) / 2
	case r.Card != nil:
		p.size = qrEdge + r.Card.Padding
		p.x = (w - p.size) / 2
		p.y = (h-p.size)/2 + r.Card.ShiftY
	default:
		p.size = qrEdge
		p.x = int(r.OffsetFracX * float64(w))
		p.y = int(r.OffsetFracY * float64(h))
	}
	if p.x < 0 || p.y < 0 || p.x+p.size > w || p.y+p.size > h {
		return placement{}, fmt.Errorf("%w: %dpx region at (%d,%d) on %dx%d", errorz.CanvasTooSmall, p.size, p.x, p.y, w, h)
	}
	return p, nil
}

// drawGradient overlays one translucent row per scanline, with opacity
// falling linearly from Attenuation at the top to zero at the bottom.
func drawGradient(dc *gg.Context, g Gradient, w, h int) {
	for y := 0; y < h; y++ {
		alpha := 255 * (1 - float64(y)/float64(h)) * g.Attenuation
		dc.SetRGBA255(int(g.Color.R), int(g.Color.G), int(g.Color.B), int(alpha))
		dc.DrawRectangle(0, float64(y), float64(w), 1)
		dc.Fill()
	}
}

func drawQR(dc *gg.Context, r QRRule, qrImg image.Image, p placement) {
	switch {
	case r.Scale > 0:
		// NearestNeighbor keeps module edges crisp.
		scaled := resize.Resize(uint(p.size), uint(p.size), qrImg, resize.NearestNeighbor)
		dc.DrawImage(scaled, p.x, p.y)
	case r.Card != nil:
		dc.DrawImage(roundedCard(qrImg, *r.Card, p.size), p.x, p.y)
	default:
		dc.DrawImage(qrImg, p.x, p.y)
	}
}

// roundedCard builds the white backing as its own RGBA image: the area
// outside the rounded rectangle stays transparent, which masks the
// corners when the card is composited onto the canvas.
func roundedCard(qrImg image.Image, card Card, size int) image.Image {
	cc := gg.NewContext(size, size)
	cc.DrawRoundedRectangle(0, 0, float64(size), float64(size), card.Radius)
	cc.SetColor(color.White)
	cc.Fill()
	cc.DrawImage(qrImg, card.Padding/2, card.Padding/2)
	return cc.Image()
}
