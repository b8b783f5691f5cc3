package banner

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/skip2/go-qrcode"

	"qrbanner/internal/domain/common/errorz"
	qr "qrbanner/pkg/qrcode"
)

// Slot ids for the three text bands every design understands.
const (
	SlotTitle    = "title"
	SlotSubtitle = "subtitle"
	SlotFooter   = "footer"
)

// CanvasRule fixes the canvas size outright, or derives it from the QR
// edge as (edge+Margin) scaled by AspectW x AspectH.
type CanvasRule struct {
	Width   int
	Height  int
	Margin  int
	AspectW float64
	AspectH float64
}

func (r CanvasRule) size(qrEdge int) (int, int) {
	if r.Width > 0 {
		return r.Width, r.Height
	}
	base := float64(qrEdge + r.Margin)
	return int(base * r.AspectW), int(base * r.AspectH)
}

// Panel is an axis-aligned rectangle in canvas-fraction coordinates.
// Panels paint in declaration order, later ones over earlier ones, so
// corner overlap is deterministic.
type Panel struct {
	X0, Y0, X1, Y1 float64
	Color          color.RGBA
}

// Gradient is a top-to-bottom linear alpha overlay: Attenuation of the
// color at row zero, fading to nothing at the bottom edge.
type Gradient struct {
	Color       color.RGBA
	Attenuation float64
}

// Card is the white rounded-corner backing behind the QR symbol.
type Card struct {
	Padding int
	Radius  float64
	ShiftY  int
}

// QRRule places the symbol: Scale > 0 resizes it to Scale*canvas width
// and centers it; Card keeps the native size on a centered rounded
// backing; otherwise the native bitmap is pasted at the fractional
// offset.
type QRRule struct {
	Scale       float64
	Card        *Card
	OffsetFracX float64
	OffsetFracY float64
}

// TextSlot positions one text band. X/Y address the top-left of the band
// in pixels; FromBottom anchors Y up from the bottom edge instead, and
// CenterX replaces X with measured horizontal centering.
type TextSlot struct {
	Slot       string
	Font       string
	Points     float64
	Color      color.Color
	X, Y       float64
	CenterX    bool
	FromBottom bool
}

// Layout is the complete recipe for one design.
type Layout struct {
	Name     string
	QR       qr.Config
	Canvas   CanvasRule
	Fill     color.RGBA
	Panels   []Panel
	Gradient *Gradient
	QRRule   QRRule
	Slots    []TextSlot
}

var (
	panelBlue   = color.RGBA{R: 66, G: 133, B: 244, A: 255}
	panelRed    = color.RGBA{R: 234, G: 67, B: 53, A: 255}
	panelYellow = color.RGBA{R: 251, G: 188, B: 5, A: 255}
	panelGreen  = color.RGBA{R: 52, G: 168, B: 83, A: 255}

	white      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black      = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	nearBlack  = color.RGBA{R: 2, G: 4, B: 10, A: 255}
	moduleCyan = color.RGBA{R: 0, G: 200, B: 230, A: 255}
	accentCyan = color.RGBA{R: 0, G: 230, B: 255, A: 255}
)

// quadrants is the shared flat-design background: draw order top, left,
// right, bottom.
var quadrants = []Panel{
	{0, 0, 1, 0.25, panelBlue},
	{0, 0, 0.25, 1, panelRed},
	{0.75, 0, 1, 1, panelYellow},
	{0, 0.75, 1, 1, panelGreen},
}

var layouts = map[string]Layout{
	"flat-small": {
		Name:   "flat-small",
		QR:     qr.Config{Level: qrcode.Highest, CellSize: 10, Border: 2, Foreground: panelBlue, Background: white},
		Canvas: CanvasRule{Width: 500, Height: 500},
		Fill:   white,
		Panels: quadrants,
		QRRule: QRRule{Scale: 0.5},
		Slots: []TextSlot{
			{Slot: SlotTitle, Font: "CaviarDreams.ttf", Points: 40, Color: white, X: 10, Y: 10},
			{Slot: SlotSubtitle, Font: "ORGANICAL.ttf", Points: 50, Color: black, X: 20, Y: 90},
			{Slot: SlotFooter, Font: "CaviarDreams.ttf", Points: 40, Color: white, X: 60, Y: 390},
		},
	},
	"flat-large": {
		Name:   "flat-large",
		QR:     qr.Config{Level: qrcode.Highest, CellSize: 10, Border: 2, Foreground: panelBlue, Background: white},
		Canvas: CanvasRule{Width: 800, Height: 800},
		Fill:   white,
		Panels: quadrants,
		QRRule: QRRule{Scale: 0.5},
		Slots: []TextSlot{
			{Slot: SlotTitle, Font: "PatchworkStitchlings.ttf", Points: 50, Color: white, X: 10, Y: 10},
			{Slot: SlotSubtitle, Font: "ORGANICAL.ttf", Points: 50, Color: white, X: 20, Y: 110},
			{Slot: SlotFooter, Font: "PatchworkStitchlings.ttf", Points: 40, Color: white, X: 200, Y: 650},
		},
	},
	"card": {
		Name:     "card",
		QR:       qr.Config{Level: qrcode.Highest, CellSize: 10, Border: 2, Foreground: moduleCyan, Background: white},
		Canvas:   CanvasRule{Margin: 200, AspectW: 1.2, AspectH: 1.6},
		Fill:     nearBlack,
		Gradient: &Gradient{Color: accentCyan, Attenuation: 0.05},
		QRRule:   QRRule{Card: &Card{Padding: 40, Radius: 30, ShiftY: 30}},
		Slots: []TextSlot{
			{Slot: SlotTitle, Font: "CaviarDreams.ttf", Points: 120, Color: accentCyan, Y: 80, CenterX: true},
			{Slot: SlotSubtitle, Font: "CaviarDreams.ttf", Points: 45, Color: color.RGBA{R: 255, G: 255, B: 255, A: 220}, Y: 220, CenterX: true},
			{Slot: SlotFooter, Font: "CaviarDreams.ttf", Points: 35, Color: color.RGBA{R: 0, G: 230, B: 255, A: 200}, Y: 100, CenterX: true, FromBottom: true},
		},
	},
	"ticket": {
		Name:   "ticket",
		QR:     qr.Config{Level: qrcode.Medium, CellSize: 12, Border: 2, Foreground: black, Background: white},
		Canvas: CanvasRule{Margin: 90, AspectW: 1.5, AspectH: 1.5},
		Fill:   panelYellow,
		// One third of the pre-scale panel edge, as a canvas fraction.
		QRRule: QRRule{OffsetFracX: 2.0 / 9, OffsetFracY: 2.0 / 9},
		Slots: []TextSlot{
			{Slot: SlotTitle, Font: "CaviarDreams.ttf", Points: 60, Color: white, X: 10, Y: 10},
			{Slot: SlotSubtitle, Font: "CaviarDreams_italic.ttf", Points: 35, Color: white, X: 10, Y: 105},
			{Slot: SlotFooter, Font: "CaviarDreams.ttf", Points: 60, Color: white, X: 30, Y: 85, FromBottom: true},
		},
	},
}

var aliases = map[string]string{
	"custom-card": "card",
}

// Get resolves a design id (or alias) to its layout.
func Get(design string) (Layout, error) {
	id := strings.ToLower(strings.TrimSpace(design))
	if canonical, ok := aliases[id]; ok {
		id = canonical
	}
	l, ok := layouts[id]
	if !ok {
		return Layout{}, fmt.Errorf("%w: %q", errorz.UnsupportedDesign, design)
	}
	return l, nil
}

// Designs returns every built-in layout sorted by name.
func Designs() []Layout {
	out := make([]Layout, 0, len(layouts))
	for _, l := range layouts {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Geometry describes the canvas size for listings.
func (l Layout) Geometry() string {
	if l.Canvas.Width > 0 {
		return fmt.Sprintf("%dx%d", l.Canvas.Width, l.Canvas.Height)
	}
	return fmt.Sprintf("(qr+%d) scaled x%.1f wide, x%.1f tall", l.Canvas.Margin, l.Canvas.AspectW, l.Canvas.AspectH)
}
