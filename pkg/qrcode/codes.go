package qr

import (
	"image/color"

	"github.com/skip2/go-qrcode"
)

// Default is the baseline symbol configuration shared by the flat designs.
var Default = Config{
	Level:      qrcode.Highest,
	CellSize:   10,
	Border:     2,
	Foreground: color.RGBA{R: 0, G: 0, B: 0, A: 255},
	Background: color.RGBA{R: 255, G: 255, B: 255, A: 255},
}
