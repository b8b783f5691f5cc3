package qr

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/skip2/go-qrcode"

	"qrbanner/internal/domain/common/errorz"
)

// Config describes a single QR symbol: the encoded content plus rendering
// knobs. CellSize is pixels per module, Border is the quiet zone width in
// modules.
type Config struct {
	Content    string
	Level      qrcode.RecoveryLevel
	CellSize   int
	Border     int
	Foreground color.Color
	Background color.Color
}

func (c Config) withDefaults() Config {
	if c.CellSize <= 0 {
		c.CellSize = 10
	}
	if c.Border <= 0 {
		c.Border = 2
	}
	if c.Foreground == nil {
		c.Foreground = color.Black
	}
	if c.Background == nil {
		c.Background = color.White
	}
	return c
}

// Image encodes Content and renders the symbol at exactly CellSize pixels
// per module, framed in a Border-modules quiet zone of the background
// color. The resulting image edge is (modules + 2*Border) * CellSize.
func (c Config) Image() (image.Image, error) {
	if c.Content == "" {
		return nil, errorz.EmptyURL
	}
	c = c.withDefaults()

	code, err := qrcode.New(c.Content, c.Level)
	if err != nil {
		return nil, err
	}
	code.DisableBorder = true
	code.ForegroundColor = c.Foreground
	code.BackgroundColor = c.Background

	// With the built-in border disabled the bitmap is module-exact, so
	// sizing the render to modules*CellSize keeps every module crisp.
	modules := len(code.Bitmap())
	inner := code.Image(modules * c.CellSize)

	total := (modules + 2*c.Border) * c.CellSize
	dc := gg.NewContext(total, total)
	dc.SetColor(c.Background)
	dc.Clear()
	dc.DrawImage(inner, c.Border*c.CellSize, c.Border*c.CellSize)

	return dc.Image(), nil
}

// Text renders the symbol as a half-block string for terminal preview.
func (c Config) Text() (string, error) {
	if c.Content == "" {
		return "", errorz.EmptyURL
	}
	code, err := qrcode.New(c.Content, c.Level)
	if err != nil {
		return "", err
	}
	return code.ToSmallString(false), nil
}
