package banner

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"go.uber.org/zap"

	"qrbanner/internal/domain/common/errorz"
)

func newTestComposer() *Composer {
	return &Composer{FontsDir: "testdata/fonts", Log: zap.NewNop().Sugar()}
}

// solidImage stands in for a QR bitmap where module content is irrelevant.
func solidImage(edge int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, edge, edge))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func diffInRect(a, b image.Image, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if rgbaAt(a, x, y) != rgbaAt(b, x, y) {
				n++
			}
		}
	}
	return n
}

func TestComposeFlatSmall(t *testing.T) {
	l, err := Get("flat-small")
	if err != nil {
		t.Fatal(err)
	}

	img, err := newTestComposer().Compose(l, solidImage(290, white), Texts{})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	b := img.Bounds()
	if b.Dx() != 500 || b.Dy() != 500 {
		t.Fatalf("Expected 500x500, got %dx%d", b.Dx(), b.Dy())
	}

	// Quadrant panels, including the deterministic corner overlap: left
	// paints over top, right over top, bottom over both.
	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"top band", 250, 60, panelBlue},
		{"left band", 60, 250, panelRed},
		{"right band", 440, 250, panelYellow},
		{"bottom band", 250, 440, panelGreen},
		{"top-left corner", 10, 10, panelRed},
		{"top-right corner", 490, 10, panelYellow},
		{"bottom-left corner", 10, 490, panelGreen},
		{"bottom-right corner", 490, 490, panelGreen},
		{"qr center", 250, 250, white},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rgbaAt(img, tt.x, tt.y); got != tt.want {
				t.Errorf("Pixel (%d,%d): expected %v, got %v", tt.x, tt.y, tt.want, got)
			}
		})
	}
}

func TestComposeFlatQRScaled(t *testing.T) {
	l, err := Get("flat-small")
	if err != nil {
		t.Fatal(err)
	}

	// A black source makes the scaled 250x250 block easy to locate.
	img, err := newTestComposer().Compose(l, solidImage(290, black), Texts{})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if got := rgbaAt(img, 130, 130); got != black {
		t.Errorf("Expected scaled QR at (130,130), got %v", got)
	}
	if got := rgbaAt(img, 369, 369); got != black {
		t.Errorf("Expected scaled QR at (369,369), got %v", got)
	}
	if got := rgbaAt(img, 120, 250); got != panelRed {
		t.Errorf("Expected left panel just outside the QR block, got %v", got)
	}
}

func TestComposeCard(t *testing.T) {
	l, err := Get("card")
	if err != nil {
		t.Fatal(err)
	}

	img, err := newTestComposer().Compose(l, solidImage(290, white), Texts{})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	// Canvas derives from the QR edge: (290+200) x 1.2 by x 1.6.
	b := img.Bounds()
	if b.Dx() != 588 || b.Dy() != 784 {
		t.Fatalf("Expected 588x784, got %dx%d", b.Dx(), b.Dy())
	}

	// Card region: 330px, centered with the +30 vertical shift.
	if got := rgbaAt(img, 294, 422); got != white {
		t.Errorf("Expected white card center, got %v", got)
	}
	// The rounded mask keeps the card corner dark.
	if got := rgbaAt(img, 130, 258); got == white {
		t.Error("Expected masked card corner, got white")
	}
	// Bottom rows are below the gradient's reach: pure base fill.
	if got := rgbaAt(img, 2, 781); got != nearBlack {
		t.Errorf("Expected base fill at bottom edge, got %v", got)
	}
}

func TestComposeCardTitleCentered(t *testing.T) {
	l, err := Get("card")
	if err != nil {
		t.Fatal(err)
	}

	img, err := newTestComposer().Compose(l, solidImage(290, white), Texts{Title: "Hi"})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	// Some pixel of the 120pt title must land solid cyan near y=80,
	// horizontally centered.
	w := img.Bounds().Dx()
	found := false
	for y := 80; y < 240 && !found; y++ {
		for x := w/2 - 160; x < w/2+160; x++ {
			if rgbaAt(img, x, y) == accentCyan {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("Expected cyan title pixels near y=80")
	}
}

func TestComposeTicket(t *testing.T) {
	l, err := Get("ticket")
	if err != nil {
		t.Fatal(err)
	}

	img, err := newTestComposer().Compose(l, solidImage(300, white), Texts{})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	// (300+90) * 1.5 square panel.
	b := img.Bounds()
	if b.Dx() != 585 || b.Dy() != 585 {
		t.Fatalf("Expected 585x585, got %dx%d", b.Dx(), b.Dy())
	}
	if got := rgbaAt(img, 10, 560); got != panelYellow {
		t.Errorf("Expected yellow panel, got %v", got)
	}
	// Native paste at the one-third offset: 585*2/9 = 130.
	if got := rgbaAt(img, 131, 131); got != white {
		t.Errorf("Expected pasted QR at (131,131), got %v", got)
	}
}

func TestComposeEmptySlotSkipped(t *testing.T) {
	l, err := Get("flat-small")
	if err != nil {
		t.Fatal(err)
	}
	c := newTestComposer()
	qrImg := solidImage(290, white)

	without, err := c.Compose(l, qrImg, Texts{Title: "Go", Footer: "team"})
	if err != nil {
		t.Fatal(err)
	}
	with, err := c.Compose(l, qrImg, Texts{Title: "Go", Subtitle: "review", Footer: "team"})
	if err != nil {
		t.Fatal(err)
	}

	// The subtitle band only changes when subtitle text is present.
	subtitleBand := image.Rect(20, 90, 300, 150)
	if diffInRect(without, with, subtitleBand) == 0 {
		t.Error("Expected subtitle pixels in the subtitle band")
	}
	// The footer keeps its absolute position either way: no reflow.
	footerBand := image.Rect(60, 390, 400, 450)
	if n := diffInRect(without, with, footerBand); n != 0 {
		t.Errorf("Footer band changed by %d pixels when subtitle was added", n)
	}
}

func TestComposeIdempotent(t *testing.T) {
	l, err := Get("card")
	if err != nil {
		t.Fatal(err)
	}
	c := newTestComposer()
	texts := Texts{Title: "Hi", Subtitle: "scan me", Footer: "made with go"}

	var first, second bytes.Buffer
	for i, buf := range []*bytes.Buffer{&first, &second} {
		img, composeErr := c.Compose(l, solidImage(290, white), texts)
		if composeErr != nil {
			t.Fatalf("Compose %d failed: %v", i, composeErr)
		}
		if err = png.Encode(buf, img); err != nil {
			t.Fatalf("Encode %d failed: %v", i, err)
		}
	}

	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("Two composes of the same inputs produced different bytes")
	}
}

func TestComposeCanvasTooSmall(t *testing.T) {
	l := Layout{
		Name:   "cramped",
		Canvas: CanvasRule{Width: 100, Height: 100},
		Fill:   white,
		QRRule: QRRule{Card: &Card{Padding: 40, Radius: 30}},
	}

	_, err := newTestComposer().Compose(l, solidImage(290, white), Texts{})
	if !errors.Is(err, errorz.CanvasTooSmall) {
		t.Errorf("Expected CanvasTooSmall, got %v", err)
	}
}

func TestComposeFontFallback(t *testing.T) {
	l, err := Get("flat-small")
	if err != nil {
		t.Fatal(err)
	}

	// FontsDir points nowhere: every slot falls back to the embedded face.
	c := &Composer{FontsDir: "testdata/no-such-dir", Log: zap.NewNop().Sugar()}
	img, err := c.Compose(l, solidImage(290, white), Texts{Title: "Go", Subtitle: "review", Footer: "team"})
	if err != nil {
		t.Fatalf("Compose failed on missing fonts: %v", err)
	}
	if img == nil {
		t.Fatal("Expected an image")
	}
}
