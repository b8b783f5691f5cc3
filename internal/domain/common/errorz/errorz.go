package errorz

import "errors"

var (
	EmptyURL          = errors.New("url cannot be empty")
	UnsupportedDesign = errors.New("unsupported design")
	CanvasTooSmall    = errors.New("canvas too small for qr placement")
	DuplicateOutput   = errors.New("duplicate output path")
)
