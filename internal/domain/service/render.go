package service

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"qrbanner/internal/domain/entity"
	"qrbanner/internal/domain/utils/validator"
	"qrbanner/pkg/banner"
)

// DefaultDesign is used when a request does not name one.
const DefaultDesign = "card"

type RenderService struct {
	composer  *banner.Composer
	outputDir string
	log       *zap.SugaredLogger
}

func NewRenderService(composer *banner.Composer, outputDir string, log *zap.SugaredLogger) *RenderService {
	return &RenderService{
		composer:  composer,
		outputDir: outputDir,
		log:       log,
	}
}

// Render composes the banner and writes it as a PNG, creating the parent
// directory if needed. Re-running with the same inputs overwrites the
// same file with identical bytes.
func (s *RenderService) Render(req entity.Request) (*entity.Result, error) {
	img, l, err := s.compose(req)
	if err != nil {
		return nil, err
	}

	path := s.resolveOutput(req.Output, l)
	if dir := filepath.Dir(path); dir != "." {
		if err = os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, img); err != nil {
		return nil, err
	}
	if err = os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("write output %s: %w", path, err)
	}

	bounds := img.Bounds()
	s.log.Infof("rendered %s design to %s (%dx%d)", l.Name, path, bounds.Dx(), bounds.Dy())
	return &entity.Result{Path: path, Width: bounds.Dx(), Height: bounds.Dy()}, nil
}

// PNG composes the banner in memory without touching the filesystem,
// for serve mode.
func (s *RenderService) PNG(req entity.Request) ([]byte, *entity.Result, error) {
	img, _, err := s.compose(req)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, img); err != nil {
		return nil, nil, err
	}

	bounds := img.Bounds()
	return buf.Bytes(), &entity.Result{Width: bounds.Dx(), Height: bounds.Dy()}, nil
}

// compose validates the request and draws the banner. Validation runs
// before any image allocation.
func (s *RenderService) compose(req entity.Request) (image.Image, banner.Layout, error) {
	if err := validator.Request(req); err != nil {
		return nil, banner.Layout{}, err
	}

	design := req.Design
	if design == "" {
		design = DefaultDesign
	}
	l, err := banner.Get(design)
	if err != nil {
		return nil, banner.Layout{}, err
	}

	qrCfg := l.QR
	qrCfg.Content = req.URL
	qrImg, err := qrCfg.Image()
	if err != nil {
		return nil, banner.Layout{}, err
	}

	img, err := s.composer.Compose(l, qrImg, banner.Texts{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Footer:   req.Footer,
	})
	if err != nil {
		return nil, banner.Layout{}, err
	}
	return img, l, nil
}

// resolveOutput keeps an explicit path as given; otherwise the file
// lands under the output directory, named after the design.
func (s *RenderService) resolveOutput(output string, l banner.Layout) string {
	if output != "" {
		return output
	}
	return filepath.Join(s.outputDir, l.Name+"_qr.png")
}
