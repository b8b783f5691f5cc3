package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"qrbanner/internal/domain/common/errorz"
	"qrbanner/internal/domain/entity"
)

// BatchEntry is one render in a manifest. Empty fields inherit from the
// manifest defaults.
type BatchEntry struct {
	URL      string `yaml:"url"`
	Design   string `yaml:"design"`
	Output   string `yaml:"output"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Footer   string `yaml:"footer"`
}

// Manifest is the batch input file.
type Manifest struct {
	Defaults BatchEntry   `yaml:"defaults"`
	Renders  []BatchEntry `yaml:"renders"`
}

type BatchService struct {
	render  *RenderService
	workers int
	log     *zap.SugaredLogger
}

func NewBatchService(render *RenderService, workers int, log *zap.SugaredLogger) *BatchService {
	if workers <= 0 {
		workers = 4
	}
	return &BatchService{
		render:  render,
		workers: workers,
		log:     log,
	}
}

// Run renders every manifest entry on a fixed pool of workers. Renders
// share no state, so entries fail independently; every entry is
// attempted and the first failure is reported at the end.
func (s *BatchService) Run(manifestPath string) error {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest %s: %w", manifestPath, err)
	}
	var m Manifest
	if err = yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse manifest %s: %w", manifestPath, err)
	}

	reqs, err := s.resolve(m)
	if err != nil {
		return err
	}

	jobs := make(chan entity.Request)
	failures := make(chan error, len(reqs))

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range jobs {
				if _, renderErr := s.render.Render(req); renderErr != nil {
					s.log.Errorf("render %s failed: %v", req.Output, renderErr)
					failures <- renderErr
				}
			}
		}()
	}

	for _, req := range reqs {
		jobs <- req
	}
	close(jobs)
	wg.Wait()
	close(failures)

	failed := 0
	var first error
	for failure := range failures {
		if first == nil {
			first = failure
		}
		failed++
	}
	if first != nil {
		return fmt.Errorf("%d of %d renders failed: %w", failed, len(reqs), first)
	}

	s.log.Infof("batch complete: %d renders", len(reqs))
	return nil
}

// resolve merges defaults into every entry and fixes each output path up
// front so duplicates are rejected before any render starts. Entries
// without an output get a unique name under the output directory.
func (s *BatchService) resolve(m Manifest) ([]entity.Request, error) {
	seen := make(map[string]struct{}, len(m.Renders))
	reqs := make([]entity.Request, 0, len(m.Renders))
	for _, e := range m.Renders {
		merged := mergeEntry(e, m.Defaults)

		design := merged.Design
		if design == "" {
			design = DefaultDesign
		}
		output := merged.Output
		if output == "" {
			output = filepath.Join(s.render.outputDir, fmt.Sprintf("%s_%s.png", design, uuid.New().String()))
		}
		if _, dup := seen[output]; dup {
			return nil, fmt.Errorf("%w: %s", errorz.DuplicateOutput, output)
		}
		seen[output] = struct{}{}

		reqs = append(reqs, entity.Request{
			URL:      merged.URL,
			Design:   design,
			Output:   output,
			Title:    merged.Title,
			Subtitle: merged.Subtitle,
			Footer:   merged.Footer,
		})
	}
	return reqs, nil
}

func mergeEntry(e, d BatchEntry) BatchEntry {
	if e.URL == "" {
		e.URL = d.URL
	}
	if e.Design == "" {
		e.Design = d.Design
	}
	if e.Title == "" {
		e.Title = d.Title
	}
	if e.Subtitle == "" {
		e.Subtitle = d.Subtitle
	}
	if e.Footer == "" {
		e.Footer = d.Footer
	}
	return e
}
