package api

import (
	"errors"
	"net/http"

	"qrbanner/internal/domain/common/errorz"
	"qrbanner/internal/domain/entity"
	"qrbanner/pkg/banner"
)

type designInfo struct {
	Name     string `json:"name"`
	Geometry string `json:"geometry"`
}

// handleRender streams a freshly composed banner as PNG bytes. Nothing
// is written to disk: each request owns its canvas.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := entity.Request{
		URL:      q.Get("url"),
		Design:   q.Get("design"),
		Title:    q.Get("title"),
		Subtitle: q.Get("subtitle"),
		Footer:   q.Get("footer"),
	}

	data, _, err := s.Render.PNG(req)
	if err != nil {
		status, message := renderErrorStatus(err)
		if status == http.StatusInternalServerError {
			s.Log.Errorf("render failed: %v", err)
		}
		writeError(w, status, message)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// renderErrorStatus maps a render failure to a response. Validation
// failures surface their message; anything else stays server-side and
// the client gets a generic body.
func renderErrorStatus(err error) (int, string) {
	if errors.Is(err, errorz.EmptyURL) || errors.Is(err, errorz.UnsupportedDesign) {
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, "render failed"
}

func (s *Server) handleDesigns(w http.ResponseWriter, r *http.Request) {
	designs := banner.Designs()
	result := make([]designInfo, 0, len(designs))
	for _, l := range designs {
		result = append(result, designInfo{Name: l.Name, Geometry: l.Geometry()})
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
