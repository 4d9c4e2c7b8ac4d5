package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/rendering"
	"github.com/jonathan/career-coach/internal/types"
)

// handleRoadmapPDF renders the posted roadmap as a PDF attachment.
func (s *Server) handleRoadmapPDF(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	var req types.RoadmapPDFRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, invalid(err, "roadmap is required"))
		return
	}

	var buf bytes.Buffer
	if err := rendering.RoadmapPDF(&buf, req.Roadmap, rendering.PDFOptions{}); err != nil {
		s.fail(w, r, fmt.Errorf("render roadmap pdf: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=roadmap-%s.pdf", uuid.New()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Warn("write roadmap pdf failed", "error", err)
	}
}
