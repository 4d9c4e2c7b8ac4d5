package rendering

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/jonathan/career-coach/internal/types"
)

// RoadmapTitle heads every roadmap document.
const RoadmapTitle = "Personalized Learning Roadmap"

const (
	pageMargin  = 50.0
	titleSize   = 20.0
	headingSize = 14.0
	bodySize    = 12.0
)

// PDFOptions tunes document output.
type PDFOptions struct {
	// Uncompressed disables stream compression, which keeps page text greppable.
	Uncompressed bool
}

// RoadmapPDF writes roadmap as an A4 PDF to w.
func RoadmapPDF(w io.Writer, roadmap *types.Roadmap, opts PDFOptions) error {
	if roadmap == nil {
		return &RenderError{Message: "roadmap is required"}
	}

	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetCompression(!opts.Uncompressed)
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.SetTitle(RoadmapTitle, true)
	doc.SetCreator("career-coach", true)
	doc.AddPage()

	tr := doc.UnicodeTranslatorFromDescriptor("")
	text := func(size float64, s string, align string) {
		doc.SetFont("Helvetica", "", size)
		doc.MultiCell(0, size*1.25, tr(FoldText(s)), "", align, false)
	}

	text(titleSize, RoadmapTitle, "C")
	doc.Ln(bodySize)

	for i, m := range roadmap.Milestones {
		text(headingSize, fmt.Sprintf("Step %d: %s", i+1, m.Title), "L")
		text(bodySize, m.Description, "L")
		if len(m.Resources) > 0 {
			doc.Ln(bodySize * 0.3)
			text(bodySize, "Resources:", "L")
			for _, r := range m.Resources {
				text(bodySize, fmt.Sprintf("- %s: %s", r.Title, r.URL), "L")
			}
		}
		if m.Certificate != "" {
			doc.Ln(bodySize * 0.3)
			text(bodySize, "Certificate: "+m.Certificate, "L")
		}
		doc.Ln(bodySize)
	}

	if err := doc.Output(w); err != nil {
		return &RenderError{Message: "failed to write pdf", Cause: err}
	}
	return nil
}
