// Package ingestion turns uploaded resume files into plain text.
package ingestion

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Upload limits
const (
	MaxResumeBytes = 5 << 20
	MinResumeChars = 50
)

// Kind is a supported resume format.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
	KindDOC  Kind = "doc"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeDOC  = "application/msword"
)

var (
	// ErrUnsupportedType is returned for files that are not PDF or Word documents.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrUnreadable is returned when too little text could be extracted.
	ErrUnreadable = errors.New("could not read resume text")
)

// Document is the text extracted from one upload.
type Document struct {
	Kind Kind
	Text string
	Hash string // sha256 of the raw upload
	Size int
}

// DetectKind classifies an upload by extension, declared content type or content sniffing.
func DetectKind(filename, contentType string, data []byte) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	ct := strings.ToLower(contentType)
	sniffed := mimetype.Detect(data)

	switch {
	case ext == ".pdf" || strings.Contains(ct, "pdf") || sniffed.Is(mimePDF):
		return KindPDF, nil
	case ext == ".docx" || strings.Contains(ct, "officedocument") || sniffed.Is(mimeDOCX):
		return KindDOCX, nil
	case ext == ".doc" || strings.Contains(ct, "msword") || sniffed.Is(mimeDOC):
		return KindDOC, nil
	default:
		return "", ErrUnsupportedType
	}
}

// ExtractResume detects the upload's format and extracts its text.
// Text shorter than MinResumeChars is reported as ErrUnreadable.
func ExtractResume(filename, contentType string, data []byte) (*Document, error) {
	kind, err := DetectKind(filename, contentType, data)
	if err != nil {
		return nil, err
	}

	var raw string
	switch kind {
	case KindPDF:
		raw, err = extractPDF(data)
	default:
		// Legacy .doc files that are not OOXML fail here and surface as unreadable.
		raw, err = extractDOCX(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	text := CleanText(raw)
	if len([]rune(text)) < MinResumeChars {
		return nil, ErrUnreadable
	}

	sum := sha256.Sum256(data)
	return &Document{
		Kind: kind,
		Text: text,
		Hash: hex.EncodeToString(sum[:]),
		Size: len(data),
	}, nil
}

func extractPDF(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return string(b), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("docx: %w", err)
	}
	defer doc.Close()

	return docxPlainText(doc.Editable().GetContent())
}

// docxPlainText collects the w:t runs of each WordprocessingML paragraph.
// Line breaks (w:br, w:cr) become newlines and run tabs become spaces; tab
// stop definitions under w:pPr are skipped. Each paragraph ends with a newline.
func docxPlainText(xml string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(xml))
	if err != nil {
		return "", fmt.Errorf("docx xml: %w", err)
	}

	var b strings.Builder
	doc.Find(`w\:p`).Each(func(_ int, p *goquery.Selection) {
		p.Find(`w\:t, w\:br, w\:cr, w\:tab`).Each(func(_ int, s *goquery.Selection) {
			// Nested paragraphs (text boxes) are written by their own pass.
			if !s.Closest(`w\:p`).IsSelection(p) || s.ParentsFiltered(`w\:ppr`).Length() > 0 {
				return
			}
			switch goquery.NodeName(s) {
			case "w:t":
				b.WriteString(s.Text())
			case "w:tab":
				b.WriteString(" ")
			default:
				b.WriteString("\n")
			}
		})
		b.WriteString("\n")
	})
	return b.String(), nil
}
