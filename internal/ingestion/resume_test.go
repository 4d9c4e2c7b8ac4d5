package ingestion

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = "Priya Sharma, Data Analyst. Skills: Python, SQL, Tableau. Built dashboards used by 40 teams."

func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">` + p + `</w:t></w:r></w:p>`)
	}
	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func buildPDF(t *testing.T, text string) []byte {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 10, text)
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		data        []byte
		want        Kind
		wantErr     bool
	}{
		{"pdf by extension", "cv.PDF", "application/octet-stream", nil, KindPDF, false},
		{"pdf by content type", "upload", "application/pdf", nil, KindPDF, false},
		{"pdf by magic bytes", "upload", "", []byte("%PDF-1.4\n"), KindPDF, false},
		{"docx by extension", "cv.docx", "", nil, KindDOCX, false},
		{"docx by content type", "cv", mimeDOCX, nil, KindDOCX, false},
		{"doc by extension", "cv.doc", "", nil, KindDOC, false},
		{"doc by content type", "cv", mimeDOC, nil, KindDOC, false},
		{"plain text rejected", "cv.txt", "text/plain", []byte("hello"), "", true},
		{"image rejected", "cv.png", "image/png", nil, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectKind(tt.filename, tt.contentType, tt.data)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractResume_DOCX(t *testing.T) {
	data := buildDOCX(t, "Priya Sharma &amp; Co", sampleResume)

	doc, err := ExtractResume("resume.docx", mimeDOCX, data)
	require.NoError(t, err)
	assert.Equal(t, KindDOCX, doc.Kind)
	assert.Contains(t, doc.Text, "Priya Sharma & Co\n")
	assert.Contains(t, doc.Text, "Tableau")
	assert.Len(t, doc.Hash, 64)
	assert.Equal(t, len(data), doc.Size)
}

func TestExtractResume_PDF(t *testing.T) {
	doc, err := ExtractResume("resume.pdf", "application/pdf", buildPDF(t, sampleResume))
	require.NoError(t, err)
	assert.Equal(t, KindPDF, doc.Kind)
	assert.Contains(t, doc.Text, "Tableau")
}

func TestExtractResume_TooShort(t *testing.T) {
	_, err := ExtractResume("resume.docx", "", buildDOCX(t, "Too short"))
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestExtractResume_Corrupt(t *testing.T) {
	_, err := ExtractResume("resume.pdf", "application/pdf", []byte("%PDF-1.4 garbage"))
	assert.ErrorIs(t, err, ErrUnreadable)

	_, err = ExtractResume("resume.docx", "", []byte("not a zip"))
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestExtractResume_Unsupported(t *testing.T) {
	_, err := ExtractResume("notes.txt", "text/plain", []byte(sampleResume))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestDocxPlainText(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want string
	}{
		{
			name: "tabs breaks and entities",
			xml:  `<w:p><w:r><w:t>A</w:t><w:tab/><w:t>B</w:t></w:r></w:p><w:p><w:r><w:t>C &lt;3</w:t><w:br/><w:t>D</w:t></w:r></w:p>`,
			want: "A B\nC <3\nD\n",
		},
		{
			name: "attributed breaks and carriage returns",
			xml: `<w:p><w:r><w:t>Senior</w:t></w:r><w:r><w:br w:type="textWrapping"/><w:t>Engineer</w:t></w:r>` +
				`<w:r><w:cr/><w:t>Go</w:t></w:r><w:r><w:tab w:val="left"/><w:t>Python</w:t></w:r></w:p>`,
			want: "Senior\nEngineer\nGo Python\n",
		},
		{
			name: "tab stops in paragraph properties",
			xml:  `<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr><w:r><w:t>Skills</w:t></w:r></w:p>`,
			want: "Skills\n",
		},
		{
			name: "text outside runs is ignored",
			xml:  `<w:body><w:sectPr>layout</w:sectPr><w:p><w:r><w:t>Only</w:t></w:r></w:p></w:body>`,
			want: "Only\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := docxPlainText(tt.xml)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractResume_DOCXLineBreaks(t *testing.T) {
	data := buildDOCX(t, `Senior</w:t></w:r><w:r><w:br w:type="textWrapping"/><w:t>Engineer with eight years of Go, Kubernetes and Postgres experience`)
	doc, err := ExtractResume("resume.docx", "", data)
	require.NoError(t, err)
	assert.Contains(t, doc.Text, "Senior\nEngineer")
	assert.NotContains(t, doc.Text, "SeniorEngineer")
}
