package rendering

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jonathan/career-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRoadmap() *types.Roadmap {
	return &types.Roadmap{Milestones: []types.Milestone{
		{
			Title:       "Python Foundations",
			Description: "Variables, control flow and functions.",
			Resources:   []types.Resource{{Title: "Python Docs", URL: "https://docs.python.org/3/tutorial/"}},
			Certificate: "PCEP",
		},
		{
			Title:       "SQL \u2013 Joins",
			Description: "Join tables and aggregate.",
		},
	}}
}

func TestRoadmapPDF_Content(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RoadmapPDF(&buf, sampleRoadmap(), PDFOptions{Uncompressed: true}))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	for _, want := range []string{
		RoadmapTitle,
		"Step 1: Python Foundations",
		"Resources:",
		"- Python Docs: https://docs.python.org/3/tutorial/",
		"Certificate: PCEP",
		"Step 2: SQL - Joins",
	} {
		assert.Contains(t, string(out), want)
	}
	assert.Equal(t, 1, bytes.Count(out, []byte("Resources:")), "milestones without resources get no heading")
	assert.Equal(t, 1, bytes.Count(out, []byte("Certificate:")))
}

func TestRoadmapPDF_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RoadmapPDF(&buf, &types.Roadmap{}, PDFOptions{Uncompressed: true}))
	assert.Contains(t, buf.String(), RoadmapTitle)
	assert.NotContains(t, buf.String(), "Step 1")
}

func TestRoadmapPDF_Compressed(t *testing.T) {
	var plain, compressed bytes.Buffer
	require.NoError(t, RoadmapPDF(&plain, sampleRoadmap(), PDFOptions{Uncompressed: true}))
	require.NoError(t, RoadmapPDF(&compressed, sampleRoadmap(), PDFOptions{}))
	assert.True(t, bytes.HasPrefix(compressed.Bytes(), []byte("%PDF-")))
	assert.NotContains(t, compressed.String(), "Step 1: Python Foundations")
}

func TestRoadmapPDF_NilRoadmap(t *testing.T) {
	err := RoadmapPDF(&bytes.Buffer{}, nil, PDFOptions{})
	var re *RenderError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "roadmap is required", re.Message)
}
