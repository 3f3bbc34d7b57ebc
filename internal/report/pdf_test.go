package report

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ficotempo/competency-exam/internal/exam/scoring"
)

func TestNewGeneratorParsesTemplate(t *testing.T) {
	gen, err := NewGenerator(0, zerolog.New(io.Discard))

	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, gen.timeout, "zero timeout falls back to default")
}

func TestResultTemplateRendersAllFields(t *testing.T) {
	gen, err := NewGenerator(5*time.Second, zerolog.New(io.Discard))
	require.NoError(t, err)

	data := Data{
		FullName:   "Budi Santoso",
		Contact:    "budi@example.com",
		PrintedAt:  "14-03-2026 09:30",
		FinalScore: 82,
		Verdict:    "KOMPETEN",
		Summary:    "Kompeten. Pertahankan kinerja Anda.",
		Categories: []scoring.CategoryScore{
			{CategoryID: uuid.New(), Label: "Keselamatan", Score: 90, FullMark: 100},
			{CategoryID: uuid.New(), Label: "Operasional", Score: 74, FullMark: 100},
		},
	}

	var out bytes.Buffer
	require.NoError(t, gen.tmpl.Execute(&out, data))

	html := out.String()
	assert.Contains(t, html, "Budi Santoso")
	assert.Contains(t, html, "KOMPETEN")
	assert.Contains(t, html, "Keselamatan")
	assert.Contains(t, html, "Operasional")
	assert.Contains(t, html, "82")
}

func TestResultTemplateEscapesParticipantInput(t *testing.T) {
	gen, err := NewGenerator(5*time.Second, zerolog.New(io.Discard))
	require.NoError(t, err)

	data := Data{
		FullName: `<script>alert("x")</script>`,
		Contact:  "-",
	}

	var out bytes.Buffer
	require.NoError(t, gen.tmpl.Execute(&out, data))

	assert.NotContains(t, out.String(), "<script>alert")
}
