package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/DukeRupert/vigil/internal/checklist"
	"github.com/DukeRupert/vigil/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() domain.Inspection {
	doc := domain.Inspection{
		ID: "1700000000000",
		ClientInfo: domain.ClientInfo{
			Location:         "Pier 4 warehouse",
			Code:             "00217",
			InspectionNumber: "00217-2026-08",
			Date:             "2026-08-31",
		},
		Categories: checklist.Categories(),
		Owner:      "Dana Reyes",
	}

	ci := doc.CategoryIndex("extinguishers")
	doc.Categories[ci].SubItems[0].Status = domain.StatusOK
	doc.Categories[ci].SubItems[1].Status = domain.StatusNotCompliant
	doc.Categories[ci].SubItems[1].Observation = "seal broken on unit 3"

	pi := doc.CategoryIndex("pump")
	doc.Categories[pi].Status = domain.StatusOK
	doc.Categories[pi].Observation = "minor oil residue"

	pr := doc.CategoryIndex("pressure")
	doc.Categories[pr].PressureValue = "125"
	doc.Categories[pr].PressureUnit = domain.PressureUnitPSI

	doc.Hoses = []domain.HoseEntry{
		{ID: "h1", Quantity: "2", Length: "20m", Diameter: "1 1/2\"", Type: "Type 2"},
	}
	doc.Extinguishers = []domain.ExtinguisherEntry{
		{ID: "e1", Quantity: "4", Type: "PQS ABC", Weight: "6kg"},
	}
	return doc
}

func render(t *testing.T, doc domain.Inspection) string {
	t.Helper()
	var buf bytes.Buffer
	n, err := NewTextGenerator().Generate(context.Background(), &doc, &buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)
	return buf.String()
}

func TestTextGenerator_Header(t *testing.T) {
	out := render(t, sampleDoc())

	assert.Contains(t, out, "FIRE-SAFETY EQUIPMENT INSPECTION")
	assert.Contains(t, out, "00217-2026-08")
	assert.Contains(t, out, "Pier 4 warehouse")
	assert.Contains(t, out, "2026-08-31")
	assert.Contains(t, out, "Dana Reyes")
}

func TestTextGenerator_AllCategoriesPresent(t *testing.T) {
	doc := sampleDoc()
	out := render(t, doc)

	for _, c := range doc.Categories {
		assert.Contains(t, out, strings.ToUpper(c.Name))
	}
}

func TestTextGenerator_StatusesAndObservations(t *testing.T) {
	out := render(t, sampleDoc())

	assert.Contains(t, out, "[ OK]")
	assert.Contains(t, out, "[N/C]")
	assert.Contains(t, out, "seal broken on unit 3")
	assert.Contains(t, out, "minor oil residue")
	assert.Contains(t, out, "125 psi")
}

func TestTextGenerator_EmptyStatusRendersDash(t *testing.T) {
	out := render(t, sampleDoc())
	// Untouched sub-items show a dash placeholder.
	assert.Contains(t, out, "[  -]")
}

func TestTextGenerator_Registries(t *testing.T) {
	out := render(t, sampleDoc())

	assert.Contains(t, out, "REGISTERED HOSES")
	assert.Contains(t, out, "2x 20m")
	assert.Contains(t, out, "REGISTERED EXTINGUISHERS")
	assert.Contains(t, out, "4x PQS ABC 6kg")
}

func TestTextGenerator_EmptyRegistriesOmitted(t *testing.T) {
	doc := sampleDoc()
	doc.Hoses = nil
	doc.Extinguishers = nil
	out := render(t, doc)

	assert.NotContains(t, out, "REGISTERED HOSES")
	assert.NotContains(t, out, "REGISTERED EXTINGUISHERS")
}

func TestTextGenerator_Format(t *testing.T) {
	assert.Equal(t, "txt", NewTextGenerator().Format())
}
