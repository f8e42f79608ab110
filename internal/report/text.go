// Package report provides plain-text report generation for fire-safety
// equipment inspections.
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/DukeRupert/vigil/internal/domain"
)

// =============================================================================
// Generator
// =============================================================================

// Generator renders an inspection document as a downloadable artifact.
type Generator interface {
	// Generate writes the rendered report and returns the bytes written.
	Generate(ctx context.Context, doc *domain.Inspection, w io.Writer) (int64, error)

	// Format returns the output format (e.g., "txt").
	Format() string
}

// =============================================================================
// TextGenerator
// =============================================================================

// TextGenerator renders the full document as plain text: client info, every
// category with statuses and observations, pressure readings, and the
// equipment registries.
type TextGenerator struct{}

// NewTextGenerator creates a new TextGenerator.
func NewTextGenerator() *TextGenerator {
	return &TextGenerator{}
}

var _ Generator = (*TextGenerator)(nil)

// Format returns "txt".
func (g *TextGenerator) Format() string {
	return "txt"
}

// Generate writes the rendered report.
func (g *TextGenerator) Generate(ctx context.Context, doc *domain.Inspection, w io.Writer) (int64, error) {
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}

	var buf bytes.Buffer

	writeHeader(&buf, doc)
	for i := range doc.Categories {
		writeCategory(&buf, &doc.Categories[i])
	}
	writeRegistries(&buf, doc)

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// =============================================================================
// Sections
// =============================================================================

func writeHeader(buf *bytes.Buffer, doc *domain.Inspection) {
	rule(buf)
	fmt.Fprintf(buf, "FIRE-SAFETY EQUIPMENT INSPECTION\n")
	rule(buf)
	fmt.Fprintf(buf, "Inspection no.: %s\n", orDash(doc.ClientInfo.InspectionNumber))
	fmt.Fprintf(buf, "Location:       %s\n", orDash(doc.ClientInfo.Location))
	fmt.Fprintf(buf, "Client code:    %s\n", orDash(doc.ClientInfo.Code))
	fmt.Fprintf(buf, "Date:           %s\n", orDash(doc.ClientInfo.Date))
	fmt.Fprintf(buf, "Inspector:      %s\n", orDash(doc.Owner))
	buf.WriteByte('\n')
}

func writeCategory(buf *bytes.Buffer, cat *domain.Category) {
	fmt.Fprintf(buf, "%s\n", strings.ToUpper(cat.Name))
	fmt.Fprintf(buf, "%s\n", strings.Repeat("-", len(cat.Name)))

	switch cat.Kind {
	case domain.CategoryKindStandard:
		for _, item := range cat.SubItems {
			fmt.Fprintf(buf, "  [%3s] %s\n", statusLabel(item.Status), item.Name)
			if item.Observation != "" {
				fmt.Fprintf(buf, "        Obs: %s\n", item.Observation)
			}
		}
	case domain.CategoryKindSpecial:
		fmt.Fprintf(buf, "  Status: %s\n", statusLabel(cat.Status))
		if cat.Observation != "" {
			fmt.Fprintf(buf, "  Obs: %s\n", cat.Observation)
		}
	case domain.CategoryKindPressure:
		fmt.Fprintf(buf, "  Reading: %s %s\n", orDash(cat.PressureValue), cat.PressureUnit)
	}
	buf.WriteByte('\n')
}

func writeRegistries(buf *bytes.Buffer, doc *domain.Inspection) {
	if len(doc.Hoses) > 0 {
		fmt.Fprintf(buf, "REGISTERED HOSES\n")
		fmt.Fprintf(buf, "----------------\n")
		for _, h := range doc.Hoses {
			fmt.Fprintf(buf, "  %sx %s %s %s\n",
				h.Quantity, orDash(h.Length), orDash(h.Diameter), orDash(h.Type))
		}
		buf.WriteByte('\n')
	}

	if len(doc.Extinguishers) > 0 {
		fmt.Fprintf(buf, "REGISTERED EXTINGUISHERS\n")
		fmt.Fprintf(buf, "------------------------\n")
		for _, e := range doc.Extinguishers {
			fmt.Fprintf(buf, "  %sx %s %s\n",
				e.Quantity, orDash(e.Type), orDash(e.Weight))
		}
		buf.WriteByte('\n')
	}
}

// =============================================================================
// Helpers
// =============================================================================

func rule(buf *bytes.Buffer) {
	buf.WriteString(strings.Repeat("=", 40))
	buf.WriteByte('\n')
}

func statusLabel(s domain.ItemStatus) string {
	if s == domain.StatusEmpty {
		return "-"
	}
	return string(s)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
