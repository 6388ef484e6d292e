// Package report renders detection results as PDF documents.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/riceguard/riceguard-go/internal/errors"
	"github.com/riceguard/riceguard-go/internal/logging"
)

// Data carries everything a report renders. Image paths are optional;
// missing files are skipped rather than failing the report.
type Data struct {
	Disease     string
	Confidence  float64
	Severity    string
	Description string
	Timestamp   string
	Symptoms    []string
	Treatment   []string
	Prevention  []string
	ImagePath   string // original upload on disk
	ResultPath  string // annotated result on disk
}

// Generator writes PDF reports into a configured output directory.
type Generator struct {
	OutputDir string
	logger    *slog.Logger
}

// New returns a Generator writing into outputDir.
func New(outputDir string) *Generator {
	return &Generator{
		OutputDir: outputDir,
		logger:    logging.ForService("report"),
	}
}

// Image dimensions in millimeters, matching a 4x3 inch layout.
const (
	imageWidthMM  = 101.6
	imageHeightMM = 76.2
)

// Generate renders the report and returns the path of the created file.
func (g *Generator) Generate(data Data) (string, error) {
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return "", errors.Wrap(err).
			Component("report").
			Category(errors.CategoryFileIO).
			FileContext(g.OutputDir, -1).
			Build()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	g.writeTitle(pdf)
	g.writeDetails(pdf, data)
	g.writeImage(pdf, "Original Image", data.ImagePath)
	g.writeImage(pdf, "Detection Result", data.ResultPath)
	g.writeList(pdf, "Symptoms Identified", data.Symptoms)
	g.writeList(pdf, "Recommended Treatment", data.Treatment)
	g.writeList(pdf, "Prevention Measures", data.Prevention)

	filename := fmt.Sprintf("report_%s.pdf", uuid.New().String())
	path := filepath.Join(g.OutputDir, filename)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", errors.Wrap(err).
			Component("report").
			Category(errors.CategoryReport).
			FileContext(path, -1).
			Build()
	}

	g.logger.Info("report generated", "path", path, "disease", data.Disease)
	return path, nil
}

func (g *Generator) writeTitle(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 14, "RiceGuard AI - Disease Detection Report", "", 1, "C", false, 0, "")
	pdf.Ln(6)
}

func (g *Generator) writeDetails(pdf *fpdf.Fpdf, data Data) {
	g.writeHeading(pdf, "Detection Details")

	pdf.SetFont("Helvetica", "", 12)
	fields := []struct {
		label string
		value string
	}{
		{"Disease", data.Disease},
		{"Confidence", fmt.Sprintf("%.2f%%", data.Confidence)},
		{"Severity", data.Severity},
		{"Description", data.Description},
		{"Date", orNA(data.Timestamp)},
	}
	for _, field := range fields {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(32, 7, field.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 7, field.value, "", "L", false)
	}
}

func (g *Generator) writeImage(pdf *fpdf.Fpdf, heading, path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		g.logger.Warn("report image missing, skipping", "path", path)
		return
	}

	pdf.Ln(6)
	g.writeHeading(pdf, heading)

	imageType := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if imageType == "jpg" {
		imageType = "jpeg"
	}
	pdf.ImageOptions(path, pdf.GetX(), pdf.GetY(), imageWidthMM, imageHeightMM, true,
		fpdf.ImageOptions{ImageType: imageType}, 0, "")
}

func (g *Generator) writeList(pdf *fpdf.Fpdf, heading string, items []string) {
	if len(items) == 0 {
		return
	}

	pdf.Ln(6)
	g.writeHeading(pdf, heading)

	pdf.SetFont("Helvetica", "", 12)
	for _, item := range items {
		pdf.CellFormat(6, 7, "-", "", 0, "L", false, 0, "")
		pdf.MultiCell(0, 7, item, "", "L", false)
	}
}

func (g *Generator) writeHeading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, text, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
