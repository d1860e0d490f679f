package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

var errNothingToExport = errors.New("nothing to export")

// ExportToTXT writes the whole drawing, as it appears on screen, to a
// text file.
func (c *Canvas) ExportToTXT(filename string) error {
	minP, maxP, ok := drawingBounds(c.shapes, c.inProgress)
	if !ok {
		return errNothingToExport
	}
	padding := 1
	lo, hi := minP.cell(), maxP.cell()
	width := hi.X - lo.X + 1 + 2*padding
	height := hi.Y - lo.Y + 1 + 2*padding

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, line := range c.Lines(width, height, lo.X-padding, lo.Y-padding) {
		if _, err := fmt.Fprintln(file, line); err != nil {
			return err
		}
	}
	return nil
}

// ExportToPDF draws the drawing scaled to fit a landscape A4 page. Terminal
// cells are twice as tall as they are wide, so y is doubled.
func (c *Canvas) ExportToPDF(filename string) error {
	minP, maxP, ok := drawingBounds(c.shapes, c.inProgress)
	if !ok {
		return errNothingToExport
	}

	const (
		pageWidth  = 297.0
		pageHeight = 210.0
		margin     = 15.0
		cellAspect = 2.0
	)
	spanX := math.Max(maxP.X-minP.X, 1)
	spanY := math.Max((maxP.Y-minP.Y)*cellAspect, 1)
	scale := math.Min((pageWidth-2*margin)/spanX, (pageHeight-2*margin)/spanY)

	toPage := func(p Point) gofpdf.PointType {
		return gofpdf.PointType{
			X: margin + (p.X-minP.X)*scale,
			Y: margin + (p.Y-minP.Y)*cellAspect*scale,
		}
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetLineWidth(0.4)

	for i, shape := range c.shapes {
		points := make([]gofpdf.PointType, len(shape.Vertices))
		for j, v := range shape.Vertices {
			points[j] = toPage(v)
		}
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetFillColor(200, 220, 255)
		pdf.Polygon(points, "DF")
		pdf.Text(points[0].X, points[0].Y-1.5, strconv.Itoa(i+1))
	}

	if c.inProgress != nil && len(c.inProgress.Vertices) > 0 {
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetFillColor(200, 0, 0)
		pdf.SetDashPattern([]float64{2, 1.5}, 0)
		vertices := c.inProgress.Vertices
		for i := 1; i < len(vertices); i++ {
			from, to := toPage(vertices[i-1]), toPage(vertices[i])
			pdf.Line(from.X, from.Y, to.X, to.Y)
		}
		pdf.SetDashPattern([]float64{}, 0)
		for _, v := range vertices {
			p := toPage(v)
			pdf.Circle(p.X, p.Y, 0.8, "F")
		}
	}

	return pdf.OutputFileAndClose(filename)
}

type drawingDocument struct {
	Shapes     []Shape `json:"shapes"`
	InProgress *Shape  `json:"in_progress,omitempty"`
}

// JSON encodes the current frame. It is what gets copied to the clipboard.
func (c *Canvas) JSON() ([]byte, error) {
	if c.IsEmpty() {
		return nil, errNothingToExport
	}
	doc := drawingDocument{
		Shapes:     cloneShapes(c.shapes),
		InProgress: c.inProgress.Clone(),
	}
	return json.MarshalIndent(doc, "", "  ")
}

func (m *model) runExport(op FileOperation, filename string) error {
	canvas := m.canvas
	var err error
	switch op {
	case FileOpExportPNG:
		err = canvas.ExportToPNG(filename)
	case FileOpExportPDF:
		err = canvas.ExportToPDF(filename)
	case FileOpExportTXT:
		err = canvas.ExportToTXT(filename)
	default:
		err = fmt.Errorf("unknown export %d", op)
	}
	if err != nil {
		logger.Error("export failed", "file", filename, "err", err)
		return err
	}
	logger.Info("exported drawing", "file", filename, "shapes", len(canvas.shapes))
	return nil
}

func exportExtension(op FileOperation) string {
	switch op {
	case FileOpExportPNG:
		return ".png"
	case FileOpExportPDF:
		return ".pdf"
	default:
		return ".txt"
	}
}

func exportLabel(op FileOperation) string {
	switch op {
	case FileOpExportPNG:
		return "Export PNG"
	case FileOpExportPDF:
		return "Export PDF"
	default:
		return "Export TXT"
	}
}
