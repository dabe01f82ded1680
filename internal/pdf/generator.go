package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/booking-wizard/internal/model"
	"github.com/nurpe/booking-wizard/internal/pricing"
)

// Generator renders a one-page booking sheet for field staff.
type Generator struct {
	fontName string
	location *time.Location
}

func NewGenerator(loc *time.Location) (*Generator, error) {
	if len(mplusFont) == 0 {
		return nil, fmt.Errorf("font data is empty")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Generator{fontName: "MPlus1p", location: loc}, nil
}

func (g *Generator) Generate(booking model.Booking) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.AddUTF8FontFromBytes(g.fontName, "", mplusFont)
	pdf.AddUTF8FontFromBytes(g.fontName, "B", mplusFont)

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Booking #%d", booking.ID), "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	pdf.CellFormat(0, 6, "Received "+formatDateTime(booking.CreatedAt.In(g.location)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	section(pdf, g.fontName, "Customer")
	field(pdf, g.fontName, "Name", booking.Name)
	field(pdf, g.fontName, "Phone", booking.Phone)
	field(pdf, g.fontName, "Email", safeValue(deref(booking.Email)))
	pdf.Ln(2)

	section(pdf, g.fontName, "Job")
	field(pdf, g.fontName, "Service", pricing.ServiceLabel(booking.ServiceType))
	field(pdf, g.fontName, "Location", booking.Location)
	field(pdf, g.fontName, "Preferred date", formatDate(booking.PreferredDate))
	field(pdf, g.fontName, "Status", string(booking.Status))
	pdf.Ln(2)

	section(pdf, g.fontName, "Estimate")
	colWidths := []float64{130, 50}
	drawTableRow(pdf, g.fontName, []string{"Item", "Amount, JPY"}, colWidths, true)
	for _, line := range pricing.Lines(booking.ServiceType, booking.Options()) {
		drawTableRow(pdf, g.fontName, []string{line.Label, formatAmount(line.Amount)}, colWidths, false)
	}
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(0, 8, "Estimated total: "+formatAmount(booking.EstPrice)+" JPY", "", 1, "R", false, 0, "")
	pdf.Ln(2)

	if msg := deref(booking.Message); msg != "" {
		section(pdf, g.fontName, "Message from customer")
		pdf.SetFont(g.fontName, "", 10)
		pdf.MultiCell(0, 5, msg, "", "L", false)
		pdf.Ln(2)
	}
	if note := deref(booking.AdminNote); note != "" {
		section(pdf, g.fontName, "Admin note")
		pdf.SetFont(g.fontName, "", 10)
		pdf.MultiCell(0, 5, note, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, fontName, title string) {
	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func field(pdf *gofpdf.Fpdf, fontName, label, value string) {
	pdf.SetFont(fontName, "B", 10)
	pdf.CellFormat(40, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	pdf.MultiCell(0, 6, value, "", "L", false)
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// formatAmount groups thousands with commas.
func formatAmount(value int) string {
	raw := strconv.Itoa(value)
	negative := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")

	var b strings.Builder
	for i, r := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
