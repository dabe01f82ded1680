package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/booking-wizard/internal/export"
	"github.com/nurpe/booking-wizard/internal/model"
	"github.com/nurpe/booking-wizard/internal/pricing"
)

const (
	summarySheet  = "Summary"
	bookingsSheet = "Bookings"
)

type Generator struct {
	location *time.Location
}

// NewGenerator renders timestamps in loc. A nil loc means UTC.
func NewGenerator(loc *time.Location) *Generator {
	if loc == nil {
		loc = time.UTC
	}
	return &Generator{location: loc}
}

func (g *Generator) Generate(report model.BookingReport) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if err := g.writeSummary(file, summarySheet, report); err != nil {
		return nil, err
	}

	if _, err := file.NewSheet(bookingsSheet); err != nil {
		return nil, err
	}
	if err := g.writeBookings(file, bookingsSheet, report.Bookings); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, report model.BookingReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	total := 0
	for _, b := range report.Bookings {
		total += b.EstPrice
	}

	set("A1", "Generated at")
	set("B1", formatDateTime(report.GeneratedAt.In(g.location)))
	set("A2", "Bookings")
	set("B2", len(report.Bookings))
	set("A3", "Estimated total, JPY")
	set("B3", total)

	tableRow := 5
	set(fmt.Sprintf("A%d", tableRow), "Status")
	set(fmt.Sprintf("B%d", tableRow), "Bookings")
	set(fmt.Sprintf("C%d", tableRow), "Estimated, JPY")

	for i, row := range report.Summary() {
		r := tableRow + 1 + i
		set(fmt.Sprintf("A%d", r), string(row.Status))
		set(fmt.Sprintf("B%d", r), row.Count)
		set(fmt.Sprintf("C%d", r), row.Amount)
	}

	_ = file.SetColWidth(sheet, "A", "A", 24)
	_ = file.SetColWidth(sheet, "B", "C", 18)
	return nil
}

func (g *Generator) writeBookings(file *excelize.File, sheet string, bookings []model.Booking) error {
	header := export.Header()
	for i, title := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		_ = file.SetCellValue(sheet, cell, title)
	}

	codes := pricing.OptionCodes()
	for i, b := range bookings {
		row := []interface{}{
			b.ID,
			formatDateTime(b.CreatedAt.In(g.location)),
			b.Name,
			b.Phone,
			formatString(b.Email),
			pricing.ServiceLabel(b.ServiceType),
			b.Location,
			formatDate(b.PreferredDate),
		}
		flags := b.Options()
		for _, code := range codes {
			row = append(row, export.YesNo(flags.Get(code)))
		}
		row = append(row, b.EstPrice, string(b.Status), formatString(b.AdminNote))

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	_ = file.SetColWidth(sheet, "A", "A", 8)
	_ = file.SetColWidth(sheet, "B", "B", 18)
	_ = file.SetColWidth(sheet, "C", "G", 28)
	_ = file.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

func formatString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
