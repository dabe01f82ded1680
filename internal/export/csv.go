package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nurpe/booking-wizard/internal/model"
	"github.com/nurpe/booking-wizard/internal/pricing"
)

var leadingColumns = []string{"ID", "Created", "Name", "Phone", "Email", "Service", "Location", "Date"}

var trailingColumns = []string{"Price", "Status", "Note"}

// Header returns the CSV header: fixed columns, one column per option in
// catalog order, then price, status and note.
func Header() []string {
	header := append([]string{}, leadingColumns...)
	for _, opt := range pricing.Options() {
		header = append(header, opt.Label)
	}
	return append(header, trailingColumns...)
}

// WriteCSV writes one header row and one row per booking. Timestamps are
// rendered in loc.
func WriteCSV(w io.Writer, bookings []model.Booking, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(Header()); err != nil {
		return err
	}

	codes := pricing.OptionCodes()
	for _, b := range bookings {
		flags := b.Options()
		record := []string{
			strconv.FormatInt(b.ID, 10),
			b.CreatedAt.In(loc).Format("2006-01-02 15:04"),
			b.Name,
			b.Phone,
			deref(b.Email),
			b.ServiceType,
			b.Location,
			formatDate(b.PreferredDate),
		}
		for _, code := range codes {
			record = append(record, YesNo(flags.Get(code)))
		}
		record = append(record,
			strconv.Itoa(b.EstPrice),
			string(b.Status),
			flattenNote(deref(b.AdminNote)),
		)
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func YesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func flattenNote(note string) string {
	note = strings.ReplaceAll(note, "\r\n", " ")
	return strings.ReplaceAll(note, "\n", " ")
}
