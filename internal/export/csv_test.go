package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/nurpe/booking-wizard/internal/model"
)

func sampleBookings() []model.Booking {
	note := "call before\nvisiting"
	email := "sato@example.jp"
	date := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	return []model.Booking{
		{
			ID:                 1,
			CreatedAt:          time.Date(2026, 3, 1, 1, 30, 0, 0, time.UTC),
			Name:               "Sato",
			Email:              &email,
			Phone:              "090-1234-5678",
			ServiceType:        "event_support",
			Location:           "Osaka",
			PreferredDate:      &date,
			OptionsPhotoReport: true,
			EstPrice:           23000,
			Status:             model.BookingStatusNew,
			AdminNote:          &note,
		},
		{
			ID:                  2,
			CreatedAt:           time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			Name:                "Tanaka",
			Phone:               "03-0000-1111",
			ServiceType:         "fixture_install",
			Location:            "Tokyo",
			OptionsWeekendVisit: true,
			OptionsExtraStaff:   true,
			EstPrice:            34500,
			Status:              model.BookingStatusDone,
		},
		{
			ID:          3,
			CreatedAt:   time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC),
			Name:        "Suzuki",
			Phone:       "03-2222-3333",
			ServiceType: "office_move_light",
			Location:    "Nagoya",
			EstPrice:    32000,
			Status:      model.BookingStatusCanceled,
		},
	}
}

func TestWriteCSV_RowsAndFlags(t *testing.T) {
	bookings := sampleBookings()
	var buf bytes.Buffer
	if err := WriteCSV(&buf, bookings, time.FixedZone("JST", 9*60*60)); err != nil {
		t.Fatalf("write: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != len(bookings)+1 {
		t.Fatalf("expected %d rows, got %d", len(bookings)+1, len(records))
	}

	header := records[0]
	if len(header) != 15 || header[0] != "ID" || header[14] != "Note" {
		t.Fatalf("unexpected header %v", header)
	}

	for i, b := range bookings {
		row := records[i+1]
		flags := b.Options()
		wantFlags := []bool{flags.PhotoReport, flags.PriorityVisit, flags.WeekendVisit, flags.ExtraStaff}
		for j, want := range wantFlags {
			cell := row[8+j]
			if cell != "Yes" && cell != "No" {
				t.Fatalf("flag cell must be Yes or No, got %q", cell)
			}
			if (cell == "Yes") != want {
				t.Fatalf("booking %d flag %d: got %s, want %v", b.ID, j, cell, want)
			}
		}
	}

	first := records[1]
	if first[1] != "2026-03-01 10:30" {
		t.Fatalf("created must be rendered in the given zone, got %s", first[1])
	}
	if first[4] != "sato@example.jp" || first[7] != "2026-04-02" {
		t.Fatalf("unexpected email/date %v", first)
	}
	if first[14] != "call before visiting" {
		t.Fatalf("note newlines must be flattened, got %q", first[14])
	}
	if records[2][4] != "" || records[2][7] != "" {
		t.Fatalf("missing optional values must be empty")
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected header only, got %d rows", len(records))
	}
}
