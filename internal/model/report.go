package model

import "time"

// BookingReport is the input of the spreadsheet export.
type BookingReport struct {
	GeneratedAt time.Time
	Bookings    []Booking
}

// StatusCount is one row of the report summary.
type StatusCount struct {
	Status BookingStatus
	Count  int
	Amount int
}

// Summary counts bookings and estimated revenue per status, in lifecycle
// order. Statuses outside the lifecycle are appended in order of appearance.
func (r BookingReport) Summary() []StatusCount {
	index := make(map[BookingStatus]int, len(BookingStatuses))
	rows := make([]StatusCount, 0, len(BookingStatuses))
	for _, status := range BookingStatuses {
		index[status] = len(rows)
		rows = append(rows, StatusCount{Status: status})
	}
	for _, b := range r.Bookings {
		pos, ok := index[b.Status]
		if !ok {
			index[b.Status] = len(rows)
			pos = len(rows)
			rows = append(rows, StatusCount{Status: b.Status})
		}
		rows[pos].Count++
		rows[pos].Amount += b.EstPrice
	}
	return rows
}
