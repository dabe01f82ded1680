package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/booking-wizard/internal/config"
	"github.com/nurpe/booking-wizard/internal/model"
	"github.com/nurpe/booking-wizard/internal/validation"
	"github.com/nurpe/booking-wizard/internal/wizard"
)

type memoryBookings struct {
	items  map[int64]model.Booking
	nextID int64
}

func newMemoryBookings() *memoryBookings {
	return &memoryBookings{items: map[int64]model.Booking{}}
}

func (m *memoryBookings) Create(_ context.Context, booking *model.Booking) error {
	m.nextID++
	booking.ID = m.nextID
	booking.CreatedAt = time.Date(2025, 5, 1, 1, 0, 0, 0, time.UTC)
	if booking.Status == "" {
		booking.Status = model.BookingStatusNew
	}
	m.items[booking.ID] = *booking
	return nil
}

func (m *memoryBookings) List(_ context.Context, filter model.BookingFilter) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range m.items {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memoryBookings) ListAll(_ context.Context) ([]model.Booking, error) {
	out := make([]model.Booking, 0, len(m.items))
	for _, b := range m.items {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryBookings) Get(_ context.Context, id int64) (*model.Booking, error) {
	b, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (m *memoryBookings) Update(_ context.Context, id int64, update model.BookingUpdate) (*model.Booking, error) {
	b, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if update.Status != nil {
		b.Status = *update.Status
	}
	if update.Note != nil {
		note := *update.Note
		b.AdminNote = &note
	}
	m.items[id] = b
	return &b, nil
}

type memoryProgress struct {
	items    map[uuid.UUID]wizard.Progress
	clearErr error
}

func newMemoryProgress() *memoryProgress {
	return &memoryProgress{items: map[uuid.UUID]wizard.Progress{}}
}

func (m *memoryProgress) Load(_ context.Context, id uuid.UUID) (wizard.Progress, error) {
	p, ok := m.items[id]
	if !ok {
		return wizard.NewProgress(), nil
	}
	return p, nil
}

func (m *memoryProgress) Save(_ context.Context, id uuid.UUID, p wizard.Progress) error {
	m.items[id] = p.Normalize()
	return nil
}

func (m *memoryProgress) Clear(_ context.Context, id uuid.UUID) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	delete(m.items, id)
	return nil
}

type stubExcel struct {
	report model.BookingReport
}

func (s *stubExcel) Generate(report model.BookingReport) ([]byte, error) {
	s.report = report
	return []byte("xlsx"), nil
}

type stubPDF struct{}

func (stubPDF) Generate(booking model.Booking) ([]byte, error) {
	if booking.ID == 0 {
		return nil, errors.New("missing id")
	}
	return []byte("%PDF"), nil
}

func testConfig() *config.Config {
	return &config.Config{
		Booking: config.BookingConfig{
			ValidStatuses: []string{"new", "confirmed", "done", "canceled"},
			Timezone:      "Asia/Tokyo",
		},
	}
}

type testEnv struct {
	service  *BookingService
	bookings *memoryBookings
	progress *memoryProgress
	excel    *stubExcel
}

func newTestEnv() *testEnv {
	tokyo, _ := time.LoadLocation("Asia/Tokyo")
	bookings := newMemoryBookings()
	progress := newMemoryProgress()
	xlsx := &stubExcel{}
	machine := wizard.NewMachine(validation.NewValidator(tokyo))
	svc := NewBookingService(bookings, progress, machine, xlsx, stubPDF{}, testConfig())
	return &testEnv{service: svc, bookings: bookings, progress: progress, excel: xlsx}
}
