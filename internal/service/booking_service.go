package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/booking-wizard/internal/config"
	"github.com/nurpe/booking-wizard/internal/export"
	"github.com/nurpe/booking-wizard/internal/model"
	"github.com/nurpe/booking-wizard/internal/pricing"
	"github.com/nurpe/booking-wizard/internal/validation"
	"github.com/nurpe/booking-wizard/internal/wizard"
)

type BookingStore interface {
	Create(ctx context.Context, booking *model.Booking) error
	List(ctx context.Context, filter model.BookingFilter) ([]model.Booking, error)
	ListAll(ctx context.Context) ([]model.Booking, error)
	Get(ctx context.Context, id int64) (*model.Booking, error)
	Update(ctx context.Context, id int64, update model.BookingUpdate) (*model.Booking, error)
}

type ProgressStore interface {
	Load(ctx context.Context, sessionID uuid.UUID) (wizard.Progress, error)
	Save(ctx context.Context, sessionID uuid.UUID, progress wizard.Progress) error
	Clear(ctx context.Context, sessionID uuid.UUID) error
}

type ExcelGenerator interface {
	Generate(report model.BookingReport) ([]byte, error)
}

type PDFGenerator interface {
	Generate(booking model.Booking) ([]byte, error)
}

type BookingService struct {
	bookings      BookingStore
	progress      ProgressStore
	machine       *wizard.Machine
	excel         ExcelGenerator
	pdf           PDFGenerator
	validStatuses map[model.BookingStatus]struct{}
	location      *time.Location
	now           func() time.Time
}

// StepView is everything needed to render one wizard step.
type StepView struct {
	Step   wizard.Step
	Prev   wizard.Step
	Next   wizard.Step
	Form   validation.Form
	Errors validation.Errors
	Price  int
	Lines  []pricing.Breakdown
}

type UpdateBookingInput struct {
	Status string
	Note   *string
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func NewBookingService(
	bookings BookingStore,
	progress ProgressStore,
	machine *wizard.Machine,
	excel ExcelGenerator,
	pdf PDFGenerator,
	cfg *config.Config,
) *BookingService {
	statuses := make(map[model.BookingStatus]struct{}, len(cfg.Booking.ValidStatuses))
	for _, status := range cfg.Booking.ValidStatuses {
		statuses[model.BookingStatus(status)] = struct{}{}
	}
	loc, err := cfg.Location()
	if err != nil {
		loc = time.UTC
	}
	return &BookingService{
		bookings:      bookings,
		progress:      progress,
		machine:       machine,
		excel:         excel,
		pdf:           pdf,
		validStatuses: statuses,
		location:      loc,
		now:           time.Now,
	}
}

// Current renders the step the visitor last saw.
func (s *BookingService) Current(ctx context.Context, sessionID uuid.UUID) (StepView, error) {
	progress, err := s.progress.Load(ctx, sessionID)
	if err != nil {
		return StepView{}, err
	}
	progress = progress.Normalize()
	if err := s.progress.Save(ctx, sessionID, progress); err != nil {
		return StepView{}, err
	}
	return buildView(progress.Step, progress.Form, nil), nil
}

func (s *BookingService) ShowStep(ctx context.Context, sessionID uuid.UUID, rawStep string) (StepView, error) {
	step, ok := wizard.ParseStep(rawStep)
	if !ok {
		return StepView{}, fmt.Errorf("%w: unknown step %q", ErrNotFound, rawStep)
	}
	progress, err := s.progress.Load(ctx, sessionID)
	if err != nil {
		return StepView{}, err
	}
	progress = s.machine.Show(progress, step)
	if err := s.progress.Save(ctx, sessionID, progress); err != nil {
		return StepView{}, err
	}
	return buildView(step, progress.Form, nil), nil
}

// SubmitStep merges the posted values of one step and either advances or
// returns the same step with field errors.
func (s *BookingService) SubmitStep(
	ctx context.Context,
	sessionID uuid.UUID,
	rawStep string,
	values url.Values,
	validateOnly bool,
) (StepView, error) {
	step, ok := wizard.ParseStep(rawStep)
	if !ok {
		return StepView{}, fmt.Errorf("%w: unknown step %q", ErrNotFound, rawStep)
	}
	progress, err := s.progress.Load(ctx, sessionID)
	if err != nil {
		return StepView{}, err
	}

	outcome := s.machine.Submit(progress, step, values, validateOnly)
	if err := s.progress.Save(ctx, sessionID, outcome.Progress); err != nil {
		return StepView{}, err
	}
	return buildView(outcome.Step, outcome.Progress.Form, outcome.Errors), nil
}

// Estimate refreshes the price preview from stored progress and posted values.
func (s *BookingService) Estimate(ctx context.Context, sessionID uuid.UUID, values url.Values) (StepView, error) {
	progress, err := s.progress.Load(ctx, sessionID)
	if err != nil {
		return StepView{}, err
	}
	progress = s.machine.Refresh(progress, values)
	if err := s.progress.Save(ctx, sessionID, progress); err != nil {
		return StepView{}, err
	}
	return buildView(progress.Step, progress.Form, nil), nil
}

// Book validates the whole form and persists the booking. The price is always
// recomputed here; nothing price-related is read from the submission.
func (s *BookingService) Book(ctx context.Context, sessionID uuid.UUID, values url.Values) (*model.Booking, error) {
	progress, err := s.progress.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	progress, errs := s.machine.Commit(progress, values)
	if len(errs) > 0 {
		if err := s.progress.Save(ctx, sessionID, progress); err != nil {
			return nil, err
		}
		return nil, &ValidationError{View: buildView(wizard.StepConfirm, progress.Form, errs)}
	}

	booking, err := newBooking(progress.Form)
	if err != nil {
		return nil, err
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if err := s.progress.Clear(ctx, sessionID); err != nil {
		return booking, fmt.Errorf("%w: %v", ErrProgressNotCleared, err)
	}
	return booking, nil
}

func newBooking(form validation.Form) (*model.Booking, error) {
	date, err := form.Date()
	if err != nil {
		return nil, fmt.Errorf("%w: preferred_date: %v", ErrInvalidInput, err)
	}
	booking := &model.Booking{
		Name:          form.Name,
		Email:         optionalString(form.Email),
		Phone:         form.Phone,
		ServiceType:   form.ServiceType,
		Location:      form.Location,
		PreferredDate: date,
		Message:       optionalString(form.Message),
		EstPrice:      pricing.Estimate(form.ServiceType, form.Options),
		Status:        model.BookingStatusNew,
	}
	booking.SetOptions(form.Options)
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (*model.Booking, error) {
	booking, err := s.bookings.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return booking, nil
}

// Thanks loads the booking shown on the confirmation page.
func (s *BookingService) Thanks(ctx context.Context, id int64) (*model.Booking, error) {
	return s.GetBooking(ctx, id)
}

func (s *BookingService) ListBookings(ctx context.Context, filter model.BookingFilter) ([]model.Booking, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	return s.bookings.List(ctx, filter)
}

// UpdateBooking changes status and/or admin note. An empty status keeps the
// current one.
func (s *BookingService) UpdateBooking(ctx context.Context, id int64, input UpdateBookingInput) (*model.Booking, error) {
	var update model.BookingUpdate
	if status := strings.TrimSpace(input.Status); status != "" {
		st := model.BookingStatus(status)
		if _, ok := s.validStatuses[st]; !ok {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
		}
		update.Status = &st
	}
	update.Note = input.Note

	booking, err := s.bookings.Update(ctx, id, update)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return booking, nil
}

func (s *BookingService) ExportCSV(ctx context.Context) (*ExportResult, error) {
	bookings, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, bookings, s.location); err != nil {
		return nil, err
	}
	return &ExportResult{FileName: "bookings.csv", Content: buf.Bytes()}, nil
}

func (s *BookingService) ExportXLSX(ctx context.Context) (*ExportResult, error) {
	bookings, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now().In(s.location)
	content, err := s.excel.Generate(model.BookingReport{GeneratedAt: now, Bookings: bookings})
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: fmt.Sprintf("bookings-%s.xlsx", now.Format("20060102-1504")),
		Content:  content,
	}, nil
}

func (s *BookingService) BookingPDF(ctx context.Context, id int64) (*ExportResult, error) {
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(*booking)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: fmt.Sprintf("booking-%d.pdf", booking.ID),
		Content:  content,
	}, nil
}

func buildView(step wizard.Step, form validation.Form, errs validation.Errors) StepView {
	if errs == nil {
		errs = validation.Errors{}
	}
	view := StepView{
		Step:   step,
		Form:   form,
		Errors: errs,
		Price:  pricing.Estimate(form.ServiceType, form.Options),
		Lines:  pricing.Lines(form.ServiceType, form.Options),
	}
	if prev, ok := step.Prev(); ok {
		view.Prev = prev
	}
	if next, ok := step.Next(); ok {
		view.Next = next
	}
	return view
}

func mapStoreError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
