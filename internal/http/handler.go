package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/booking-wizard/internal/http/middleware"
	"github.com/nurpe/booking-wizard/internal/model"
	"github.com/nurpe/booking-wizard/internal/pricing"
	"github.com/nurpe/booking-wizard/internal/service"
	"github.com/nurpe/booking-wizard/internal/wizard"
)

const (
	validateField  = "_validate"
	htmxRequest    = "HX-Request"
	htmxRedirect   = "HX-Redirect"
	pageTitle      = "Book a visit"
	adminPageTitle = "Bookings admin"
)

type Handler struct {
	bookings *service.BookingService
	statuses []string
	log      zerolog.Logger
	now      func() time.Time
}

func NewHandler(bookings *service.BookingService, statuses []string, log zerolog.Logger) *Handler {
	return &Handler{bookings: bookings, statuses: statuses, log: log, now: time.Now}
}

// Register mounts the public wizard routes on public and the back office on
// admin. Both groups carry their own middleware.
func (h *Handler) Register(public, admin *gin.RouterGroup) {
	public.GET("/", h.index)
	public.GET("/booking/step/:step", h.showStep)
	public.POST("/booking/step/:step", h.submitStep)
	public.POST("/estimate", h.estimate)
	public.POST("/book", h.book)
	public.GET("/thanks/:id", h.thanks)

	admin.GET("", h.adminList)
	admin.GET("/export.csv", h.exportCSV)
	admin.GET("/export.xlsx", h.exportXLSX)
	admin.GET("/:id", h.adminDetail)
	admin.GET("/:id/pdf", h.bookingPDF)
	admin.POST("/:id/update", h.adminUpdate)
}

type stepLink struct {
	Name    wizard.Step
	Label   string
	Number  int
	Current bool
}

type optionChoice struct {
	pricing.Option
	Checked bool
}

type stepPage struct {
	Title    string
	Year     int
	StepName string
	Steps    []stepLink
	View     service.StepView
	Services []pricing.Service
	Options  []optionChoice
}

func (h *Handler) index(c *gin.Context) {
	sessionID, ok := middleware.MustSession(c)
	if !ok {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	view, err := h.bookings.Current(c.Request.Context(), sessionID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", h.stepPage(view))
}

func (h *Handler) showStep(c *gin.Context) {
	sessionID, ok := middleware.MustSession(c)
	if !ok {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	view, err := h.bookings.ShowStep(c.Request.Context(), sessionID, c.Param("step"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.renderStep(c, http.StatusOK, view)
}

func (h *Handler) submitStep(c *gin.Context) {
	sessionID, ok := middleware.MustSession(c)
	if !ok {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	values, err := postedValues(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	validateOnly := values.Get(validateField) == "1"
	values.Del(validateField)

	view, err := h.bookings.SubmitStep(c.Request.Context(), sessionID, c.Param("step"), values, validateOnly)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.renderStep(c, http.StatusOK, view)
}

func (h *Handler) estimate(c *gin.Context) {
	sessionID, ok := middleware.MustSession(c)
	if !ok {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	values, err := postedValues(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	view, err := h.bookings.Estimate(c.Request.Context(), sessionID, values)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.HTML(http.StatusOK, "estimate", h.stepPage(view))
}

func (h *Handler) book(c *gin.Context) {
	sessionID, ok := middleware.MustSession(c)
	if !ok {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	values, err := postedValues(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	booking, err := h.bookings.Book(c.Request.Context(), sessionID, values)
	var invalid *service.ValidationError
	switch {
	case errors.As(err, &invalid):
		h.renderStep(c, http.StatusBadRequest, invalid.View)
		return
	case errors.Is(err, service.ErrProgressNotCleared):
		h.log.Warn().Err(err).Int64("booking_id", booking.ID).Msg("wizard progress left behind")
	case err != nil:
		h.handleError(c, err)
		return
	}

	h.log.Info().
		Int64("booking_id", booking.ID).
		Str("service_type", booking.ServiceType).
		Int("est_price", booking.EstPrice).
		Msg("booking created")

	target := fmt.Sprintf("/thanks/%d", booking.ID)
	if isHTMX(c) {
		c.Header(htmxRedirect, target)
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (h *Handler) thanks(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.handleError(c, service.ErrNotFound)
		return
	}
	booking, err := h.bookings.Thanks(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.HTML(http.StatusOK, "thanks.html", h.page(pageTitle, gin.H{"Booking": booking}))
}

func (h *Handler) adminList(c *gin.Context) {
	filter := model.BookingFilter{
		Query:  c.Query("q"),
		Status: model.BookingStatus(strings.TrimSpace(c.Query("status"))),
	}
	bookings, err := h.bookings.ListBookings(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.HTML(http.StatusOK, "admin_list.html", h.page(adminPageTitle, gin.H{
		"Bookings": bookings,
		"Query":    filter.Query,
		"Status":   string(filter.Status),
		"Statuses": h.statuses,
	}))
}

func (h *Handler) adminDetail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.handleError(c, service.ErrNotFound)
		return
	}
	booking, err := h.bookings.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.HTML(http.StatusOK, "admin_detail.html", h.page(adminPageTitle, gin.H{
		"Booking":  booking,
		"Options":  optionChoices(booking.Options()),
		"Statuses": h.statuses,
		"Updated":  c.Query("updated") == "1",
	}))
}

func (h *Handler) adminUpdate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.handleError(c, service.ErrNotFound)
		return
	}
	input := service.UpdateBookingInput{Status: c.PostForm("status")}
	if note, ok := c.GetPostForm("admin_note"); ok {
		note = strings.TrimSpace(note)
		input.Note = &note
	}

	booking, err := h.bookings.UpdateBooking(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.log.Info().Int64("booking_id", booking.ID).Str("status", string(booking.Status)).Msg("booking updated")
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/admin/%d?updated=1", booking.ID))
}

func (h *Handler) exportCSV(c *gin.Context) {
	result, err := h.bookings.ExportCSV(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendAttachment(c, "text/csv; charset=utf-8", result)
}

func (h *Handler) exportXLSX(c *gin.Context) {
	result, err := h.bookings.ExportXLSX(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendAttachment(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result)
}

func (h *Handler) bookingPDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.handleError(c, service.ErrNotFound)
		return
	}
	result, err := h.bookings.BookingPDF(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendAttachment(c, "application/pdf", result)
}

func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) renderStep(c *gin.Context, status int, view service.StepView) {
	if isHTMX(c) {
		c.HTML(status, "step", h.stepPage(view))
		return
	}
	c.HTML(status, "index.html", h.stepPage(view))
}

func (h *Handler) stepPage(view service.StepView) stepPage {
	steps := make([]stepLink, 0, len(wizard.Sequence))
	for _, step := range wizard.Sequence {
		steps = append(steps, stepLink{
			Name:    step,
			Label:   step.Label(),
			Number:  step.Number(),
			Current: step == view.Step,
		})
	}
	return stepPage{
		Title:    pageTitle,
		Year:     h.now().Year(),
		StepName: string(view.Step),
		Steps:    steps,
		View:     view,
		Services: pricing.Services(),
		Options:  optionChoices(view.Form.Options),
	}
}

func (h *Handler) page(title string, data gin.H) gin.H {
	data["Title"] = title
	data["Year"] = h.now().Year()
	return data
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.HTML(http.StatusNotFound, "error.html", h.page(pageTitle, gin.H{
			"Heading": "Not found",
			"Message": "The page you asked for does not exist.",
		}))
	case errors.Is(err, service.ErrInvalidInput):
		c.HTML(http.StatusBadRequest, "error.html", h.page(pageTitle, gin.H{
			"Heading": "Bad request",
			"Message": err.Error(),
		}))
	default:
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.HTML(http.StatusInternalServerError, "error.html", h.page(pageTitle, gin.H{
			"Heading": "Something went wrong",
			"Message": "We could not process your request. Please try again later.",
		}))
	}
}

func optionChoices(flags pricing.OptionFlags) []optionChoice {
	options := pricing.Options()
	choices := make([]optionChoice, 0, len(options))
	for _, option := range options {
		choices = append(choices, optionChoice{Option: option, Checked: flags.Get(option.Code)})
	}
	return choices
}

func postedValues(c *gin.Context) (url.Values, error) {
	if err := c.Request.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrInvalidInput, err)
	}
	values := url.Values{}
	for key, vals := range c.Request.PostForm {
		values[key] = append([]string(nil), vals...)
	}
	return values, nil
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader(htmxRequest) == "true"
}

func sendAttachment(c *gin.Context, contentType string, result *service.ExportResult) {
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}
