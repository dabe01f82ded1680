package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nurpe/booking-wizard/internal/pricing"
)

const (
	MaxNameLength     = 120
	MaxEmailLength    = 200
	MaxLocationLength = 300
	MaxMessageLength  = 500
	MaxDaysAhead      = 180
)

const (
	msgRequired      = "This field is required."
	msgInvalidChoice = "Invalid selection."
	msgPhone         = "Use digits, + - ( ) and spaces only, 9 to 16 characters."
	msgEmail         = "Invalid email address."
	msgDateFormat    = "Invalid date format."
	msgDatePast      = "Past dates cannot be selected."
	msgDateTooFar    = "Bookings more than 180 days ahead are not accepted."
)

var phonePattern = regexp.MustCompile(`^[0-9+\-() ]{9,16}$`)

var requiredFields = []string{FieldName, FieldPhone, FieldServiceType, FieldLocation}

// Errors maps a field name to a human readable message.
type Errors map[string]string

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Only returns the subset of errors that belong to fields.
func (e Errors) Only(fields []string) Errors {
	out := Errors{}
	for _, field := range fields {
		if msg, ok := e[field]; ok {
			out[field] = msg
		}
	}
	return out
}

// Mode selects which fields Validate checks.
type Mode struct {
	Partial bool
	Fields  []string
}

// Full checks every rule.
func Full() Mode {
	return Mode{}
}

// Partial checks only the given fields. With no fields it checks everything.
func Partial(fields ...string) Mode {
	return Mode{Partial: true, Fields: fields}
}

func (m Mode) checks(field string) bool {
	if !m.Partial || len(m.Fields) == 0 {
		return true
	}
	for _, f := range m.Fields {
		if f == field {
			return true
		}
	}
	return false
}

type Validator struct {
	now      func() time.Time
	location *time.Location
}

// NewValidator returns a validator that judges dates in loc. A nil loc means UTC.
func NewValidator(loc *time.Location) *Validator {
	if loc == nil {
		loc = time.UTC
	}
	return &Validator{now: time.Now, location: loc}
}

// WithClock replaces the time source, mainly for tests.
func (v *Validator) WithClock(now func() time.Time) *Validator {
	clone := *v
	clone.now = now
	return &clone
}

// Today returns the current calendar date in the validator's location.
func (v *Validator) Today() time.Time {
	y, m, d := v.now().In(v.location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Validate normalizes form and checks it against the booking rules.
func (v *Validator) Validate(form Form, mode Mode) (Form, Errors) {
	data := form.Normalize()
	errs := Errors{}

	for _, field := range requiredFields {
		if data.Value(field) == "" && mode.checks(field) {
			errs[field] = msgRequired
		}
	}

	if data.ServiceType != "" && !pricing.IsKnownService(data.ServiceType) && mode.checks(FieldServiceType) {
		errs[FieldServiceType] = msgInvalidChoice
	}

	if data.Phone != "" && !phonePattern.MatchString(data.Phone) && mode.checks(FieldPhone) {
		errs[FieldPhone] = msgPhone
	}

	if data.Email != "" && mode.checks(FieldEmail) {
		if !strings.Contains(data.Email, "@") || !strings.Contains(data.Email, ".") ||
			utf8.RuneCountInString(data.Email) > MaxEmailLength {
			errs[FieldEmail] = msgEmail
		}
	}

	checkLength(errs, mode, FieldName, data.Name, MaxNameLength)
	checkLength(errs, mode, FieldLocation, data.Location, MaxLocationLength)
	checkLength(errs, mode, FieldMessage, data.Message, MaxMessageLength)

	if data.PreferredDate != "" && mode.checks(FieldPreferredDate) {
		if msg := v.checkDate(data.PreferredDate); msg != "" {
			errs[FieldPreferredDate] = msg
		}
	}

	return data, errs
}

func checkLength(errs Errors, mode Mode, field, value string, limit int) {
	if utf8.RuneCountInString(value) > limit && mode.checks(field) {
		errs[field] = fmt.Sprintf("Must be %d characters or fewer.", limit)
	}
}

func (v *Validator) checkDate(raw string) string {
	d, err := time.Parse(DateLayout, raw)
	if err != nil {
		return msgDateFormat
	}
	today := v.Today()
	if d.Before(today) {
		return msgDatePast
	}
	if int(d.Sub(today).Hours()/24) > MaxDaysAhead {
		return msgDateTooFar
	}
	return ""
}
