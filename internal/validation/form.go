package validation

import (
	"net/url"
	"strings"
	"time"

	"github.com/nurpe/booking-wizard/internal/pricing"
)

const (
	FieldName          = "name"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldServiceType   = "service_type"
	FieldLocation      = "location"
	FieldPreferredDate = "preferred_date"
	FieldMessage       = "message"
)

// DateLayout is the wire format of preferred_date.
const DateLayout = "2006-01-02"

var textFields = []string{
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldServiceType,
	FieldLocation,
	FieldPreferredDate,
	FieldMessage,
}

// Fields returns every field name the booking form knows, option codes last.
func Fields() []string {
	out := make([]string, 0, len(textFields)+4)
	out = append(out, textFields...)
	return append(out, pricing.OptionCodes()...)
}

// Form is the booking form in its raw or normalized shape. Empty strings mean
// "not provided".
type Form struct {
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	Phone         string              `json:"phone"`
	ServiceType   string              `json:"service_type"`
	Location      string              `json:"location"`
	PreferredDate string              `json:"preferred_date"`
	Message       string              `json:"message"`
	Options       pricing.OptionFlags `json:"options"`
}

// FromValues builds a form from posted values. Missing fields are empty and
// missing option flags are false.
func FromValues(values url.Values) Form {
	return Form{}.Overlay(values, true)
}

// Overlay returns a copy of f with every field present in values replaced.
// When resetOptions is set, option flags absent from values are cleared, which
// is how an unchecked checkbox is submitted.
func (f Form) Overlay(values url.Values, resetOptions bool) Form {
	for _, field := range textFields {
		if _, ok := values[field]; !ok {
			continue
		}
		f.set(field, values.Get(field))
	}
	for _, code := range pricing.OptionCodes() {
		if _, ok := values[code]; ok {
			f.Options.Set(code, ParseBool(values.Get(code)))
			continue
		}
		if resetOptions {
			f.Options.Set(code, false)
		}
	}
	return f
}

// Value returns the string value of a text field.
func (f Form) Value(field string) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldPhone:
		return f.Phone
	case FieldServiceType:
		return f.ServiceType
	case FieldLocation:
		return f.Location
	case FieldPreferredDate:
		return f.PreferredDate
	case FieldMessage:
		return f.Message
	default:
		return ""
	}
}

func (f *Form) set(field, value string) {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldPhone:
		f.Phone = value
	case FieldServiceType:
		f.ServiceType = value
	case FieldLocation:
		f.Location = value
	case FieldPreferredDate:
		f.PreferredDate = value
	case FieldMessage:
		f.Message = value
	}
}

// Normalize trims every text field.
func (f Form) Normalize() Form {
	for _, field := range textFields {
		f.set(field, strings.TrimSpace(f.Value(field)))
	}
	return f
}

// Date parses PreferredDate. It returns nil for an empty value.
func (f Form) Date() (*time.Time, error) {
	if f.PreferredDate == "" {
		return nil, nil
	}
	d, err := time.Parse(DateLayout, f.PreferredDate)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ParseBool coerces a checkbox value.
func ParseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "1", "true", "yes":
		return true
	default:
		return false
	}
}
