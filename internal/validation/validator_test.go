package validation

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

func fixedValidator() *Validator {
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, tokyo)
	return NewValidator(tokyo).WithClock(func() time.Time { return now })
}

func validForm() Form {
	return Form{
		Name:        "Sato Hanako",
		Phone:       "03-1234-5678",
		ServiceType: "storefront_cleaning",
		Location:    "1-2-3 Shibuya, Tokyo",
	}
}

func TestValidate_ValidFormHasNoErrors(t *testing.T) {
	_, errs := fixedValidator().Validate(validForm(), Full())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	_, errs := fixedValidator().Validate(Form{}, Full())
	for _, field := range []string{FieldName, FieldPhone, FieldServiceType, FieldLocation} {
		if errs[field] != msgRequired {
			t.Errorf("expected required error for %s, got %q", field, errs[field])
		}
	}
	for _, field := range []string{FieldEmail, FieldPreferredDate, FieldMessage} {
		if errs.Has(field) {
			t.Errorf("optional field %s must not produce an error", field)
		}
	}
}

func TestValidate_TrimsValues(t *testing.T) {
	form := validForm()
	form.Name = "  Sato  "
	form.Email = " a@b.jp "
	data, errs := fixedValidator().Validate(form, Full())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if data.Name != "Sato" || data.Email != "a@b.jp" {
		t.Fatalf("values not trimmed: %+v", data)
	}
	if FromValues(url.Values{FieldName: {"   "}}).Normalize().Name != "" {
		t.Fatalf("whitespace-only name must normalize to empty")
	}
}

func TestValidate_UnknownServiceType(t *testing.T) {
	form := validForm()
	form.ServiceType = "window_washing"
	_, errs := fixedValidator().Validate(form, Full())
	if errs[FieldServiceType] != msgInvalidChoice {
		t.Fatalf("expected invalid choice, got %q", errs[FieldServiceType])
	}
}

func TestValidate_Phone(t *testing.T) {
	valid := []string{
		"090-1234-5678",
		"+81 90 1234 5678",
		"(03) 1234-5678",
		"123456789",
		"1234567890123456",
	}
	invalid := []string{
		"12345678",
		"12345678901234567",
		"090-1234-abcd",
		"090.1234.5678",
		"+81#9012345678",
	}
	v := fixedValidator()
	for _, phone := range valid {
		form := validForm()
		form.Phone = phone
		if _, errs := v.Validate(form, Full()); errs.Has(FieldPhone) {
			t.Errorf("phone %q should be valid, got %q", phone, errs[FieldPhone])
		}
	}
	for _, phone := range invalid {
		form := validForm()
		form.Phone = phone
		if _, errs := v.Validate(form, Full()); errs[FieldPhone] != msgPhone {
			t.Errorf("phone %q should be invalid", phone)
		}
	}
}

func TestValidate_Email(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"", true},
		{"hanako@example.jp", true},
		{"hanako.example.jp", false},
		{"hanako@examplejp", false},
		{strings.Repeat("a", 190) + "@example.jp", false},
	}
	v := fixedValidator()
	for _, tt := range tests {
		form := validForm()
		form.Email = tt.email
		_, errs := v.Validate(form, Full())
		if errs.Has(FieldEmail) == tt.ok {
			t.Errorf("email %q: ok=%v, errors=%v", tt.email, tt.ok, errs)
		}
	}
}

func TestValidate_Lengths(t *testing.T) {
	v := fixedValidator()

	form := validForm()
	form.Name = strings.Repeat("名", MaxNameLength)
	form.Location = strings.Repeat("x", MaxLocationLength)
	form.Message = strings.Repeat("y", MaxMessageLength)
	if _, errs := v.Validate(form, Full()); len(errs) != 0 {
		t.Fatalf("values at the limit must pass, got %v", errs)
	}

	form.Name += "名"
	form.Location += "x"
	form.Message += "y"
	_, errs := v.Validate(form, Full())
	for _, field := range []string{FieldName, FieldLocation, FieldMessage} {
		if !errs.Has(field) {
			t.Errorf("expected length error for %s", field)
		}
	}
}

func TestValidate_PreferredDateBoundaries(t *testing.T) {
	v := fixedValidator()
	today := v.Today()
	tests := []struct {
		name string
		date string
		want string
	}{
		{"today", today.Format(DateLayout), ""},
		{"yesterday", today.AddDate(0, 0, -1).Format(DateLayout), msgDatePast},
		{"plus 180", today.AddDate(0, 0, 180).Format(DateLayout), ""},
		{"plus 181", today.AddDate(0, 0, 181).Format(DateLayout), msgDateTooFar},
		{"garbage", "2026/03/11", msgDateFormat},
		{"impossible", "2026-02-30", msgDateFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			form.PreferredDate = tt.date
			_, errs := v.Validate(form, Full())
			if errs[FieldPreferredDate] != tt.want {
				t.Fatalf("date %s: got %q, want %q", tt.date, errs[FieldPreferredDate], tt.want)
			}
		})
	}
}

func TestValidate_TodayUsesConfiguredLocation(t *testing.T) {
	// 23:30 in Tokyo is still the previous day in UTC.
	v := fixedValidator()
	if got := v.Today().Format(DateLayout); got != "2026-03-10" {
		t.Fatalf("today = %s, want 2026-03-10", got)
	}
}

func TestValidate_PartialChecksOnlyRequestedFields(t *testing.T) {
	v := fixedValidator()
	form := Form{Name: "", Phone: "bad", Email: "nope"}

	_, errs := v.Validate(form, Partial(FieldName, FieldPhone, FieldEmail))
	for _, field := range []string{FieldName, FieldPhone, FieldEmail} {
		if !errs.Has(field) {
			t.Errorf("expected error for %s", field)
		}
	}
	for _, field := range []string{FieldServiceType, FieldLocation} {
		if errs.Has(field) {
			t.Errorf("field %s was not requested but produced %q", field, errs[field])
		}
	}

	_, errs = v.Validate(form, Partial(FieldServiceType))
	if len(errs) != 1 || !errs.Has(FieldServiceType) {
		t.Fatalf("expected only service_type error, got %v", errs)
	}
}

func TestErrors_Only(t *testing.T) {
	errs := Errors{FieldName: "a", FieldPhone: "b", FieldLocation: "c"}
	got := errs.Only([]string{FieldName, FieldLocation, FieldEmail})
	if len(got) != 2 || got[FieldName] != "a" || got[FieldLocation] != "c" {
		t.Fatalf("unexpected subset: %v", got)
	}
}

func TestOverlay_Options(t *testing.T) {
	base := Form{Name: "keep"}
	base.Options.PhotoReport = true
	base.Options.ExtraStaff = true

	kept := base.Overlay(url.Values{FieldPhone: {"0312345678"}}, false)
	if !kept.Options.PhotoReport || !kept.Options.ExtraStaff || kept.Name != "keep" {
		t.Fatalf("overlay without reset changed untouched fields: %+v", kept)
	}

	reset := base.Overlay(url.Values{"options_priority_visit": {"on"}}, true)
	if reset.Options.PhotoReport || reset.Options.ExtraStaff || !reset.Options.PriorityVisit {
		t.Fatalf("overlay with reset produced %+v", reset.Options)
	}
}

func TestParseBool(t *testing.T) {
	for _, raw := range []string{"on", "ON", "1", "true", "yes"} {
		if !ParseBool(raw) {
			t.Errorf("ParseBool(%q) = false", raw)
		}
	}
	for _, raw := range []string{"", "off", "0", "no", "y"} {
		if ParseBool(raw) {
			t.Errorf("ParseBool(%q) = true", raw)
		}
	}
}

func TestFormDate(t *testing.T) {
	d, err := Form{}.Date()
	if err != nil || d != nil {
		t.Fatalf("empty date: %v %v", d, err)
	}
	d, err = Form{PreferredDate: "2026-04-01"}.Date()
	if err != nil || d.Format(DateLayout) != "2026-04-01" {
		t.Fatalf("unexpected date %v %v", d, err)
	}
}
