package pricing

// Service is one bookable service type with its base price in yen.
type Service struct {
	Code      string
	Label     string
	BasePrice int
}

// Option is an add-on that can be enabled on any booking.
type Option struct {
	Code        string
	Label       string
	Description string
	Surcharge   int
}

const (
	OptionPhotoReport   = "options_photoreport"
	OptionPriorityVisit = "options_priority_visit"
	OptionWeekendVisit  = "options_weekend_visit"
	OptionExtraStaff    = "options_extra_staff"
)

var services = []Service{
	{Code: "storefront_cleaning", Label: "Storefront cleaning (light, recurring)", BasePrice: 15000},
	{Code: "fixture_install", Label: "Fixture and equipment install", BasePrice: 26000},
	{Code: "event_support", Label: "Event setup support", BasePrice: 22000},
	{Code: "emergency_support", Label: "Emergency first response", BasePrice: 14000},
	{Code: "office_move_light", Label: "Small office move help", BasePrice: 32000},
}

var options = []Option{
	{
		Code:        OptionPhotoReport,
		Label:       "Photo report",
		Description: "Before and after photos with a short work log sent by email.",
		Surcharge:   1000,
	},
	{
		Code:        OptionPriorityVisit,
		Label:       "Priority visit (within 48 hours)",
		Description: "Scheduled in the priority slot, staff on site within 48 hours.",
		Surcharge:   4000,
	},
	{
		Code:        OptionWeekendVisit,
		Label:       "Guaranteed weekend or holiday visit",
		Description: "A weekend or public holiday slot is reserved in advance.",
		Surcharge:   2500,
	},
	{
		Code:        OptionExtraStaff,
		Label:       "Extra staff member (two-person crew)",
		Description: "One additional helper for large fixtures or heavy items.",
		Surcharge:   6000,
	},
}

var (
	serviceIndex = indexServices(services)
	optionIndex  = indexOptions(options)
)

func indexServices(items []Service) map[string]Service {
	result := make(map[string]Service, len(items))
	for _, item := range items {
		result[item.Code] = item
	}
	return result
}

func indexOptions(items []Option) map[string]Option {
	result := make(map[string]Option, len(items))
	for _, item := range items {
		result[item.Code] = item
	}
	return result
}

// Services returns the service catalog in display order.
func Services() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

// Options returns the option catalog in display order.
func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

// OptionCodes returns the option codes in display order.
func OptionCodes() []string {
	codes := make([]string, 0, len(options))
	for _, item := range options {
		codes = append(codes, item.Code)
	}
	return codes
}

func LookupService(code string) (Service, bool) {
	s, ok := serviceIndex[code]
	return s, ok
}

func LookupOption(code string) (Option, bool) {
	o, ok := optionIndex[code]
	return o, ok
}

func IsKnownService(code string) bool {
	_, ok := serviceIndex[code]
	return ok
}

// ServiceLabel falls back to the raw code for services no longer in the catalog.
func ServiceLabel(code string) string {
	if s, ok := serviceIndex[code]; ok {
		return s.Label
	}
	return code
}
