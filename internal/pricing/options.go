package pricing

// OptionFlags holds the enabled state of every catalog option.
type OptionFlags struct {
	PhotoReport   bool `json:"options_photoreport"`
	PriorityVisit bool `json:"options_priority_visit"`
	WeekendVisit  bool `json:"options_weekend_visit"`
	ExtraStaff    bool `json:"options_extra_staff"`
}

// Get reports whether the option with the given code is enabled.
// Unknown codes are reported as disabled.
func (f OptionFlags) Get(code string) bool {
	switch code {
	case OptionPhotoReport:
		return f.PhotoReport
	case OptionPriorityVisit:
		return f.PriorityVisit
	case OptionWeekendVisit:
		return f.WeekendVisit
	case OptionExtraStaff:
		return f.ExtraStaff
	default:
		return false
	}
}

// Set enables or disables the option with the given code. It returns false
// when the code is not part of the catalog.
func (f *OptionFlags) Set(code string, enabled bool) bool {
	switch code {
	case OptionPhotoReport:
		f.PhotoReport = enabled
	case OptionPriorityVisit:
		f.PriorityVisit = enabled
	case OptionWeekendVisit:
		f.WeekendVisit = enabled
	case OptionExtraStaff:
		f.ExtraStaff = enabled
	default:
		return false
	}
	return true
}

// Enabled lists the codes of enabled options in catalog order.
func (f OptionFlags) Enabled() []string {
	var codes []string
	for _, item := range options {
		if f.Get(item.Code) {
			codes = append(codes, item.Code)
		}
	}
	return codes
}
