package pricing

// Estimate returns the total price in yen for a service type and a set of
// enabled options. An unknown service type yields 0 regardless of options so
// the preview never shows a surcharge-only total.
func Estimate(serviceType string, flags OptionFlags) int {
	service, ok := serviceIndex[serviceType]
	if !ok {
		return 0
	}

	total := service.BasePrice
	for _, code := range flags.Enabled() {
		if opt, ok := optionIndex[code]; ok {
			total += opt.Surcharge
		}
	}
	return total
}

// Breakdown is one priced line of an estimate.
type Breakdown struct {
	Code   string
	Label  string
	Amount int
}

// Lines itemizes an estimate: the service base price first, then every enabled
// option. It returns nil for an unknown service type.
func Lines(serviceType string, flags OptionFlags) []Breakdown {
	service, ok := serviceIndex[serviceType]
	if !ok {
		return nil
	}
	lines := []Breakdown{{Code: service.Code, Label: service.Label, Amount: service.BasePrice}}
	for _, code := range flags.Enabled() {
		opt := optionIndex[code]
		lines = append(lines, Breakdown{Code: opt.Code, Label: opt.Label, Amount: opt.Surcharge})
	}
	return lines
}
