package wizard

import (
	"github.com/nurpe/booking-wizard/internal/pricing"
	"github.com/nurpe/booking-wizard/internal/validation"
)

// Step is one stage of the booking wizard.
type Step string

const (
	StepContact Step = "contact"
	StepService Step = "service"
	StepOptions Step = "options"
	StepConfirm Step = "confirm"
)

// Sequence is the fixed order in which steps are visited.
var Sequence = []Step{StepContact, StepService, StepOptions, StepConfirm}

var stepLabels = map[Step]string{
	StepContact: "Contact",
	StepService: "Service details",
	StepOptions: "Options",
	StepConfirm: "Confirm",
}

// ParseStep reports whether raw names a known step.
func ParseStep(raw string) (Step, bool) {
	for _, step := range Sequence {
		if string(step) == raw {
			return step, true
		}
	}
	return "", false
}

// Clamp maps any unknown or empty value to the first step.
func Clamp(raw string) Step {
	if step, ok := ParseStep(raw); ok {
		return step
	}
	return Sequence[0]
}

func (s Step) index() int {
	for i, step := range Sequence {
		if step == s {
			return i
		}
	}
	return -1
}

func (s Step) Label() string {
	return stepLabels[s]
}

// Number is the 1-based position of the step in the sequence.
func (s Step) Number() int {
	return s.index() + 1
}

// Next returns the following step. ok is false on the terminal step.
func (s Step) Next() (Step, bool) {
	i := s.index()
	if i < 0 || i+1 >= len(Sequence) {
		return "", false
	}
	return Sequence[i+1], true
}

// Prev returns the preceding step. ok is false on the first step.
func (s Step) Prev() (Step, bool) {
	i := s.index()
	if i <= 0 {
		return "", false
	}
	return Sequence[i-1], true
}

// Fields lists the form fields collected on the step.
func (s Step) Fields() []string {
	switch s {
	case StepContact:
		return []string{validation.FieldName, validation.FieldPhone, validation.FieldEmail}
	case StepService:
		return []string{validation.FieldServiceType, validation.FieldLocation, validation.FieldPreferredDate}
	case StepOptions:
		return append(pricing.OptionCodes(), validation.FieldMessage)
	default:
		return nil
	}
}
