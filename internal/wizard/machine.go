package wizard

import (
	"net/url"

	"github.com/nurpe/booking-wizard/internal/pricing"
	"github.com/nurpe/booking-wizard/internal/validation"
)

// Progress is the uncommitted state of one visitor's wizard.
type Progress struct {
	Step Step            `json:"step"`
	Form validation.Form `json:"form"`
}

// NewProgress returns the initial, empty state.
func NewProgress() Progress {
	return Progress{Step: Sequence[0]}
}

// Normalize clamps the step pointer into the sequence.
func (p Progress) Normalize() Progress {
	p.Step = Clamp(string(p.Step))
	return p
}

// Outcome is the result of submitting one step.
type Outcome struct {
	Progress Progress
	// Step is the step to render next.
	Step     Step
	Errors   validation.Errors
	Advanced bool
}

type Machine struct {
	validator *validation.Validator
}

func NewMachine(validator *validation.Validator) *Machine {
	return &Machine{validator: validator}
}

// Show moves the pointer to step without touching the collected data.
func (m *Machine) Show(p Progress, step Step) Progress {
	p = p.Normalize()
	p.Step = Clamp(string(step))
	return p
}

// Submit merges values into p, validates the fields owned by step and decides
// which step comes next. The cleaned data is kept even when validation fails.
func (m *Machine) Submit(p Progress, step Step, values url.Values, validateOnly bool) Outcome {
	p = p.Normalize()
	step = Clamp(string(step))

	merged := p.Form.Overlay(values, step == StepOptions)
	fields := step.Fields()
	cleaned, errs := m.validator.Validate(merged, validation.Partial(fields...))
	errs = errs.Only(fields)

	p.Form = cleaned
	p.Step = step
	out := Outcome{Progress: p, Step: step, Errors: errs}

	if len(errs) > 0 || validateOnly {
		return out
	}

	if next, ok := step.Next(); ok {
		out.Progress.Step = next
		out.Step = next
		out.Advanced = true
	}
	return out
}

// Refresh merges values for a price preview. Only the service type and option
// flags are looked at; the pointer does not move.
func (m *Machine) Refresh(p Progress, values url.Values) Progress {
	p = p.Normalize()
	merged := p.Form.Overlay(values, len(values) > 0)
	cleaned, _ := m.validator.Validate(merged, validation.Partial(validation.FieldServiceType))
	p.Form = cleaned
	return p
}

// Commit merges the final submission and validates every field. On failure the
// returned progress points at the confirm step so it can be re-rendered.
func (m *Machine) Commit(p Progress, values url.Values) (Progress, validation.Errors) {
	p = p.Normalize()
	merged := p.Form.Overlay(values, hasOptionFields(values))
	cleaned, errs := m.validator.Validate(merged, validation.Full())
	p.Form = cleaned
	if len(errs) > 0 {
		p.Step = StepConfirm
	}
	return p, errs
}

func hasOptionFields(values url.Values) bool {
	for _, code := range pricing.OptionCodes() {
		if _, ok := values[code]; ok {
			return true
		}
	}
	return false
}
