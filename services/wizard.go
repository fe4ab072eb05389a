package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Jenaru0/SIGIM/models"
)

// Step enumerates the ordered steps of the citizen report wizard.
type Step int

const (
	StepCategory Step = iota
	StepLocation
	StepEvidence
	StepDescription
	stepCount
)

// Submission-time bounds enforced by the wizard, not by the store.
const (
	MinDescriptionLen = 10
	MaxDescriptionLen = 500
	MinAddressLen     = 5
)

// ReportForm carries everything the wizard collects before submission.
type ReportForm struct {
	Category    string
	Description string
	Address     string
	Lat         *float64
	Lng         *float64
	HasPhoto    bool
}

// ValidateStep checks the gate for a single step. Messages are the ones
// shown to the citizen.
func (f *ReportForm) ValidateStep(s Step) error {
	switch s {
	case StepCategory:
		if !models.Category(f.Category).Valid() {
			return errors.New("Selecciona un tipo de problema")
		}
	case StepLocation:
		if len(strings.TrimSpace(f.Address)) < MinAddressLen || f.Lat == nil || f.Lng == nil {
			return errors.New("Marca la ubicación en el mapa o busca una dirección válida")
		}
	case StepEvidence:
		if !f.HasPhoto {
			return errors.New("Sube una foto de evidencia")
		}
	case StepDescription:
		desc := strings.TrimSpace(f.Description)
		if len(desc) < MinDescriptionLen {
			return errors.New("Describe el problema (mínimo 10 caracteres)")
		}
		if len(desc) > MaxDescriptionLen {
			return errors.New("La descripción es demasiado larga (máximo 500 caracteres)")
		}
	default:
		return fmt.Errorf("unknown wizard step %d", s)
	}
	return nil
}

// Validate re-runs every step gate in order and returns the first failing
// step together with its message. The error is nil when the whole form is
// submittable; the returned Step is meaningless in that case.
func (f *ReportForm) Validate() (Step, error) {
	for s := StepCategory; s < stepCount; s++ {
		if err := f.ValidateStep(s); err != nil {
			return s, err
		}
	}
	return stepCount, nil
}

// Wizard drives the multi-step submission flow. Forward moves are gated by
// the current step's validator; backward moves are unguarded. Submit
// re-validates everything and jumps back to the first failing step instead
// of submitting.
type Wizard struct {
	Form      ReportForm
	step      Step
	submitted bool
}

func NewWizard() *Wizard {
	return &Wizard{}
}

func (w *Wizard) Step() Step      { return w.step }
func (w *Wizard) Submitted() bool { return w.submitted }

// Next advances one step if the current step validates.
func (w *Wizard) Next() error {
	if err := w.Form.ValidateStep(w.step); err != nil {
		return err
	}
	if w.step < StepDescription {
		w.step++
	}
	return nil
}

// Back moves one step backward, never below the first step.
func (w *Wizard) Back() {
	if w.step > StepCategory {
		w.step--
	}
}

// Submit re-validates all steps. On failure the wizard jumps to the
// offending step and reports its message; on success the wizard reaches
// its terminal submitted state.
func (w *Wizard) Submit() error {
	if step, err := w.Form.Validate(); err != nil {
		w.step = step
		return err
	}
	w.submitted = true
	return nil
}
