package services

import (
	"strings"
	"testing"
)

func validForm() ReportForm {
	lat, lng := -13.0769, -76.3858
	return ReportForm{
		Category:    "alumbrado",
		Description: "Poste de luz caído en la esquina",
		Address:     "Av. Mariscal Benavides 398",
		Lat:         &lat,
		Lng:         &lng,
		HasPhoto:    true,
	}
}

func TestValidateStep(t *testing.T) {
	lat, lng := -13.0769, -76.3858

	tests := []struct {
		name   string
		mutate func(*ReportForm)
		step   Step
		ok     bool
	}{
		{name: "categoria valida", mutate: func(f *ReportForm) {}, step: StepCategory, ok: true},
		{name: "categoria vacia", mutate: func(f *ReportForm) { f.Category = "" }, step: StepCategory, ok: false},
		{name: "categoria desconocida", mutate: func(f *ReportForm) { f.Category = "telefonia" }, step: StepCategory, ok: false},
		{name: "direccion de 5 chars con coords", mutate: func(f *ReportForm) { f.Address = "Av. X" }, step: StepLocation, ok: true},
		{name: "direccion de 5 chars sin coords", mutate: func(f *ReportForm) { f.Address = "Av. X"; f.Lat = nil; f.Lng = nil }, step: StepLocation, ok: false},
		{name: "direccion de 4 chars", mutate: func(f *ReportForm) { f.Address = "Av.X" }, step: StepLocation, ok: false},
		{name: "solo latitud", mutate: func(f *ReportForm) { f.Lat = &lat; f.Lng = nil }, step: StepLocation, ok: false},
		{name: "solo longitud", mutate: func(f *ReportForm) { f.Lat = nil; f.Lng = &lng }, step: StepLocation, ok: false},
		{name: "con foto", mutate: func(f *ReportForm) {}, step: StepEvidence, ok: true},
		{name: "sin foto", mutate: func(f *ReportForm) { f.HasPhoto = false }, step: StepEvidence, ok: false},
		{name: "descripcion de 10 chars", mutate: func(f *ReportForm) { f.Description = "0123456789" }, step: StepDescription, ok: true},
		{name: "descripcion de 9 chars", mutate: func(f *ReportForm) { f.Description = "012345678" }, step: StepDescription, ok: false},
		{name: "descripcion de solo espacios", mutate: func(f *ReportForm) { f.Description = strings.Repeat(" ", 20) }, step: StepDescription, ok: false},
		{name: "descripcion de 500 chars", mutate: func(f *ReportForm) { f.Description = strings.Repeat("a", 500) }, step: StepDescription, ok: true},
		{name: "descripcion de 501 chars", mutate: func(f *ReportForm) { f.Description = strings.Repeat("a", 501) }, step: StepDescription, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			err := form.ValidateStep(tt.step)
			if tt.ok && err != nil {
				t.Errorf("ValidateStep(%d) = %v, want nil", tt.step, err)
			}
			if !tt.ok && err == nil {
				t.Errorf("ValidateStep(%d) = nil, want error", tt.step)
			}
		})
	}
}

func TestValidateReportsFirstFailingStep(t *testing.T) {
	form := validForm()
	form.Address = ""
	form.Description = "corta"

	step, err := form.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if step != StepLocation {
		t.Errorf("Validate() step = %d, want StepLocation", step)
	}
}

func TestWizardForwardGating(t *testing.T) {
	w := NewWizard()

	// Empty form: the first step must not let us through.
	if err := w.Next(); err == nil {
		t.Fatal("Next() on empty form = nil, want error")
	}
	if w.Step() != StepCategory {
		t.Fatalf("step advanced to %d on failed validation", w.Step())
	}

	w.Form = validForm()
	for _, want := range []Step{StepLocation, StepEvidence, StepDescription} {
		if err := w.Next(); err != nil {
			t.Fatalf("Next() = %v", err)
		}
		if w.Step() != want {
			t.Fatalf("Step() = %d, want %d", w.Step(), want)
		}
	}
}

func TestWizardBackIsUnguarded(t *testing.T) {
	w := NewWizard()
	w.Back()
	if w.Step() != StepCategory {
		t.Errorf("Back() below first step, got %d", w.Step())
	}

	w.Form = validForm()
	if err := w.Next(); err != nil {
		t.Fatal(err)
	}
	w.Form.Category = "" // invalidate a previous step
	w.Back()
	if w.Step() != StepCategory {
		t.Errorf("Back() with invalid form did not move, step = %d", w.Step())
	}
}

func TestWizardSubmit(t *testing.T) {
	w := NewWizard()
	w.Form = validForm()
	w.Form.HasPhoto = false

	if err := w.Submit(); err == nil {
		t.Fatal("Submit() with missing photo = nil, want error")
	}
	if w.Step() != StepEvidence {
		t.Errorf("Submit() jumped to step %d, want StepEvidence", w.Step())
	}
	if w.Submitted() {
		t.Error("Submitted() = true after failed submit")
	}

	w.Form.HasPhoto = true
	if err := w.Submit(); err != nil {
		t.Fatalf("Submit() = %v", err)
	}
	if !w.Submitted() {
		t.Error("Submitted() = false after successful submit")
	}
}
