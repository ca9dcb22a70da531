package vitals

import (
	"errors"
	"testing"

	"github.com/juliet3570/afyajamii-client/internal/gateway"
)

func TestFormParse(t *testing.T) {
	form := filledForm()
	form.BloodSugar = " 5.5 "
	form.BodyTempUnit = "Fahrenheit"
	form.PatientHistory = "  gestational diabetes  "

	in, err := form.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if in.Age != 28 || in.SystolicBP != 120 || in.DiastolicBP != 80 || in.HeartRate != 75 {
		t.Fatalf("in=%+v", in)
	}
	if in.BloodSugar != 5.5 || in.BodyTemp != 37.0 {
		t.Fatalf("in=%+v", in)
	}
	if in.BodyTempUnit != gateway.UnitFahrenheit {
		t.Fatalf("unit=%q", in.BodyTempUnit)
	}
	if in.PatientHistory != "gestational diabetes" {
		t.Fatalf("history=%q", in.PatientHistory)
	}
}

func TestFormParseErrors(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*Form)
		wantField string
	}{
		{"missing age", func(f *Form) { f.Age = "" }, "age"},
		{"non-numeric systolic", func(f *Form) { f.SystolicBP = "high" }, "systolic_bp"},
		{"fractional heart rate", func(f *Form) { f.HeartRate = "75.5" }, "heart_rate"},
		{"non-numeric sugar", func(f *Form) { f.BloodSugar = "sweet" }, "bs"},
		{"bad unit", func(f *Form) { f.BodyTempUnit = "kelvin" }, "body_temp_unit"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := filledForm()
			tc.mutate(&form)

			_, err := form.Parse()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err=%v, want *ValidationError", err)
			}
			if verr.Field != tc.wantField {
				t.Fatalf("field=%q want %q", verr.Field, tc.wantField)
			}
		})
	}
}

func TestFormReset(t *testing.T) {
	form := filledForm()
	form.Reset()

	if form != NewForm() {
		t.Fatalf("form=%+v", form)
	}
	if form.BodyTempUnit != string(gateway.UnitCelsius) {
		t.Fatalf("default unit=%q", form.BodyTempUnit)
	}
}
