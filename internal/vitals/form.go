package vitals

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/juliet3570/afyajamii-client/internal/gateway"
)

// Form holds one submission attempt as the raw strings the user entered.
// Numbers are coerced only at parse time; no range validation is applied.
type Form struct {
	Age            string
	SystolicBP     string
	DiastolicBP    string
	BloodSugar     string
	BodyTemp       string
	BodyTempUnit   string
	HeartRate      string
	PatientHistory string
}

func NewForm() Form {
	return Form{BodyTempUnit: string(gateway.UnitCelsius)}
}

// Reset returns the form to its empty defaults, unit back to celsius.
func (f *Form) Reset() {
	*f = NewForm()
}

// ValidationError names the field that failed to parse, for inline display.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Parse coerces every field to its numeric type. All numeric fields are
// required; the history note is optional free text.
func (f *Form) Parse() (gateway.VitalsInput, error) {
	var in gateway.VitalsInput
	var err error

	if in.Age, err = parseIntField("age", f.Age); err != nil {
		return gateway.VitalsInput{}, err
	}
	if in.SystolicBP, err = parseIntField("systolic_bp", f.SystolicBP); err != nil {
		return gateway.VitalsInput{}, err
	}
	if in.DiastolicBP, err = parseIntField("diastolic_bp", f.DiastolicBP); err != nil {
		return gateway.VitalsInput{}, err
	}
	if in.BloodSugar, err = parseFloatField("bs", f.BloodSugar); err != nil {
		return gateway.VitalsInput{}, err
	}
	if in.BodyTemp, err = parseFloatField("body_temp", f.BodyTemp); err != nil {
		return gateway.VitalsInput{}, err
	}
	if in.HeartRate, err = parseIntField("heart_rate", f.HeartRate); err != nil {
		return gateway.VitalsInput{}, err
	}

	unit, err := gateway.ParseTempUnit(f.BodyTempUnit)
	if err != nil {
		return gateway.VitalsInput{}, &ValidationError{Field: "body_temp_unit", Reason: err.Error()}
	}
	in.BodyTempUnit = unit
	in.PatientHistory = strings.TrimSpace(f.PatientHistory)

	return in, nil
}

func parseIntField(field, value string) (int, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, &ValidationError{Field: field, Reason: "required"}
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: "must be a whole number"}
	}
	return n, nil
}

func parseFloatField(field, value string) (float64, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, &ValidationError{Field: field, Reason: "required"}
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: "must be a number"}
	}
	return n, nil
}
