package gateway

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// AccountType selects the backend's scoring and advice context.
type AccountType string

const (
	AccountPregnant  AccountType = "pregnant"
	AccountPostnatal AccountType = "postnatal"
	AccountGeneral   AccountType = "general"
)

func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(strings.ToLower(strings.TrimSpace(s))) {
	case AccountPregnant:
		return AccountPregnant, nil
	case AccountPostnatal:
		return AccountPostnatal, nil
	case AccountGeneral:
		return AccountGeneral, nil
	}
	return "", fmt.Errorf("invalid account type %q: must be pregnant, postnatal or general", s)
}

// TempUnit is the body temperature unit accepted by the backend.
type TempUnit string

const (
	UnitCelsius    TempUnit = "celsius"
	UnitFahrenheit TempUnit = "fahrenheit"
)

func ParseTempUnit(s string) (TempUnit, error) {
	switch TempUnit(strings.ToLower(strings.TrimSpace(s))) {
	case UnitCelsius:
		return UnitCelsius, nil
	case UnitFahrenheit:
		return UnitFahrenheit, nil
	}
	return "", fmt.Errorf("invalid temperature unit %q: must be celsius or fahrenheit", s)
}

// VitalsInput is one set of vital-sign readings, already coerced to numbers.
type VitalsInput struct {
	Age            int      `json:"age"`
	SystolicBP     int      `json:"systolic_bp"`
	DiastolicBP    int      `json:"diastolic_bp"`
	BloodSugar     float64  `json:"bs"`
	BodyTemp       float64  `json:"body_temp"`
	BodyTempUnit   TempUnit `json:"body_temp_unit"`
	HeartRate      int      `json:"heart_rate"`
	PatientHistory string   `json:"patient_history"`
}

// SignupInput is the payload for account creation.
type SignupInput struct {
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	AccountType AccountType `json:"account_type"`
	FullName    string      `json:"full_name"`
	Password    string      `json:"password"`
}

// FeatureImportances maps a vital's name to its contribution weight. The
// backend returns it as a JSON object on submission responses but may store it
// as a JSON-encoded string on history records, so decoding accepts both.
type FeatureImportances map[string]float64

func (f *FeatureImportances) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err == nil {
		*f = m
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("feature importances: expected object or string")
	}
	if strings.TrimSpace(s) == "" {
		*f = nil
		return nil
	}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return fmt.Errorf("feature importances: invalid encoded object: %w", err)
	}
	*f = m
	return nil
}

// Importance is one feature/weight pair.
type Importance struct {
	Feature string
	Weight  float64
}

// Sorted returns the importances ordered by descending weight, ties broken by
// feature name for stable output.
func (f FeatureImportances) Sorted() []Importance {
	out := make([]Importance, 0, len(f))
	for feature, weight := range f {
		out = append(out, Importance{Feature: feature, Weight: weight})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Feature < out[j].Feature
	})
	return out
}

// MLOutput is the classifier's portion of a risk assessment.
type MLOutput struct {
	RiskLabel          string             `json:"risk_label"`
	Probability        float64            `json:"probability"`
	FeatureImportances FeatureImportances `json:"feature_importances"`
}

// LLMAdvice is the generated advice portion of a risk assessment.
type LLMAdvice struct {
	Advice    string `json:"advice"`
	Timestamp string `json:"timestamp"`
}

// RiskAssessment is the full response to one vitals submission.
type RiskAssessment struct {
	UserID       int64     `json:"user_id"`
	SubmissionID int64     `json:"submission_id"`
	Timestamp    string    `json:"timestamp"`
	MLOutput     MLOutput  `json:"ml_output"`
	LLMAdvice    LLMAdvice `json:"llm_advice"`
}

// ChatReply is the response to one free-text question.
type ChatReply struct {
	Advice    string `json:"advice"`
	Timestamp string `json:"timestamp"`
}

// VitalsRecord is one stored submission, most recent first in history pages.
type VitalsRecord struct {
	ID                 int64              `json:"id"`
	UserID             int64              `json:"user_id"`
	Age                int                `json:"age"`
	SystolicBP         int                `json:"systolic_bp"`
	DiastolicBP        int                `json:"diastolic_bp"`
	BloodSugar         float64            `json:"bs"`
	BodyTemp           float64            `json:"body_temp"`
	BodyTempUnit       TempUnit           `json:"body_temp_unit"`
	HeartRate          int                `json:"heart_rate"`
	PatientHistory     string             `json:"patient_history"`
	RiskLabel          string             `json:"ml_risk_label"`
	Probability        float64            `json:"ml_probability"`
	FeatureImportances FeatureImportances `json:"ml_feature_importances"`
	CreatedAt          string             `json:"created_at"`
}

// ConversationRecord is one stored chat exchange, most recent first.
type ConversationRecord struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"`
	VitalsRecordID *int64 `json:"vitals_record_id"`
	UserMessage    string `json:"user_message"`
	AIResponse     string `json:"ai_response"`
	CreatedAt      string `json:"created_at"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse covers both field names the backend has used for the token.
type loginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
}

// token returns the session token with documented precedence: "token" first,
// then "access_token". Both absent yields "", which callers must treat as a
// failed precondition rather than a usable credential.
func (r loginResponse) token() string {
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}

type signupResponse struct {
	Message string `json:"message"`
}

type chatRequest struct {
	Question string `json:"question"`
}

type vitalsSubmitRequest struct {
	Vitals      VitalsInput `json:"vitals"`
	AccountType AccountType `json:"account_type"`
}
