package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func newTestClient(t *testing.T, rt roundTripperFunc) *Client {
	t.Helper()
	c, err := New(Options{
		BaseURL:    "http://backend",
		HTTPClient: &http.Client{Transport: rt},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

func TestLogin_TokenFieldPrecedence(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"token only", `{"token":"t1"}`, "t1"},
		{"access_token only", `{"access_token":"t2","token_type":"bearer"}`, "t2"},
		{"token wins over access_token", `{"token":"t1","access_token":"t2"}`, "t1"},
		{"neither present", `{"token_type":"bearer"}`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
				if req.URL.Path != "/api/v1/auth/login" {
					t.Fatalf("unexpected path: %s", req.URL.Path)
				}
				if req.Method != http.MethodPost {
					t.Fatalf("method=%s", req.Method)
				}

				var in struct {
					Username string `json:"username"`
					Password string `json:"password"`
				}
				if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
					t.Fatalf("decode req: %v", err)
				}
				if in.Username != "amina" || in.Password != "secret" {
					t.Fatalf("credentials=%q/%q", in.Username, in.Password)
				}
				if got := req.Header.Get("Authorization"); got != "" {
					t.Fatalf("login must not carry a bearer token, got %q", got)
				}
				return jsonResponse(http.StatusOK, tc.body), nil
			})

			token, err := c.Login(context.Background(), "amina", "secret")
			if err != nil {
				t.Fatalf("Login: %v", err)
			}
			if token != tc.want {
				t.Fatalf("token=%q want %q", token, tc.want)
			}
		})
	}
}

func TestErrorNormalization(t *testing.T) {
	t.Run("detail body", func(t *testing.T) {
		c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusUnauthorized, `{"detail":"Incorrect username or password"}`), nil
		})

		_, err := c.Login(context.Background(), "amina", "wrong")
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("want *APIError, got %T: %v", err, err)
		}
		if apiErr.Message != "Incorrect username or password" {
			t.Fatalf("message=%q", apiErr.Message)
		}
		if apiErr.StatusCode != http.StatusUnauthorized {
			t.Fatalf("status=%d", apiErr.StatusCode)
		}
		if err.Error() != "Incorrect username or password" {
			t.Fatalf("Error()=%q", err.Error())
		}
	})

	t.Run("unparsable body falls back", func(t *testing.T) {
		c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusBadGateway, `<html>bad gateway</html>`), nil
		})

		_, err := c.Login(context.Background(), "amina", "secret")
		if err == nil || err.Error() != "Login failed" {
			t.Fatalf("want fallback 'Login failed', got %v", err)
		}
	})

	t.Run("per-operation fallbacks", func(t *testing.T) {
		c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusInternalServerError, `{}`), nil
		})
		ctx := context.Background()

		if _, err := c.Signup(ctx, SignupInput{}); err == nil || err.Error() != "Signup failed" {
			t.Fatalf("signup fallback=%v", err)
		}
		if _, err := c.SubmitVitals(ctx, VitalsInput{}, AccountGeneral, "tok"); err == nil || err.Error() != "Failed to submit vitals" {
			t.Fatalf("submit fallback=%v", err)
		}
		if _, err := c.ChatAdvice(ctx, "q", "tok"); err == nil || err.Error() != "Failed to get advice" {
			t.Fatalf("advice fallback=%v", err)
		}
		if _, err := c.VitalsHistory(ctx, "tok", 10); err == nil || err.Error() != "Failed to fetch vitals history" {
			t.Fatalf("vitals history fallback=%v", err)
		}
		if _, err := c.ConversationsHistory(ctx, "tok", 10); err == nil || err.Error() != "Failed to fetch conversations history" {
			t.Fatalf("conversations fallback=%v", err)
		}
	})
}

func TestSubmitVitals(t *testing.T) {
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/v1/vitals/submit" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		if got := req.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Fatalf("authorization=%q", got)
		}

		var in struct {
			Vitals      map[string]any `json:"vitals"`
			AccountType string         `json:"account_type"`
		}
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			t.Fatalf("decode req: %v", err)
		}
		if in.AccountType != "pregnant" {
			t.Fatalf("account_type=%q", in.AccountType)
		}
		if in.Vitals["age"] != float64(28) || in.Vitals["body_temp_unit"] != "celsius" {
			t.Fatalf("vitals payload=%v", in.Vitals)
		}

		return jsonResponse(http.StatusOK, `{
			"user_id": 7,
			"submission_id": 42,
			"timestamp": "2024-05-01T10:00:00Z",
			"ml_output": {
				"risk_label": "High Risk",
				"probability": 0.91,
				"feature_importances": {"systolic_bp": 0.4, "bs": 0.25}
			},
			"llm_advice": {"advice": "See a doctor **today**.", "timestamp": "2024-05-01T10:00:02Z"}
		}`), nil
	})

	got, err := c.SubmitVitals(context.Background(), VitalsInput{
		Age:          28,
		SystolicBP:   140,
		DiastolicBP:  95,
		BloodSugar:   7.2,
		BodyTemp:     37.1,
		BodyTempUnit: UnitCelsius,
		HeartRate:    88,
	}, AccountPregnant, "tok123")
	if err != nil {
		t.Fatalf("SubmitVitals: %v", err)
	}
	if got.SubmissionID != 42 || got.MLOutput.RiskLabel != "High Risk" {
		t.Fatalf("assessment=%+v", got)
	}
	if got.MLOutput.FeatureImportances["systolic_bp"] != 0.4 {
		t.Fatalf("importances=%v", got.MLOutput.FeatureImportances)
	}
	if got.LLMAdvice.Advice == "" || got.LLMAdvice.Timestamp != "2024-05-01T10:00:02Z" {
		t.Fatalf("advice=%+v", got.LLMAdvice)
	}
}

func TestHistoryRequests(t *testing.T) {
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodGet {
			t.Fatalf("method=%s", req.Method)
		}
		if got := req.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("authorization=%q", got)
		}
		if got := req.URL.Query().Get("limit"); got != "10" {
			t.Fatalf("limit=%q", got)
		}

		switch req.URL.Path {
		case "/api/v1/history/vitals":
			return jsonResponse(http.StatusOK, `[
				{"id": 2, "ml_risk_label": "Low Risk", "ml_probability": 0.12,
				 "ml_feature_importances": "{\"age\": 0.3}", "created_at": "2024-05-02T08:00:00Z"},
				{"id": 1, "ml_risk_label": "High Risk", "ml_probability": 0.9,
				 "ml_feature_importances": {"bs": 0.5}, "created_at": "2024-05-01T08:00:00Z"}
			]`), nil
		case "/api/v1/history/conversations":
			return jsonResponse(http.StatusOK, `[
				{"id": 5, "vitals_record_id": null, "user_message": "hi", "ai_response": "hello", "created_at": "2024-05-02T09:00:00Z"}
			]`), nil
		default:
			t.Fatalf("unexpected path: %s", req.URL.Path)
			return nil, nil
		}
	})
	ctx := context.Background()

	recs, err := c.VitalsHistory(ctx, "tok", 10)
	if err != nil {
		t.Fatalf("VitalsHistory: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != 2 {
		t.Fatalf("records=%+v", recs)
	}
	// String-encoded importances decode same as object ones.
	if recs[0].FeatureImportances["age"] != 0.3 || recs[1].FeatureImportances["bs"] != 0.5 {
		t.Fatalf("importances=%v %v", recs[0].FeatureImportances, recs[1].FeatureImportances)
	}

	convs, err := c.ConversationsHistory(ctx, "tok", 10)
	if err != nil {
		t.Fatalf("ConversationsHistory: %v", err)
	}
	if len(convs) != 1 || convs[0].VitalsRecordID != nil {
		t.Fatalf("conversations=%+v", convs)
	}
}

func TestChatAdvice(t *testing.T) {
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/v1/chat/advice" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}

		var in struct {
			Question string `json:"question"`
		}
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			t.Fatalf("decode req: %v", err)
		}
		if in.Question != "is my bp normal?" {
			t.Fatalf("question=%q", in.Question)
		}
		return jsonResponse(http.StatusOK, `{"advice":"Yes, **keep monitoring**.","timestamp":"2024-05-01T11:00:00Z"}`), nil
	})

	reply, err := c.ChatAdvice(context.Background(), "is my bp normal?", "tok")
	if err != nil {
		t.Fatalf("ChatAdvice: %v", err)
	}
	if reply.Advice != "Yes, **keep monitoring**." || reply.Timestamp != "2024-05-01T11:00:00Z" {
		t.Fatalf("reply=%+v", reply)
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("want error for empty base URL")
	}
	c, err := New(Options{BaseURL: " http://backend/ "})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.BaseURL() != "http://backend" {
		t.Fatalf("baseURL=%q", c.BaseURL())
	}
}
