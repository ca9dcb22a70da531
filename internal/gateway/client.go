// Package gateway is the typed boundary to the AfyaJamii backend: one method
// per remote operation, JSON over HTTPS under /api/v1, uniform error
// normalization.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/juliet3570/afyajamii-client/internal/platform/logger"
)

const apiPrefix = "/api/v1"

// Fallback messages substituted when a failed response has no parsable detail.
const (
	fallbackLogin         = "Login failed"
	fallbackSignup        = "Signup failed"
	fallbackSubmit        = "Failed to submit vitals"
	fallbackAdvice        = "Failed to get advice"
	fallbackVitalsHist    = "Failed to fetch vitals history"
	fallbackConversations = "Failed to fetch conversations history"
)

type Options struct {
	BaseURL string

	Timeout time.Duration

	HTTPClient *http.Client
	Log        *logger.Logger
}

type Client struct {
	baseURL string
	timeout time.Duration

	httpClient *http.Client
	log        *logger.Logger
}

func New(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("baseURL required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}

	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: hc,
		log:        log,
	}, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// Login exchanges credentials for a session token. The backend has answered
// with either a "token" or an "access_token" field over time; decoding accepts
// both (see loginResponse.token). An empty token with a nil error means the
// response carried neither.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	req := loginRequest{Username: username, Password: password}

	var resp loginResponse
	if err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/auth/login", "", fallbackLogin, req, &resp); err != nil {
		return "", err
	}
	return resp.token(), nil
}

// Signup creates an account and returns the backend's confirmation message.
func (c *Client) Signup(ctx context.Context, in SignupInput) (string, error) {
	var resp signupResponse
	if err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/auth/signup", "", fallbackSignup, in, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// SubmitVitals sends one set of readings for scoring and returns the combined
// ML and LLM output.
func (c *Client) SubmitVitals(ctx context.Context, vitals VitalsInput, accountType AccountType, token string) (*RiskAssessment, error) {
	req := vitalsSubmitRequest{Vitals: vitals, AccountType: accountType}

	var resp RiskAssessment
	if err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/vitals/submit", token, fallbackSubmit, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChatAdvice sends a free-text question and returns the assistant's reply.
func (c *Client) ChatAdvice(ctx context.Context, question, token string) (*ChatReply, error) {
	req := chatRequest{Question: question}

	var resp ChatReply
	if err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/chat/advice", token, fallbackAdvice, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VitalsHistory returns up to limit stored submissions, most recent first.
func (c *Client) VitalsHistory(ctx context.Context, token string, limit int) ([]VitalsRecord, error) {
	path := apiPrefix + "/history/vitals?limit=" + strconv.Itoa(limit)

	var resp []VitalsRecord
	if err := c.doJSON(ctx, http.MethodGet, path, token, fallbackVitalsHist, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ConversationsHistory returns up to limit stored chat exchanges, most recent
// first.
func (c *Client) ConversationsHistory(ctx context.Context, token string, limit int) ([]ConversationRecord, error) {
	path := apiPrefix + "/history/conversations?limit=" + strconv.Itoa(limit)

	var resp []ConversationRecord
	if err := c.doJSON(ctx, http.MethodGet, path, token, fallbackConversations, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ---------------- HTTP helpers ----------------

func (c *Client) setHeaders(req *http.Request, token string) {
	req.Header.Set("Accept", "application/json")
	if req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(token))
	}
}

// doJSON performs one request and decodes the response into out. A non-2xx
// status is normalized through parseAPIError with the operation's fallback
// message. The token is attached as a bearer credential when present; whether
// it must be present is the caller's concern.
func (c *Client) doJSON(ctx context.Context, method, path, token, fallback string, body, out any) error {
	var reader io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
		reader = &buf
	}

	ctx2, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx2, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	c.setHeaders(req, token)

	c.log.Debug("api request", "method", method, "path", req.URL.Path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s: %w", fallback, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Debug("api error", "method", method, "path", req.URL.Path, "status", resp.StatusCode)
		return parseAPIError(resp.StatusCode, raw, fallback)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: fallback}
	}
	return nil
}
