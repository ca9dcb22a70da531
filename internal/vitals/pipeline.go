// Package vitals orchestrates one submission: coerce the entered readings,
// send them for scoring, hand the assessment to the caller.
package vitals

import (
	"context"
	"errors"

	"github.com/juliet3570/afyajamii-client/internal/gateway"
	"github.com/juliet3570/afyajamii-client/internal/platform/logger"
	"github.com/juliet3570/afyajamii-client/internal/session"
)

// ErrNotAuthenticated is returned before any network call when the session is
// missing a token or an account type.
var ErrNotAuthenticated = errors.New("not authenticated, please log in again")

// Submitter is the slice of the gateway the pipeline needs.
type Submitter interface {
	SubmitVitals(ctx context.Context, vitals gateway.VitalsInput, accountType gateway.AccountType, token string) (*gateway.RiskAssessment, error)
}

type Pipeline struct {
	api      Submitter
	sessions *session.Store
	log      *logger.Logger
}

func NewPipeline(api Submitter, sessions *session.Store, log *logger.Logger) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}
	return &Pipeline{api: api, sessions: sessions, log: log}
}

// Submit runs one submission attempt: precondition check, numeric coercion,
// exactly one network call. On success the hook fires once and the form is
// reset; on any failure the form is left as entered so the user can retry
// without re-typing. No retry, no idempotency key: a double submit produces a
// duplicate backend record.
func (p *Pipeline) Submit(ctx context.Context, form *Form, onSuccess func(*gateway.RiskAssessment)) error {
	sess := p.sessions.Current()
	if sess.Token == "" || sess.AccountType == "" {
		return ErrNotAuthenticated
	}

	input, err := form.Parse()
	if err != nil {
		return err
	}

	assessment, err := p.api.SubmitVitals(ctx, input, sess.AccountType, sess.Token)
	if err != nil {
		return err
	}

	p.log.Debug("vitals submitted",
		"submission_id", assessment.SubmissionID,
		"risk_label", assessment.MLOutput.RiskLabel)

	if onSuccess != nil {
		onSuccess(assessment)
	}
	form.Reset()
	return nil
}
