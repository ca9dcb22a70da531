// Package chat maintains a running transcript with the AI assistant and
// performs one question/answer exchange at a time.
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/juliet3570/afyajamii-client/internal/gateway"
	"github.com/juliet3570/afyajamii-client/internal/platform/logger"
	"github.com/juliet3570/afyajamii-client/internal/session"
)

var (
	ErrEmptyQuestion    = errors.New("question is empty")
	ErrNotAuthenticated = errors.New("not authenticated, please log in again")
)

// Advisor is the slice of the gateway the exchange needs.
type Advisor interface {
	ChatAdvice(ctx context.Context, question, token string) (*gateway.ChatReply, error)
}

type Exchange struct {
	api        Advisor
	sessions   *session.Store
	transcript Transcript
	log        *logger.Logger
}

func NewExchange(api Advisor, sessions *session.Store, log *logger.Logger) *Exchange {
	if log == nil {
		log = logger.Nop()
	}
	return &Exchange{api: api, sessions: sessions, log: log}
}

// Messages exposes the transcript for rendering.
func (e *Exchange) Messages() []Message {
	return e.transcript.Messages()
}

// Send appends the user's turn optimistically, then asks the backend. On
// success the AI turn is appended with the server's timestamp and the returned
// message is the AI turn. On failure the user's turn is not rolled back and no
// AI turn is appended; the error is the caller's to report. The failed turn is
// left confirmed rather than marked, indistinguishable from a successful one.
func (e *Exchange) Send(ctx context.Context, question string) (*Message, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	token := e.sessions.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	userTurn := e.transcript.append(RoleUser, question, time.Now().UTC().Format(time.RFC3339), StatusPending)

	reply, err := e.api.ChatAdvice(ctx, question, token)
	e.transcript.setStatus(userTurn.ID, StatusConfirmed)
	if err != nil {
		e.log.Debug("chat exchange failed", "error", err)
		return nil, err
	}

	aiTurn := e.transcript.append(RoleAI, reply.Advice, reply.Timestamp, StatusConfirmed)
	return &aiTurn, nil
}
