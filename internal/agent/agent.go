// Package agent drives the send-message flow: append the user's message,
// call the model, append the reply.
package agent

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/qmuntal/stateless"

	"github.com/vedantk/helixar-go/internal/llm"
	"github.com/vedantk/helixar-go/internal/logger"
	"github.com/vedantk/helixar-go/internal/session"
)

// FSM states
type FSMState stateless.State

var (
	StateReadyToCallModel FSMState = "ReadyToCallModel"
	StateDone             FSMState = "Done"  // Terminal: reply appended (or dropped for a deleted session)
	StateError            FSMState = "Error" // Terminal: model call failed, session unchanged
)

// FSM triggers
type FSMTrigger stateless.Trigger

var (
	TriggerSendRequested  FSMTrigger = "SendRequested"
	TriggerModelResponded FSMTrigger = "ModelResponded"
	TriggerErrorOccurred  FSMTrigger = "ErrorOccurred"
)

// Reply used when the model returns empty text.
const fallbackReply = "I'm sorry, I couldn't generate a response."

// Persister is the write-back half of the persistence adapter. Writes are
// best-effort: a failed write is logged, never fatal to the send.
type Persister interface {
	SaveSessions([]session.Session) error
}

// Agent owns the chat send flow. It mutates the session store, persists
// the collection after each mutation, and calls the model exactly once
// per send.
type Agent struct {
	llmClient llm.Client
	store     *session.Store
	persist   Persister
	typing    atomic.Bool
}

// New creates a new agent. persist may be nil in tests.
func New(llmClient llm.Client, store *session.Store, persist Persister) *Agent {
	return &Agent{
		llmClient: llmClient,
		store:     store,
		persist:   persist,
	}
}

// Typing reports whether a model call is in flight.
func (a *Agent) Typing() bool {
	return a.typing.Load()
}

// Send appends text as a user message to the named session (promoting the
// draft if that's the target), requests a completion, and appends the
// reply. On model failure the session keeps the user message but gains no
// reply, and the error is returned to the caller.
//
// The flow after the user-message append runs through a small FSM, so the
// terminal states are explicit: Done with a reply, or Error with the
// session otherwise untouched.
func (a *Agent) Send(ctx context.Context, sessionID, text string) (string, error) {
	msg, err := a.store.AppendUserMessage(sessionID, text)
	if err != nil {
		// Validation no-ops: nothing was mutated, nothing to persist.
		return "", err
	}
	a.persistSessions()
	logger.L.Debug("user message appended", "session", sessionID, "message", msg.ID)

	type fsmContext struct {
		reply     string
		lastError error
	}
	fsmCtx := &fsmContext{}

	fsm := stateless.NewStateMachine(StateReadyToCallModel)

	// State: ReadyToCallModel
	// Action: call the model with the user's text. The typing flag is set
	// for the duration of the call regardless of outcome.
	fsm.Configure(StateReadyToCallModel).
		PermitReentry(TriggerSendRequested). // the initial Fire re-enters so OnEntry runs
		OnEntry(func(ctx context.Context, args ...any) error {
			a.typing.Store(true)
			reply, err := a.llmClient.Complete(ctx, text)
			a.typing.Store(false)
			if err != nil {
				logger.L.Error("model call failed", "session", sessionID, "error", err)
				fsmCtx.lastError = err
				return fsm.FireCtx(ctx, TriggerErrorOccurred)
			}
			if reply == "" {
				reply = fallbackReply
			}
			fsmCtx.reply = reply
			return fsm.FireCtx(ctx, TriggerModelResponded)
		}).
		Permit(TriggerModelResponded, StateDone).
		Permit(TriggerErrorOccurred, StateError)

	// State: Done
	// Action: append the reply. If the session was deleted while the call
	// was in flight the reply is dropped silently.
	fsm.Configure(StateDone).
		OnEntry(func(ctx context.Context, args ...any) error {
			if !a.store.AppendAssistantMessage(sessionID, fsmCtx.reply) {
				logger.L.Warn("session gone before reply arrived; dropping", "session", sessionID)
				return nil
			}
			a.persistSessions()
			return nil
		})

	// State: Error
	// Terminal; the error is already in fsmCtx.lastError.
	fsm.Configure(StateError).
		OnEntry(func(ctx context.Context, args ...any) error {
			if fsmCtx.lastError == nil {
				fsmCtx.lastError = errors.New("send flow reached error state without a specific error")
			}
			return nil
		})

	if err := fsm.FireCtx(ctx, TriggerSendRequested); err != nil {
		logger.L.Error("send flow failed to start", "error", err)
		if fsmCtx.lastError != nil {
			return "", fsmCtx.lastError
		}
		return "", fmt.Errorf("send flow error: %w", err)
	}

	currentState, err := fsm.State(ctx)
	if err != nil {
		return "", fmt.Errorf("send flow internal error: %w", err)
	}
	switch currentState {
	case StateDone:
		return fsmCtx.reply, nil
	case StateError:
		return "", fsmCtx.lastError
	default:
		return "", fmt.Errorf("send flow ended in an unexpected state: %v", currentState)
	}
}

// persistSessions writes the collection back, best-effort.
func (a *Agent) persistSessions() {
	if a.persist == nil {
		return
	}
	if err := a.persist.SaveSessions(a.store.Sessions()); err != nil {
		logger.L.Error("failed to persist sessions", "error", err)
	}
}
