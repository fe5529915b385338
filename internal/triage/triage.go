// Package triage decides whether a session is created at all. The
// initiating participant records a coarse heat self-assessment; a crisis
// reading short-circuits into a pause agreement exported as a calendar
// artifact, while any other level creates a session with the triaging
// participant as initiator.
package triage

import (
	"fmt"
	"strings"
	"time"

	"github.com/concordapp/concord/internal/errors"
	"github.com/concordapp/concord/internal/event"
	"github.com/concordapp/concord/internal/export"
	"github.com/concordapp/concord/internal/negotiation"
)

// HeatLevel is the four-point pre-session self-assessment.
type HeatLevel string

// Heat levels, hottest first.
const (
	HeatCrisis HeatLevel = "crisis"
	HeatHot    HeatLevel = "hot"
	HeatTense  HeatLevel = "tense"
	HeatCool   HeatLevel = "cool"
)

// Levels returns the heat levels in order, hottest first.
func Levels() []HeatLevel {
	return []HeatLevel{HeatCrisis, HeatHot, HeatTense, HeatCool}
}

// ParseHeat parses a heat level from user input.
func ParseHeat(s string) (HeatLevel, error) {
	switch HeatLevel(strings.ToLower(strings.TrimSpace(s))) {
	case HeatCrisis:
		return HeatCrisis, nil
	case HeatHot:
		return HeatHot, nil
	case HeatTense:
		return HeatTense, nil
	case HeatCool:
		return HeatCool, nil
	}
	return "", errors.NewValidationError("heat", fmt.Sprintf("unknown level %q (expect crisis, hot, tense or cool)", s))
}

// PauseAgreement is the free-text artifact captured instead of a session
// when the heat level is crisis.
type PauseAgreement struct {
	// ReturnTime is when the participants agree to come back to the issue.
	ReturnTime string
	// GroundRules are the terms of the pause.
	GroundRules string
}

// Result is the outcome of a triage: exactly one of Session or Artifact is
// populated.
type Result struct {
	// Session is the newly created session, nil when the level was crisis.
	Session *negotiation.Session
	// Artifact is the pause-agreement calendar export, nil otherwise.
	Artifact []byte
}

// Store is the subset of the session store triage needs.
type Store interface {
	Put(s negotiation.Session) error
}

// Triage performs heat assessment and the session-or-pause branch.
type Triage struct {
	store Store
	bus   *event.Bus
	now   func() time.Time
}

// Option configures a Triage.
type Option func(*Triage)

// WithClock overrides the triage time source.
func WithClock(now func() time.Time) Option {
	return func(t *Triage) {
		if now != nil {
			t.now = now
		}
	}
}

// New creates a Triage over the given store. The bus may be nil.
func New(store Store, bus *event.Bus, opts ...Option) *Triage {
	t := &Triage{store: store, bus: bus, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Begin runs the pre-session branch for the given initiator. A crisis level
// produces a pause-agreement artifact and adds nothing to the store; any
// other level creates and persists a session in the qualify step, with the
// other participant as recipient.
func (t *Triage) Begin(initiator, recipient negotiation.Participant, level HeatLevel, pause PauseAgreement) (Result, error) {
	if initiator == recipient {
		return Result{}, errors.NewValidationError("participants", "initiator and recipient must differ")
	}

	if level == HeatCrisis {
		returnTime := strings.TrimSpace(pause.ReturnTime)
		if returnTime == "" {
			return Result{}, errors.NewValidationError("return_time", "a crisis pause needs a return time")
		}
		description := fmt.Sprintf("Return: %s", returnTime)
		if rules := strings.TrimSpace(pause.GroundRules); rules != "" {
			description = fmt.Sprintf("%s\nGround rules: %s", description, rules)
		}
		artifact := export.Event("Pause agreement", description, "", "")

		t.bus.Publish(event.PauseAgreementEvent{
			Participant: string(initiator),
			ReturnTime:  returnTime,
		})
		return Result{Artifact: artifact}, nil
	}

	sess := negotiation.NewSession(initiator, recipient, t.now())
	if err := t.store.Put(sess); err != nil {
		return Result{}, fmt.Errorf("persist new session: %w", err)
	}

	t.bus.Publish(event.SessionCreatedEvent{
		SessionID: sess.ID,
		Initiator: string(initiator),
		Recipient: string(recipient),
		Heat:      string(level),
	})
	return Result{Session: &sess}, nil
}
