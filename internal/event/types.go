package event

import "time"

// Event type names used for subscription routing.
const (
	TypeSessionCreated   = "session.created"
	TypeStepAdvanced     = "session.step_advanced"
	TypeTimeProposed     = "session.time_proposed"
	TypeRescheduled      = "session.rescheduled"
	TypeSessionResolved  = "session.resolved"
	TypeTestimonyUpdated = "session.testimony_updated"
	TypePauseAgreement   = "triage.pause_agreement"
)

// Event is implemented by all published event payloads.
type Event interface {
	Type() string
}

// SessionCreatedEvent is published when triage creates a new session.
type SessionCreatedEvent struct {
	SessionID string
	Initiator string
	Recipient string
	Heat      string
}

// Type returns the event type name.
func (SessionCreatedEvent) Type() string { return TypeSessionCreated }

// StepAdvancedEvent is published when a session moves to a new step.
type StepAdvancedEvent struct {
	SessionID string
	From      string
	To        string
	ActedBy   string
}

// Type returns the event type name.
func (StepAdvancedEvent) Type() string { return TypeStepAdvanced }

// TimeProposedEvent is published when the initiator proposes a meeting time.
type TimeProposedEvent struct {
	SessionID  string
	Date       string
	Time       string
	Descriptor string
}

// Type returns the event type name.
func (TimeProposedEvent) Type() string { return TypeTimeProposed }

// RescheduledEvent is published when a confirmed time is sent back for
// a second proposal.
type RescheduledEvent struct {
	SessionID   string
	RequestedBy string
	Count       int
}

// Type returns the event type name.
func (RescheduledEvent) Type() string { return TypeRescheduled }

// SessionResolvedEvent is published once, at the terminal transition.
type SessionResolvedEvent struct {
	SessionID  string
	ResolvedAt time.Time
	ReviewAt   time.Time
}

// Type returns the event type name.
func (SessionResolvedEvent) Type() string { return TypeSessionResolved }

// TestimonyUpdatedEvent is published when a testimony is set or withdrawn.
type TestimonyUpdatedEvent struct {
	SessionID  string
	Visibility string
	Withdrawn  bool
}

// Type returns the event type name.
func (TestimonyUpdatedEvent) Type() string { return TypeTestimonyUpdated }

// PauseAgreementEvent is published when a crisis-level triage produces a
// pause agreement instead of a session.
type PauseAgreementEvent struct {
	Participant string
	ReturnTime  string
}

// Type returns the event type name.
func (PauseAgreementEvent) Type() string { return TypePauseAgreement }
