// Package negotiation implements the guided reconciliation session: its data
// model, the eight-step state machine, and the controller that owns every
// mutation. The store enforces no access control of its own, so the
// controller independently refuses role-gated mutations invoked by the wrong
// participant; refusals are silent no-ops rather than errors, because the
// surrounding surface routinely probes operations to decide what to render.
package negotiation

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// ReviewDelay is how long after resolution a session surfaces for review.
const ReviewDelay = 7 * 24 * time.Hour

// Session is one complete guided negotiation between the two participants.
// All mutation goes through the Controller's named operations; sessions are
// created only by triage and never deleted.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Initiator Participant `json:"initiator"`
	Recipient Participant `json:"recipient"`

	Step Step `json:"step"`

	// LastActedBy records which participant drove the most recent mutation.
	// Turn signals are derived from it at read time; see TurnFor.
	LastActedBy Participant `json:"last_acted_by"`

	RescheduleCount int `json:"reschedule_count"`

	Qualify    QualifyData    `json:"qualify"`
	Review     ReviewData     `json:"review"`
	Reflection ReflectionData `json:"reflection"`
	Schedule   ScheduleData   `json:"schedule"`
	Dialogue   DialogueData   `json:"dialogue"`
	Outcome    OutcomeData    `json:"outcome"`

	// Recap, ResolvedAt and ReviewAt are written exactly once, during the
	// transition into StepResolved, and never altered afterward.
	Recap      string     `json:"recap,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	ReviewAt   *time.Time `json:"review_at,omitempty"`

	Testimony TestimonyData `json:"testimony"`
}

// QualifyData carries the issue statement and both acceptance flags.
type QualifyData struct {
	Statement         string `json:"statement"`
	Details           string `json:"details"`
	InitiatorAccepted bool   `json:"initiator_accepted"`
	RecipientAccepted bool   `json:"recipient_accepted"`
}

// ReviewData carries the recipient-authored summary of the issue.
type ReviewData struct {
	Summary string `json:"summary"`
}

// ReflectionData carries the nonhostile questions, the self-critique, and
// the optional per-role identity statements.
type ReflectionData struct {
	Questions            string `json:"questions"`
	SelfCritique         string `json:"self_critique"`
	InitiatorIdentity    string `json:"initiator_identity"`
	RecipientIdentity    string `json:"recipient_identity"`
	ReconciliationPrompt string `json:"reconciliation_prompt"`
}

// ScheduleData carries the proposed meeting time and its confirmation state.
type ScheduleData struct {
	Date       string `json:"date"` // ISO date, e.g. 2025-03-01
	Time       string `json:"time"` // HH:MM
	Descriptor string `json:"descriptor"`
	Confirmed  bool   `json:"confirmed"`

	// AwaitingProposal is true while the initiator owes a (re)proposal:
	// on first entry into Schedule and again after a reschedule.
	AwaitingProposal bool `json:"awaiting_proposal"`
}

// DialogueData carries the two paraphrases and the completion flag.
type DialogueData struct {
	InitiatorParaphrase string `json:"initiator_paraphrase"`
	RecipientParaphrase string `json:"recipient_paraphrase"`
	Completed           bool   `json:"completed"`
}

// OutcomeData carries the decision, apology and follow-up texts plus the
// fairness confirmation.
type OutcomeData struct {
	Decisions         string `json:"decisions"`
	Apology           string `json:"apology"`
	FollowUpPlan      string `json:"follow_up_plan"`
	FairnessConfirmed bool   `json:"fairness_confirmed"`
}

// TestimonyData is the post-terminal annex. It is the only part of a
// resolved session that remains mutable.
type TestimonyData struct {
	Text       string     `json:"text"`
	Visibility Visibility `json:"visibility"`
}

// NewSession creates a session in StepQualify with the given role
// assignment. The recipient starts with the pending-action signal, since
// the initiator's opening move is what created the session.
func NewSession(initiator, recipient Participant, now time.Time) Session {
	return Session{
		ID:          generateSessionID(),
		CreatedAt:   now.UTC(),
		Initiator:   initiator,
		Recipient:   recipient,
		Step:        StepQualify,
		LastActedBy: initiator,
		Testimony:   TestimonyData{Visibility: VisibilityPrivate},
	}
}

// RoleOf returns the role p holds in this session.
func (s *Session) RoleOf(p Participant) (Role, bool) {
	switch p {
	case s.Initiator:
		return RoleInitiator, true
	case s.Recipient:
		return RoleRecipient, true
	default:
		return "", false
	}
}

// Other returns the participant opposite p.
func (s *Session) Other(p Participant) (Participant, bool) {
	switch p {
	case s.Initiator:
		return s.Recipient, true
	case s.Recipient:
		return s.Initiator, true
	default:
		return "", false
	}
}

// Resolved reports whether the session has reached its terminal step.
func (s *Session) Resolved() bool {
	return s.Step == StepResolved
}

// TurnFor reports whether p has pending information or a pending move in
// this session. The signal is advisory: it drives the pending-action
// indicator and has no bearing on transition legality. It is derived from
// persisted state rather than stored, so it can never disagree with the
// state machine.
func (s *Session) TurnFor(p Participant) bool {
	if _, ok := s.RoleOf(p); !ok {
		return false
	}
	switch s.Step {
	case StepResolved:
		return false
	case StepSchedule:
		if s.Schedule.AwaitingProposal {
			return p == s.Initiator
		}
		return p == s.Recipient
	default:
		return s.LastActedBy != "" && s.LastActedBy != p
	}
}

// advance moves the session one step forward and records who drove it.
func (s *Session) advance(actor Participant) {
	s.Step = next(s.Step)
	s.LastActedBy = actor
	if s.Step == StepSchedule {
		s.Schedule.AwaitingProposal = true
	}
}

// recapLabels is the fixed, order-sensitive recap template.
var recapLabels = []string{
	"Issue",
	"Details",
	"Review",
	"Questions",
	"Self-critique",
	"Scheduled",
	"Agreements",
	"Apologies",
	"Follow-up",
}

// synthesizeRecap renders the fixed nine-line summary. Each line is
// "<Label>: <value-or-empty>", newline-joined, in template order.
func (s *Session) synthesizeRecap() string {
	scheduled := "not scheduled"
	if s.Schedule.Confirmed {
		scheduled = strings.TrimSpace(fmt.Sprintf("%s %s", s.Schedule.Date, s.Schedule.Time))
		if s.Schedule.Descriptor != "" {
			scheduled = fmt.Sprintf("%s (%s)", scheduled, s.Schedule.Descriptor)
		}
	}

	values := []string{
		s.Qualify.Statement,
		s.Qualify.Details,
		s.Review.Summary,
		s.Reflection.Questions,
		s.Reflection.SelfCritique,
		scheduled,
		s.Outcome.Decisions,
		s.Outcome.Apology,
		s.Outcome.FollowUpPlan,
	}

	lines := make([]string, len(recapLabels))
	for i, label := range recapLabels {
		lines[i] = fmt.Sprintf("%s: %s", label, values[i])
	}
	return strings.Join(lines, "\n")
}

// generateSessionID creates a random session identifier.
func generateSessionID() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("s-%d", time.Now().UnixNano())
	}
	return "s-" + hex.EncodeToString(b)
}
