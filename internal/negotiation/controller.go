package negotiation

import (
	"fmt"
	"strings"
	"time"

	"github.com/concordapp/concord/internal/event"
)

// Store is the persistence surface the controller mutates through. The
// update primitive is read-the-record, replace-it, write-back; the store
// performs no access control and no guard checks of its own.
type Store interface {
	Get(id string) (Session, error)
	Put(s Session) error
}

// Controller owns transition legality, gating predicates, role
// authorization, reschedule bookkeeping, recap synthesis and follow-up
// scheduling. Every operation takes the acting participant explicitly; the
// controller, not the caller, decides whether that participant may perform
// the requested mutation.
//
// Operations return the session, a changed flag, and an error. Guard or
// role violations are not errors: they leave the session untouched and
// report changed == false. Errors are reserved for store failures.
type Controller struct {
	store Store
	bus   *event.Bus
	now   func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the controller's time source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController creates a controller over the given store. The bus may be
// nil, in which case no events are published.
func NewController(store Store, bus *event.Bus, opts ...Option) *Controller {
	c := &Controller{
		store: store,
		bus:   bus,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the session with the given ID.
func (c *Controller) Get(id string) (Session, error) {
	return c.store.Get(id)
}

// anyRole marks an operation open to both participants. The acting
// participant must still be one of the session's pair.
const anyRole Role = ""

// authorize is the single role check consulted by every mutation. A caller
// outside the session's pair is never authorized, regardless of operation.
func authorize(s *Session, actor Participant, required Role) bool {
	role, ok := s.RoleOf(actor)
	if !ok {
		return false
	}
	return required == anyRole || role == required
}

// mutate applies fn to the stored session under read-modify-write. When fn
// reports a change the session is written back and a step-change event is
// published if the step moved.
func (c *Controller) mutate(id string, actor Participant, fn func(*Session) bool) (Session, bool, error) {
	s, err := c.store.Get(id)
	if err != nil {
		return Session{}, false, err
	}

	before := s.Step
	if !fn(&s) {
		return s, false, nil
	}

	if err := c.store.Put(s); err != nil {
		return Session{}, false, fmt.Errorf("persist session %s: %w", id, err)
	}

	if s.Step != before {
		c.bus.Publish(event.StepAdvancedEvent{
			SessionID: s.ID,
			From:      string(before),
			To:        string(s.Step),
			ActedBy:   string(actor),
		})
	}
	return s, true, nil
}

// SubmitIssue records the initiator's issue statement and details and marks
// the initiator's acceptance. Resubmission overwrites the texts but leaves
// a recipient acceptance already given standing. When both acceptances and
// both texts are present the session advances to recipient review.
func (c *Controller) SubmitIssue(id string, actor Participant, statement, details string) (Session, bool, error) {
	statement = strings.TrimSpace(statement)
	details = strings.TrimSpace(details)

	return c.mutate(id, actor, func(s *Session) bool {
		if s.Step != StepQualify || !authorize(s, actor, RoleInitiator) {
			return false
		}
		if statement == "" || details == "" {
			return false
		}
		s.Qualify.Statement = statement
		s.Qualify.Details = details
		s.Qualify.InitiatorAccepted = true
		s.LastActedBy = actor
		if s.qualifyReady() {
			s.advance(actor)
		}
		return true
	})
}

// AcceptIssue records the recipient's acceptance of the submitted issue.
// Acceptance requires a submitted issue; once both sides have accepted the
// session advances to recipient review.
func (c *Controller) AcceptIssue(id string, actor Participant) (Session, bool, error) {
	return c.mutate(id, actor, func(s *Session) bool {
		if s.Step != StepQualify || !authorize(s, actor, RoleRecipient) {
			return false
		}
		if !s.Qualify.InitiatorAccepted || s.Qualify.Statement == "" || s.Qualify.Details == "" {
			return false
		}
		if s.Qualify.RecipientAccepted {
			return false
		}
		s.Qualify.RecipientAccepted = true
		s.LastActedBy = actor
		if s.qualifyReady() {
			s.advance(actor)
		}
		return true
	})
}

func (s *Session) qualifyReady() bool {
	q := s.Qualify
	return q.Statement != "" && q.Details != "" && q.InitiatorAccepted && q.RecipientAccepted
}

// SubmitReview stores the recipient's summary of the issue in their own
// words and advances to the reflection step.
func (c *Controller) SubmitReview(id string, actor Participant, summary string) (Session, bool, error) {
	summary = strings.TrimSpace(summary)

	return c.mutate(id, actor, func(s *Session) bool {
		if s.Step != StepReview || !authorize(s, actor, RoleRecipient) {
			return false
		}
		if summary == "" {
			return false
		}
		s.Review.Summary = summary
		s.advance(actor)
		return true
	})
}

// SetIdentityStatement stores the acting participant's identity-protection
// statement. When both statements are present a reconciliation prompt is
// derived. No transition occurs.
func (c *Controller) SetIdentityStatement(id string, actor Participant, text string) (Session, bool, error) {
	text = strings.TrimSpace(text)

	return c.mutate(id, actor, func(s *Session) bool {
		if s.Step != StepReflection || !authorize(s, actor, anyRole) {
			return false
		}
		if text == "" {
			return false
		}
		role, _ := s.RoleOf(actor)
		if role == RoleInitiator {
			s.Reflection.InitiatorIdentity = text
		} else {
			s.Reflection.RecipientIdentity = text
		}
		if s.Reflection.InitiatorIdentity != "" && s.Reflection.RecipientIdentity != "" {
			s.Reflection.ReconciliationPrompt = fmt.Sprintf(
				"Before you meet, read aloud what you each wrote: %q and %q.",
				s.Reflection.InitiatorIdentity, s.Reflection.RecipientIdentity,
			)
		}
		s.LastActedBy = actor
		return true
	})
}

// SubmitReflection stores the nonhostile questions and self-critique and
// advances to calm preparation. Either participant may submit.
func (c *Controller) SubmitReflection(id string, actor Participant, questions, critique string) (Session, bool, error) {
	questions = strings.TrimSpace(questions)
	critique = strings.TrimSpace(critique)

	return c.mutate(id, actor, func(s *Session) bool {
		if s.Step != StepReflection || !authorize(s, actor, anyRole) {
			return false
		}
		if questions == "" || critique == "" {
			return false
		}
		s.Reflection.Questions = questions
		s.Reflection.SelfCritique = critique
		s.advance(actor)
		return true
	})
}

// CompleteCalmPrep advances past the calm preparation step. Either
// participant may continue; there is nothing to record.
func (c *Controller) CompleteCalmPrep(id string, actor Participant) (Session, bool, error) {
	return c.mutate(id, actor, func(s *Session) bool {
		if s.Step != StepCalmPrepare || !authorize(s, actor, anyRole) {
			return false
		}
		s.advance(actor)
		return true
	})
}

// ProposeTime stores the initiator's proposed date, time and descriptor.
// The session stays in the scheduling step until the recipient confirms.
func (c *Controller) ProposeTime(id string, actor Participant, date, timeOfDay, descriptor string) (Session, bool, error) {
	date = strings.TrimSpace(date)
	timeOfDay = strings.TrimSpace(timeOfDay)
	descriptor = strings.TrimSpace(descriptor)

	s, changed, err := c.mutate(id, actor, func(s *Session) bool {
		if s.Step != StepSchedule || !authorize(s, actor, RoleInitiator) {
			return false
		}
		if date == "" || timeOfDay == "" {
			return false
		}
		s.Schedule.Date = date
		s.Schedule.Time = timeOfDay
		s.Schedule.Descriptor = descriptor
		s.Schedule.AwaitingProposal = false
		s.LastActedBy = actor
		return true
	})
	if changed {
		c.bus.Publish(event.TimeProposedEvent{
			SessionID:  s.ID,
			Date:       date,
			Time:       timeOfDay,
			Descriptor: descriptor,
		})
	}
	return s, changed, err
}

// ConfirmTime records the recipient's confirmation of the current proposal
// and advances to dialogue.
func (c *Controller) ConfirmTime(id string, actor Participant) (Session, bool, error) {
	return c.mutate(id, actor, func(s *Session) bool {
		if s.Step != StepSchedule || !authorize(s, actor, RoleRecipient) {
			return false
		}
		if s.Schedule.Date == "" || s.Schedule.AwaitingProposal {
			return false
		}
		s.Schedule.Confirmed = true
		s.advance(actor)
		return true
	})
}

// RequestReschedule sends a confirmed session back to the scheduling step.
// Permitted at most once per session, and only while a confirmation stands.
// The initiator owes the next proposal regardless of who asked.
func (c *Controller) RequestReschedule(id string, actor Participant) (Session, bool, error) {
	s, changed, err := c.mutate(id, actor, func(s *Session) bool {
		if s.Step != StepDialogue || !authorize(s, actor, anyRole) {
			return false
		}
		if !s.Schedule.Confirmed || s.RescheduleCount >= 1 {
			return false
		}
		s.Schedule.Confirmed = false
		s.Schedule.AwaitingProposal = true
		s.RescheduleCount++
		s.Step = StepSchedule
		s.LastActedBy = actor
		return true
	})
	if changed {
		c.bus.Publish(event.RescheduledEvent{
			SessionID:   s.ID,
			RequestedBy: string(actor),
			Count:       s.RescheduleCount,
		})
	}
	return s, changed, err
}

// SubmitParaphrase stores the acting participant's paraphrase of the other
// side's position. When both paraphrases are present the dialogue is marked
// complete and the session advances to decision and repair.
func (c *Controller) SubmitParaphrase(id string, actor Participant, text string) (Session, bool, error) {
	text = strings.TrimSpace(text)

	return c.mutate(id, actor, func(s *Session) bool {
		if s.Step != StepDialogue || !authorize(s, actor, anyRole) {
			return false
		}
		if text == "" {
			return false
		}
		role, _ := s.RoleOf(actor)
		if role == RoleInitiator {
			s.Dialogue.InitiatorParaphrase = text
		} else {
			s.Dialogue.RecipientParaphrase = text
		}
		s.LastActedBy = actor
		if s.Dialogue.InitiatorParaphrase != "" && s.Dialogue.RecipientParaphrase != "" {
			s.Dialogue.Completed = true
			s.advance(actor)
		}
		return true
	})
}

// RecordOutcome stores the decisions reached, plus optional apology and
// follow-up plan texts. No transition occurs.
func (c *Controller) RecordOutcome(id string, actor Participant, decisions, apology, followUp string) (Session, bool, error) {
	decisions = strings.TrimSpace(decisions)
	apology = strings.TrimSpace(apology)
	followUp = strings.TrimSpace(followUp)

	return c.mutate(id, actor, func(s *Session) bool {
		if s.Step != StepDecisionRepair || !authorize(s, actor, anyRole) {
			return false
		}
		if decisions == "" {
			return false
		}
		s.Outcome.Decisions = decisions
		s.Outcome.Apology = apology
		s.Outcome.FollowUpPlan = followUp
		s.LastActedBy = actor
		return true
	})
}

// ConfirmFairness records that the outcome was reviewed as fair to both
// sides. A second confirmation is a no-op.
func (c *Controller) ConfirmFairness(id string, actor Participant) (Session, bool, error) {
	return c.mutate(id, actor, func(s *Session) bool {
		if s.Step != StepDecisionRepair || !authorize(s, actor, anyRole) {
			return false
		}
		if s.Outcome.FairnessConfirmed {
			return false
		}
		s.Outcome.FairnessConfirmed = true
		s.LastActedBy = actor
		return true
	})
}

// MarkResolved performs the terminal transition: it synthesizes the recap,
// stamps the resolution time, schedules the follow-up review seven days
// out, and moves the session to its terminal step. Requires recorded
// decisions and a fairness confirmation.
func (c *Controller) MarkResolved(id string, actor Participant) (Session, bool, error) {
	s, changed, err := c.mutate(id, actor, func(s *Session) bool {
		if s.Step != StepDecisionRepair || !authorize(s, actor, anyRole) {
			return false
		}
		if s.Outcome.Decisions == "" || !s.Outcome.FairnessConfirmed {
			return false
		}
		resolvedAt := c.now().UTC()
		reviewAt := resolvedAt.Add(ReviewDelay)
		s.Recap = s.synthesizeRecap()
		s.ResolvedAt = &resolvedAt
		s.ReviewAt = &reviewAt
		s.advance(actor)
		return true
	})
	if changed {
		c.bus.Publish(event.SessionResolvedEvent{
			SessionID:  s.ID,
			ResolvedAt: *s.ResolvedAt,
			ReviewAt:   *s.ReviewAt,
		})
	}
	return s, changed, err
}

// SetTestimony sets the post-terminal testimony text and visibility. Text
// longer than TestimonyMaxLen characters is truncated. The session's state,
// recap and timestamps are never touched.
func (c *Controller) SetTestimony(id string, actor Participant, text string, visibility Visibility) (Session, bool, error) {
	text = truncate(strings.TrimSpace(text), TestimonyMaxLen)

	s, changed, err := c.mutate(id, actor, func(s *Session) bool {
		if s.Step != StepResolved || !authorize(s, actor, anyRole) {
			return false
		}
		if !ValidVisibility(visibility) {
			return false
		}
		s.Testimony.Text = text
		s.Testimony.Visibility = visibility
		return true
	})
	if changed {
		c.bus.Publish(event.TestimonyUpdatedEvent{
			SessionID:  s.ID,
			Visibility: string(visibility),
		})
	}
	return s, changed, err
}

// WithdrawTestimony clears the testimony back to its defaults: empty text
// and private visibility.
func (c *Controller) WithdrawTestimony(id string, actor Participant) (Session, bool, error) {
	s, changed, err := c.mutate(id, actor, func(s *Session) bool {
		if s.Step != StepResolved || !authorize(s, actor, anyRole) {
			return false
		}
		s.Testimony.Text = ""
		s.Testimony.Visibility = VisibilityPrivate
		return true
	})
	if changed {
		c.bus.Publish(event.TestimonyUpdatedEvent{
			SessionID:  s.ID,
			Visibility: string(VisibilityPrivate),
			Withdrawn:  true,
		})
	}
	return s, changed, err
}

// truncate limits s to max characters, counting by rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
