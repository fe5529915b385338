package negotiation

// Participant identifies one of the two configured people. Participants are
// fixed for the lifetime of the local install; sessions assign each of them
// a session-scoped role.
type Participant string

// Role is a session-scoped role held by a participant.
type Role string

const (
	// RoleInitiator is the participant who opened the session.
	RoleInitiator Role = "initiator"
	// RoleRecipient is the other participant.
	RoleRecipient Role = "recipient"
)

// Step identifies a session's position in the reconciliation walk.
type Step string

// Canonical steps, in their only forward order. Schedule has a single
// permitted backward re-entry, usable at most once per session.
const (
	StepQualify        Step = "qualify"
	StepReview         Step = "recipient_review"
	StepReflection     Step = "questions_self_critique"
	StepCalmPrepare    Step = "calm_prepare"
	StepSchedule       Step = "schedule"
	StepDialogue       Step = "dialogue"
	StepDecisionRepair Step = "decision_repair"
	StepResolved       Step = "resolved"
)

// stepOrder is the canonical forward order of steps.
var stepOrder = []Step{
	StepQualify,
	StepReview,
	StepReflection,
	StepCalmPrepare,
	StepSchedule,
	StepDialogue,
	StepDecisionRepair,
	StepResolved,
}

// next returns the step after s in the canonical order, or s itself when s
// is terminal or unknown.
func next(s Step) Step {
	for i, step := range stepOrder[:len(stepOrder)-1] {
		if step == s {
			return stepOrder[i+1]
		}
	}
	return s
}

// Steps returns the canonical step order.
func Steps() []Step {
	out := make([]Step, len(stepOrder))
	copy(out, stepOrder)
	return out
}

// Visibility tags a testimony with how widely it may be shared.
type Visibility string

const (
	// VisibilityPrivate keeps the testimony between the two participants.
	// It is the default and the most restrictive tag.
	VisibilityPrivate Visibility = "private"
	// VisibilityChurch shares the testimony within the participants' church.
	VisibilityChurch Visibility = "church"
	// VisibilityCommunity shares the testimony publicly.
	VisibilityCommunity Visibility = "community"
)

// ValidVisibility reports whether v is a known visibility tag.
func ValidVisibility(v Visibility) bool {
	switch v {
	case VisibilityPrivate, VisibilityChurch, VisibilityCommunity:
		return true
	}
	return false
}

// TestimonyMaxLen is the maximum testimony length in characters. Longer
// input is truncated, not rejected.
const TestimonyMaxLen = 250
