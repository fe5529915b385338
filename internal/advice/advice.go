// Package advice maps a participant's conflict disposition, the session's
// current step, and the participant's role to short coaching tips. It is a
// pure lookup with no write path back into the session controller.
package advice

import (
	"github.com/concordapp/concord/internal/negotiation"
)

// Disposition is a coarse description of how a participant tends to behave
// in conflict. Each participant configures a primary and secondary
// disposition.
type Disposition string

const (
	// DispositionWithdrawer avoids conflict and goes quiet under pressure.
	DispositionWithdrawer Disposition = "withdrawer"
	// DispositionPursuer pushes for immediate resolution and escalates.
	DispositionPursuer Disposition = "pursuer"
	// DispositionFixer jumps to solutions before feelings are heard.
	DispositionFixer Disposition = "fixer"
	// DispositionSteady stays regulated but can come across as detached.
	DispositionSteady Disposition = "steady"
)

// Dispositions returns the known disposition values.
func Dispositions() []Disposition {
	return []Disposition{
		DispositionWithdrawer,
		DispositionPursuer,
		DispositionFixer,
		DispositionSteady,
	}
}

// Valid reports whether d is a known disposition.
func Valid(d Disposition) bool {
	switch d {
	case DispositionWithdrawer, DispositionPursuer, DispositionFixer, DispositionSteady:
		return true
	}
	return false
}

// maxTips caps how many tips a single lookup returns.
const maxTips = 3

// stepTips holds per-step, per-disposition coaching lines. Role-specific
// lines are layered in by roleTips.
var stepTips = map[negotiation.Step]map[Disposition][]string{
	negotiation.StepQualify: {
		DispositionWithdrawer: {
			"Naming the issue is not starting a fight. Write it plainly.",
			"One concrete example beats a vague summary.",
		},
		DispositionPursuer: {
			"State the issue once, without stacking every past grievance onto it.",
			"Skip the words always and never.",
		},
		DispositionFixer: {
			"Describe the problem without proposing the fix yet.",
		},
		DispositionSteady: {
			"Include how the issue felt, not only what happened.",
		},
	},
	negotiation.StepReview: {
		DispositionWithdrawer: {
			"Summarize their words even if you disagree with them.",
			"You are restating, not conceding.",
		},
		DispositionPursuer: {
			"Restate their view without a rebuttal attached.",
		},
		DispositionFixer: {
			"Summarize the hurt before the logistics.",
		},
		DispositionSteady: {
			"Check that your summary carries the feeling, not just the facts.",
		},
	},
	negotiation.StepReflection: {
		DispositionWithdrawer: {
			"Curious questions are safer than silence.",
			"Your self-critique should name a behavior, not your character.",
		},
		DispositionPursuer: {
			"Write questions you do not know the answer to.",
			"Critique your part without a but attached.",
		},
		DispositionFixer: {
			"Ask about their experience before their preferences.",
		},
		DispositionSteady: {
			"Pick the question you are most afraid to ask.",
		},
	},
	negotiation.StepCalmPrepare: {
		DispositionWithdrawer: {
			"Plan what you will say if you feel flooded, instead of leaving.",
		},
		DispositionPursuer: {
			"Decide your pause signal now, while you are calm.",
		},
		DispositionFixer: {
			"Your job in the conversation is to understand, not to close.",
		},
		DispositionSteady: {
			"Low heat is an asset. Lend it, don't lecture with it.",
		},
	},
	negotiation.StepSchedule: {
		DispositionWithdrawer: {
			"Sooner is kinder than perfect.",
		},
		DispositionPursuer: {
			"Pick a time when neither of you is tired or rushed.",
		},
		DispositionFixer: {
			"Protect the full window. Don't book the conversation against a deadline.",
		},
		DispositionSteady: {
			"A named place helps. Neutral ground if the kitchen is loaded.",
		},
	},
	negotiation.StepDialogue: {
		DispositionWithdrawer: {
			"Paraphrase before you respond. It buys you time and gives them proof.",
			"If you need a break, say when you will come back.",
		},
		DispositionPursuer: {
			"Let their paraphrase be imperfect without correcting every word.",
			"Slower is faster here.",
		},
		DispositionFixer: {
			"No solutions until both paraphrases are done.",
		},
		DispositionSteady: {
			"Match their pace, not just their words.",
		},
	},
	negotiation.StepDecisionRepair: {
		DispositionWithdrawer: {
			"Agree to things you will actually do, not things that end the meeting.",
		},
		DispositionPursuer: {
			"A small kept agreement beats a sweeping broken one.",
		},
		DispositionFixer: {
			"Write the apology before the action items.",
		},
		DispositionSteady: {
			"Check the plan feels fair to both of you, out loud.",
		},
	},
}

// roleTips holds per-step lines specific to a role.
var roleTips = map[negotiation.Step]map[negotiation.Role]string{
	negotiation.StepQualify: {
		negotiation.RoleInitiator: "You chose to raise this. Lead with care, not a case.",
		negotiation.RoleRecipient: "Accepting the issue means agreeing to talk, not agreeing you were wrong.",
	},
	negotiation.StepReview: {
		negotiation.RoleRecipient: "This step is yours. Their issue, your words.",
	},
	negotiation.StepSchedule: {
		negotiation.RoleInitiator: "Propose a specific time. Open-ended offers stall.",
		negotiation.RoleRecipient: "If the time doesn't work, say which one would.",
	},
	negotiation.StepDialogue: {
		negotiation.RoleInitiator: "Open with the issue statement as you wrote it, no additions.",
	},
}

// TipsFor returns up to three coaching tips for the given disposition, step
// and role. Unknown dispositions or steps yield no tips.
func TipsFor(d Disposition, step negotiation.Step, role negotiation.Role) []string {
	var tips []string
	if line, ok := roleTips[step][role]; ok {
		tips = append(tips, line)
	}
	tips = append(tips, stepTips[step][d]...)
	if len(tips) > maxTips {
		tips = tips[:maxTips]
	}
	return tips
}
