package ai

import rand "math/rand/v2"

// Move is the abstract choice a profile makes; the engine translates it into
// a legal table action.
type Move int

const (
	MoveFold Move = iota
	MoveCheckCall
	MoveRaise
	MoveAllIn
)

func (m Move) String() string {
	return [...]string{"fold", "check/call", "raise", "allin"}[m]
}

// Situation is the immutable snapshot a decision is made from.
type Situation struct {
	Equity        float64 // estimated win probability
	PotOdds       float64 // toCall / (pot + toCall)
	Pot           int     // chips already in the middle
	ToCall        int     // 0 when checking is free
	MinRaiseTo    int     // smallest legal raise-to amount
	MaxRaiseTo    int     // stack-capped raise-to amount
	BigBlind      int
	Position      float64 // 0 = earliest seat, 1 = button
	Opponents     int     // live opponents
	FacingReraise bool    // at least two full raises already this street
	PreflopRaiser bool    // this player made the last preflop raise
	Postflop      bool
}

// Decision is a sampled action with a raise target when Move == MoveRaise.
type Decision struct {
	Move    Move
	RaiseTo int
}

// DecisionEngine samples actions from the distribution implied by a
// situation and a profile. It is intentionally non-deterministic: two
// identical spots can produce different actions, which keeps opponents from
// being exploitable by replay.
type DecisionEngine struct {
	rng *rand.Rand
}

// NewDecisionEngine creates a decision engine backed by the given RNG.
func NewDecisionEngine(rng *rand.Rand) *DecisionEngine {
	return &DecisionEngine{rng: rng}
}

// Decide converts (equity, pot odds, traits, tilt, position) into action
// weights, normalizes them, and samples. Directional contracts: more equity
// and later position push toward aggression, tilt loosens and sharpens
// aggression, and FoldToThreeBet above its threshold pushes folds when
// facing a reraise.
func (de *DecisionEngine) Decide(p *Profile, sit Situation) Decision {
	tilt := clamp01(p.CurrentTilt)
	aggression := clamp01(p.Aggression + 0.35*tilt)
	tightness := clamp01(p.Tightness - 0.30*tilt)

	// Late position scales looseness/aggression by position awareness.
	posBoost := 1 + p.PositionAwareness*(sit.Position-0.5)

	var wFold, wCall, wRaise float64

	wRaise = 2.0 * sit.Equity * sit.Equity * aggression * posBoost
	if sit.Postflop && sit.PreflopRaiser && sit.ToCall == 0 {
		wRaise += p.CBetFreq
	}
	if sit.Equity < 0.35 {
		wRaise += p.BluffFreq * posBoost * 0.4
	}

	if sit.ToCall > 0 {
		edge := sit.Equity - sit.PotOdds
		wCall = clamp01(0.5+2.0*edge) * (1.3 - tightness)
		wFold = 0.35 + 0.7*tightness - 2.2*edge
		if wFold < 0 {
			wFold = 0
		}
		if sit.FacingReraise && p.FoldToThreeBet > 0.5 {
			wFold *= 1 + 1.5*(p.FoldToThreeBet-0.5)
			wRaise *= 0.6
		}
	} else {
		// Checking is free; folding is never sampled.
		wCall = 1.0
		wFold = 0
	}

	total := wFold + wCall + wRaise
	if total <= 0 {
		return Decision{Move: MoveCheckCall}
	}

	r := de.rng.Float64() * total
	switch {
	case r < wFold:
		return Decision{Move: MoveFold}
	case r < wFold+wCall:
		return Decision{Move: MoveCheckCall}
	default:
		return de.raiseDecision(p, sit, aggression)
	}
}

// raiseDecision sizes a raise as a pot fraction scaled by aggression, with
// jitter so sizes do not telegraph holdings.
func (de *DecisionEngine) raiseDecision(p *Profile, sit Situation, aggression float64) Decision {
	if sit.MaxRaiseTo <= sit.MinRaiseTo {
		return Decision{Move: MoveAllIn}
	}

	fraction := 0.4 + 0.7*aggression + 0.3*(de.rng.Float64()-0.5)
	target := sit.ToCall + int(float64(sit.Pot+sit.ToCall)*fraction)
	if target < sit.MinRaiseTo {
		target = sit.MinRaiseTo
	}
	if target >= sit.MaxRaiseTo {
		return Decision{Move: MoveAllIn}
	}

	// Very strong hands occasionally shove outright.
	if sit.Equity > 0.85 && de.rng.Float64() < 0.25*aggression {
		return Decision{Move: MoveAllIn}
	}

	return Decision{Move: MoveRaise, RaiseTo: target}
}
