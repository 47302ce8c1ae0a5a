// Package ai turns simulated equity and a personality trait vector into
// sampled opponent actions. One data-driven profile replaces a hierarchy of
// archetype types; named presets are just constant trait configurations.
package ai

// Profile is an opponent personality: fixed traits in [0,1] plus a tilt
// scalar that evolves hand over hand.
type Profile struct {
	Name              string
	Tightness         float64 // hand selection: high folds more
	Aggression        float64 // bet/raise appetite
	BluffFreq         float64 // raises with weak holdings
	PositionAwareness float64 // how much late position loosens play
	TiltSensitivity   float64 // how fast losses build tilt
	FoldToThreeBet    float64 // above ~0.5 folds more when reraised
	CBetFreq          float64 // continuation bets after raising preflop

	// CurrentTilt is mutable state in [0,1]: losses push it up scaled by
	// TiltSensitivity, wins bleed it off.
	CurrentTilt float64
}

// Clone returns an independent copy so shared presets are never mutated.
func (p *Profile) Clone() *Profile {
	c := *p
	return &c
}

// RecordResult evolves tilt after a hand. potBB is the final pot in big
// blinds; bigger lost pots tilt harder.
func (p *Profile) RecordResult(won bool, potBB float64) {
	if won {
		p.CurrentTilt *= 0.6
		if p.CurrentTilt < 0.01 {
			p.CurrentTilt = 0
		}
		return
	}
	severity := potBB / 40.0
	if severity > 1 {
		severity = 1
	}
	p.CurrentTilt = clamp01(p.CurrentTilt + p.TiltSensitivity*(0.1+0.4*severity))
}

var presets = map[string]Profile{
	"rock": {
		Name: "rock", Tightness: 0.9, Aggression: 0.25, BluffFreq: 0.05,
		PositionAwareness: 0.3, TiltSensitivity: 0.2, FoldToThreeBet: 0.85, CBetFreq: 0.4,
	},
	"tag": {
		Name: "tag", Tightness: 0.7, Aggression: 0.65, BluffFreq: 0.25,
		PositionAwareness: 0.8, TiltSensitivity: 0.35, FoldToThreeBet: 0.55, CBetFreq: 0.7,
	},
	"lag": {
		Name: "lag", Tightness: 0.35, Aggression: 0.8, BluffFreq: 0.45,
		PositionAwareness: 0.9, TiltSensitivity: 0.5, FoldToThreeBet: 0.35, CBetFreq: 0.8,
	},
	"station": {
		Name: "station", Tightness: 0.2, Aggression: 0.15, BluffFreq: 0.05,
		PositionAwareness: 0.1, TiltSensitivity: 0.4, FoldToThreeBet: 0.15, CBetFreq: 0.3,
	},
	"maniac": {
		Name: "maniac", Tightness: 0.1, Aggression: 0.95, BluffFreq: 0.7,
		PositionAwareness: 0.4, TiltSensitivity: 0.8, FoldToThreeBet: 0.1, CBetFreq: 0.9,
	},
}

// Preset returns a copy of a named personality configuration.
func Preset(name string) (*Profile, bool) {
	p, ok := presets[name]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// PresetNames lists the built-in personalities.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
