package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHCL = `
table {
  small_blind    = 25
  big_blind      = 50
  ante           = 5
  seed           = 99
  equity_samples = 200
}

seat "hero" {
  human  = true
  buy_in = 5000
}

seat "rocky" {
  preset = "rock"
  buy_in = 5000
}

seat "custom" {
  preset     = "tag"
  aggression = 0.9
  tightness  = 0.4
}

level "one" {
  small_blind = 25
  big_blind   = 50
  hands       = 20
}

level "two" {
  small_blind = 50
  big_blind   = 100
  ante        = 10
}
`

func TestParseSampleConfig(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(sampleHCL), "sample.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 25, cfg.Table.SmallBlind)
	assert.Equal(t, 50, cfg.Table.BigBlind)
	assert.Equal(t, 5, cfg.Table.Ante)
	assert.Equal(t, int64(99), cfg.Table.Seed)
	assert.Equal(t, 200, cfg.Table.EquitySamples)

	require.Len(t, cfg.Seats, 3)
	assert.True(t, cfg.Seats[0].Human)
	assert.Equal(t, "rock", cfg.Seats[1].Preset)

	// The custom seat starts from the tag preset and overrides two traits.
	p, err := cfg.Seats[2].Profile()
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "custom", p.Name)
	assert.InDelta(t, 0.9, p.Aggression, 1e-9)
	assert.InDelta(t, 0.4, p.Tightness, 1e-9)
	assert.InDelta(t, 0.8, p.PositionAwareness, 1e-9) // from preset

	// Unset buy-in defaults to 100 big blinds.
	assert.Equal(t, 5000, cfg.Seats[2].BuyIn)

	require.Len(t, cfg.Levels, 2)
	assert.Equal(t, 20, cfg.Levels[0].Hands)
	assert.Equal(t, 0, cfg.Levels[1].Hands)
}

func TestHumanSeatHasNoProfile(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(sampleHCL), "sample.hcl")
	require.NoError(t, err)

	p, err := cfg.Seats[0].Profile()
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("does-not-exist.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.Table.SmallBlind)
	assert.GreaterOrEqual(t, len(cfg.Seats), 2)
}

func TestValidateRejectsBadInput(t *testing.T) {
	t.Parallel()

	base := func() *Config {
		cfg, err := Parse([]byte(sampleHCL), "sample.hcl")
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Seats[1].Preset = "wizard"
	assert.ErrorContains(t, cfg.Validate(), "unknown preset")

	cfg = base()
	bad := 1.5
	cfg.Seats[2].BluffFreq = &bad
	assert.ErrorContains(t, cfg.Validate(), "bluff_freq")

	cfg = base()
	cfg.Seats = cfg.Seats[:1]
	assert.ErrorContains(t, cfg.Validate(), "at least two seats")

	cfg = base()
	cfg.Seats[1].Human = true
	assert.ErrorContains(t, cfg.Validate(), "one human seat")

	cfg = base()
	cfg.Levels[0].Hands = 0
	assert.ErrorContains(t, cfg.Validate(), "open-ended")

	cfg = base()
	cfg.Table.BigBlind = 5
	assert.Error(t, cfg.Validate())
}

func TestParseRejectsMalformedHCL(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`table { small_blind = `), "broken.hcl")
	assert.Error(t, err)
}
