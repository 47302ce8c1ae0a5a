// Package config loads the table, seat and blind-level configuration from
// HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/woneway/holdem-sim/internal/ai"
)

// Config is the complete simulator configuration.
type Config struct {
	Table  TableSettings `hcl:"table,block"`
	Seats  []SeatConfig  `hcl:"seat,block"`
	Levels []LevelConfig `hcl:"level,block"`
}

// TableSettings contains table-level configuration.
type TableSettings struct {
	SmallBlind    int    `hcl:"small_blind,optional"`
	BigBlind      int    `hcl:"big_blind,optional"`
	Ante          int    `hcl:"ante,optional"`
	Seed          int64  `hcl:"seed,optional"`
	EquitySamples int    `hcl:"equity_samples,optional"`
	ThinkDelayMS  int    `hcl:"think_delay_ms,optional"`
	RunOutDelayMS int    `hcl:"run_out_delay_ms,optional"`
	LogLevel      string `hcl:"log_level,optional"`
}

// SeatConfig defines one entrant. A seat is either human-controlled or an AI
// preset, with optional per-trait overrides on top of the preset.
type SeatConfig struct {
	Name   string `hcl:"name,label"`
	BuyIn  int    `hcl:"buy_in,optional"`
	Human  bool   `hcl:"human,optional"`
	Preset string `hcl:"preset,optional"`

	Tightness         *float64 `hcl:"tightness,optional"`
	Aggression        *float64 `hcl:"aggression,optional"`
	BluffFreq         *float64 `hcl:"bluff_freq,optional"`
	PositionAwareness *float64 `hcl:"position_awareness,optional"`
	TiltSensitivity   *float64 `hcl:"tilt_sensitivity,optional"`
	FoldToThreeBet    *float64 `hcl:"fold_to_three_bet,optional"`
	CBetFreq          *float64 `hcl:"c_bet_freq,optional"`
}

// LevelConfig is one step of a tournament blind schedule.
type LevelConfig struct {
	Name       string `hcl:"name,label"`
	SmallBlind int    `hcl:"small_blind"`
	BigBlind   int    `hcl:"big_blind"`
	Ante       int    `hcl:"ante,optional"`
	Hands      int    `hcl:"hands,optional"` // hands at this level, 0 = final
}

// Default returns the built-in configuration: a six-max cash table of mixed
// presets with one human seat.
func Default() *Config {
	return &Config{
		Table: TableSettings{
			SmallBlind:    10,
			BigBlind:      20,
			Seed:          0,
			EquitySamples: 400,
			LogLevel:      "info",
		},
		Seats: []SeatConfig{
			{Name: "hero", Human: true, BuyIn: 2000},
			{Name: "rocky", Preset: "rock", BuyIn: 2000},
			{Name: "tanya", Preset: "tag", BuyIn: 2000},
			{Name: "loose-larry", Preset: "lag", BuyIn: 2000},
			{Name: "station-sam", Preset: "station", BuyIn: 2000},
			{Name: "mad-mel", Preset: "maniac", BuyIn: 2000},
		},
	}
}

// Load reads configuration from an HCL file, falling back to the default
// configuration when the file does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Parse decodes configuration from an in-memory HCL document.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Table.SmallBlind == 0 {
		c.Table.SmallBlind = 10
	}
	if c.Table.BigBlind == 0 {
		c.Table.BigBlind = c.Table.SmallBlind * 2
	}
	if c.Table.EquitySamples == 0 {
		c.Table.EquitySamples = 400
	}
	if c.Table.LogLevel == "" {
		c.Table.LogLevel = "info"
	}
	for i := range c.Seats {
		if c.Seats[i].BuyIn == 0 {
			c.Seats[i].BuyIn = c.Table.BigBlind * 100 // 100 big blinds
		}
		if !c.Seats[i].Human && c.Seats[i].Preset == "" {
			c.Seats[i].Preset = "tag"
		}
	}
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	if c.Table.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive")
	}
	if c.Table.BigBlind < c.Table.SmallBlind {
		return fmt.Errorf("big blind %d below small blind %d", c.Table.BigBlind, c.Table.SmallBlind)
	}
	if c.Table.Ante < 0 {
		return fmt.Errorf("ante cannot be negative")
	}

	if len(c.Seats) < 2 {
		return fmt.Errorf("at least two seats must be configured, got %d", len(c.Seats))
	}
	humans := 0
	for _, seat := range c.Seats {
		if seat.BuyIn <= 0 {
			return fmt.Errorf("seat %s: buy-in must be positive", seat.Name)
		}
		if seat.Human {
			humans++
			continue
		}
		if _, ok := ai.Preset(seat.Preset); !ok {
			return fmt.Errorf("seat %s: unknown preset %q (known: %v)",
				seat.Name, seat.Preset, ai.PresetNames())
		}
		for _, trait := range []struct {
			name  string
			value *float64
		}{
			{"tightness", seat.Tightness},
			{"aggression", seat.Aggression},
			{"bluff_freq", seat.BluffFreq},
			{"position_awareness", seat.PositionAwareness},
			{"tilt_sensitivity", seat.TiltSensitivity},
			{"fold_to_three_bet", seat.FoldToThreeBet},
			{"c_bet_freq", seat.CBetFreq},
		} {
			if trait.value != nil && (*trait.value < 0 || *trait.value > 1) {
				return fmt.Errorf("seat %s: %s must be in [0,1], got %g",
					seat.Name, trait.name, *trait.value)
			}
		}
	}
	if humans > 1 {
		return fmt.Errorf("at most one human seat is supported, got %d", humans)
	}

	for i, level := range c.Levels {
		if level.SmallBlind <= 0 || level.BigBlind < level.SmallBlind {
			return fmt.Errorf("level %s: invalid blinds %d/%d",
				level.Name, level.SmallBlind, level.BigBlind)
		}
		if level.Hands < 0 {
			return fmt.Errorf("level %s: hands cannot be negative", level.Name)
		}
		if level.Hands == 0 && i != len(c.Levels)-1 {
			return fmt.Errorf("level %s: only the final level may be open-ended", level.Name)
		}
	}

	return nil
}

// Profile builds the AI profile for a seat, or nil for a human seat.
func (s *SeatConfig) Profile() (*ai.Profile, error) {
	if s.Human {
		return nil, nil
	}
	p, ok := ai.Preset(s.Preset)
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", s.Preset)
	}
	p.Name = s.Name
	if s.Tightness != nil {
		p.Tightness = *s.Tightness
	}
	if s.Aggression != nil {
		p.Aggression = *s.Aggression
	}
	if s.BluffFreq != nil {
		p.BluffFreq = *s.BluffFreq
	}
	if s.PositionAwareness != nil {
		p.PositionAwareness = *s.PositionAwareness
	}
	if s.TiltSensitivity != nil {
		p.TiltSensitivity = *s.TiltSensitivity
	}
	if s.FoldToThreeBet != nil {
		p.FoldToThreeBet = *s.FoldToThreeBet
	}
	if s.CBetFreq != nil {
		p.CBetFreq = *s.CBetFreq
	}
	return p, nil
}
