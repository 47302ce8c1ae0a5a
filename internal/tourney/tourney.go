// Package tourney advances a tournament blind schedule between hands.
package tourney

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Level is one step of the blind schedule. Hands is how many hands are
// played at the level; zero marks an open-ended final level.
type Level struct {
	Name       string
	SmallBlind int
	BigBlind   int
	Ante       int
	Hands      int
}

// BlindSetter is the slice of the engine the schedule drives. Blind changes
// only apply between hands, so a mid-hand call may fail and is retried after
// the next hand.
type BlindSetter interface {
	SetBlinds(smallBlind, bigBlind, ante int) error
}

// Schedule walks a table through its blind levels as hands complete.
type Schedule struct {
	levels       []Level
	logger       *log.Logger
	current      int
	handsAtLevel int
}

// NewSchedule creates a schedule from its levels in play order.
func NewSchedule(levels []Level, logger *log.Logger) (*Schedule, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("schedule needs at least one level")
	}
	for i, level := range levels {
		if level.SmallBlind <= 0 || level.BigBlind < level.SmallBlind {
			return nil, fmt.Errorf("level %s: invalid blinds %d/%d",
				level.Name, level.SmallBlind, level.BigBlind)
		}
		if level.Hands == 0 && i != len(levels)-1 {
			return nil, fmt.Errorf("level %s: only the final level may be open-ended", level.Name)
		}
	}
	return &Schedule{levels: levels, logger: logger.WithPrefix("tourney")}, nil
}

// Current returns the level in play.
func (s *Schedule) Current() Level {
	return s.levels[s.current]
}

// Start applies the first level's blinds.
func (s *Schedule) Start(table BlindSetter) error {
	level := s.levels[s.current]
	if err := table.SetBlinds(level.SmallBlind, level.BigBlind, level.Ante); err != nil {
		return fmt.Errorf("applying level %s: %w", level.Name, err)
	}
	s.logger.Info("level started", "level", level.Name,
		"blinds", fmt.Sprintf("%d/%d", level.SmallBlind, level.BigBlind), "ante", level.Ante)
	return nil
}

// HandPlayed records a completed hand and advances the schedule when the
// current level is exhausted. It reports whether the level changed. A failed
// blind change leaves the schedule in place to retry after the next hand.
func (s *Schedule) HandPlayed(table BlindSetter) (bool, error) {
	s.handsAtLevel++

	level := s.levels[s.current]
	if level.Hands == 0 || s.handsAtLevel < level.Hands || s.current == len(s.levels)-1 {
		return false, nil
	}

	next := s.levels[s.current+1]
	if err := table.SetBlinds(next.SmallBlind, next.BigBlind, next.Ante); err != nil {
		return false, fmt.Errorf("advancing to level %s: %w", next.Name, err)
	}
	s.current++
	s.handsAtLevel = 0
	s.logger.Info("level advanced", "level", next.Name,
		"blinds", fmt.Sprintf("%d/%d", next.SmallBlind, next.BigBlind), "ante", next.Ante)
	return true, nil
}

// Finished reports whether the schedule sits on an exhausted final level.
func (s *Schedule) Finished() bool {
	last := s.levels[len(s.levels)-1]
	return s.current == len(s.levels)-1 && last.Hands > 0 && s.handsAtLevel >= last.Hands
}
