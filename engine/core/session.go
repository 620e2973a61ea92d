package core

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// GameState represents the overall game state
type GameState uint8

const (
	StateIdle GameState = iota
	StatePlaying
	StateLevelComplete
	StateGameOver
	StateVictory
)

var stateNames = [...]string{"idle", "playing", "level_complete", "game_over", "victory"}

func (s GameState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Terminal is true for states that end a level and wait for the player.
func (s GameState) Terminal() bool {
	return s == StateLevelComplete || s == StateGameOver || s == StateVictory
}

// ErrInvalidTransition is returned for actions the current state does not allow.
var ErrInvalidTransition = errors.New("invalid state transition")

const (
	MsgIdle          = "System secure. Awaiting instructions..."
	MsgBossFormat    = "WARNING: %s has entered system memory."
	MsgLevelComplete = "Threat neutralized. Upgrading system..."
	MsgVictory       = "All threats cleared. System secure."
)

// Bounds is the playfield size in pixels
type Bounds struct {
	Width, Height float64
}

// MinX/MaxX/MinY/MaxY describe the interior region entities bounce inside.
func (b Bounds) MinX() float64 { return 0 }
func (b Bounds) MaxX() float64 { return b.Width }
func (b Bounds) MinY() float64 { return TopMargin }
func (b Bounds) MaxY() float64 { return b.Height - BottomBand }

// Session is the top-level mutable game state. One per process.
type Session struct {
	RunID         string
	Level         int
	Score         int
	TimeLeft      int
	State         GameState
	SystemMessage string
	BossTaunt     string
	Bounds        Bounds
}

// NewSession returns an idle session for a playfield of the given size
func NewSession(b Bounds) *Session {
	return &Session{
		State:         StateIdle,
		SystemMessage: MsgIdle,
		Bounds:        b,
	}
}

// Config returns the current level's tuning
func (s *Session) Config() LevelConfig {
	cfg, ok := LevelFor(s.Level)
	if !ok {
		cfg, _ = LevelFor(1)
	}
	return cfg
}

// Playing is a shorthand used by every system guard
func (s *Session) Playing() bool { return s.State == StatePlaying }

// Begin enters Playing at the given level. Level 1 starts a new run with a fresh
// score; later levels keep the score.
func (s *Session) Begin(level int) error {
	cfg, ok := LevelFor(level)
	if !ok {
		return fmt.Errorf("%w: no level %d", ErrInvalidTransition, level)
	}
	if level == 1 {
		s.Score = 0
		s.RunID = uuid.NewString()
	}
	s.Level = level
	s.TimeLeft = cfg.TimeLimit
	s.BossTaunt = ""
	s.State = StatePlaying
	return nil
}

// CompleteLevel handles the boss going down.
func (s *Session) CompleteLevel() error {
	if s.State != StatePlaying {
		return fmt.Errorf("%w: complete level from %s", ErrInvalidTransition, s.State)
	}
	if s.Level < FinalLevel {
		s.State = StateLevelComplete
		s.SystemMessage = MsgLevelComplete
		return nil
	}
	s.State = StateVictory
	s.SystemMessage = MsgVictory
	return nil
}

// Expire ends the run when the timer runs out.
func (s *Session) Expire() error {
	if s.State != StatePlaying {
		return fmt.Errorf("%w: expire from %s", ErrInvalidTransition, s.State)
	}
	s.TimeLeft = 0
	s.State = StateGameOver
	return nil
}
