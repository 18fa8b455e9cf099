package domain

import (
	"fmt"
	"time"
)

// Session is the progress of one recipe being cooked. Sessions live only
// in memory and only while their recipe is the active one.
type Session struct {
	RecipeID            string
	CurrentStepIndex    int
	IsRunning           bool
	StepRemainingSec    int // may dip below zero between a tick and the step boundary
	OverallRemainingSec int
	LastTickTs          time.Time
}

// DisplayStepRemaining returns the step countdown clamped at zero.
func (s Session) DisplayStepRemaining() int {
	if s.StepRemainingSec < 0 {
		return 0
	}
	return s.StepRemainingSec
}

// DisplayOverallRemaining returns the overall countdown clamped at zero.
func (s Session) DisplayOverallRemaining() int {
	if s.OverallRemainingSec < 0 {
		return 0
	}
	return s.OverallRemainingSec
}

// FormatClock renders a countdown as MM:SS. Negative values render as
// 00:00; minutes are not wrapped into hours.
func FormatClock(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}

// SessionStatus is the state of a recipe's session as seen by a display.
// Completion is never stored: a session that finishes is removed, and
// callers infer completion from it going absent.
type SessionStatus int

const (
	SessionAbsent SessionStatus = iota
	SessionRunning
	SessionPaused
)

// String returns a human-readable session status.
func (s SessionStatus) String() string {
	switch s {
	case SessionAbsent:
		return "absent"
	case SessionRunning:
		return "running"
	case SessionPaused:
		return "paused"
	default:
		return "unknown"
	}
}
