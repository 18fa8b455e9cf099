package engine

// Outcome describes what a Tick or StopCurrentStep did to the session.
type Outcome int

const (
	// OutcomeNone means nothing changed: no active session, a stale
	// recipe, a paused session, or a sub-second tick.
	OutcomeNone Outcome = iota
	// OutcomeTicked means time was applied within the current step.
	OutcomeTicked
	// OutcomeAdvanced means the session moved to the next step.
	OutcomeAdvanced
	// OutcomeCompleted means the last step finished and the session
	// was removed.
	OutcomeCompleted
)

// String returns a human-readable outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeTicked:
		return "ticked"
	case OutcomeAdvanced:
		return "advanced"
	case OutcomeCompleted:
		return "completed"
	default:
		return "unknown"
	}
}
