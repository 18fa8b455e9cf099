package domain

// CommandType classifies what the user wants the cooking session to do.
type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandPause
	CommandResume
	CommandToggle   // pause if running, resume if paused
	CommandStopStep // end the current step now
	CommandEnd      // abandon the session
	CommandStatus
	CommandHelp
)

// String returns a human-readable command type.
func (c CommandType) String() string {
	switch c {
	case CommandPause:
		return "pause"
	case CommandResume:
		return "resume"
	case CommandToggle:
		return "toggle"
	case CommandStopStep:
		return "stop_step"
	case CommandEnd:
		return "end"
	case CommandStatus:
		return "status"
	case CommandHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Command is a parsed user action.
type Command struct {
	Type  CommandType
	Input string // raw text the command was parsed from
}

var commandNames = map[string]CommandType{
	"pause":     CommandPause,
	"resume":    CommandResume,
	"toggle":    CommandToggle,
	"stop_step": CommandStopStep,
	"end":       CommandEnd,
	"status":    CommandStatus,
	"help":      CommandHelp,
	"unknown":   CommandUnknown,
}

// CommandFromString converts a snake_case command name to a CommandType.
// Returns CommandUnknown for unrecognized names.
func CommandFromString(name string) CommandType {
	if t, ok := commandNames[name]; ok {
		return t
	}
	return CommandUnknown
}
