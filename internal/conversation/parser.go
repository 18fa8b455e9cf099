// Package conversation turns typed input into session commands and
// delivers notifications back to the terminal.
package conversation

import (
	"regexp"
	"strings"

	"github.com/hammamikhairi/stepcook/internal/domain"
	"github.com/hammamikhairi/stepcook/internal/logger"
)

// KeywordParser matches user input to commands using keywords and
// simple patterns.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex   *regexp.Regexp
	command domain.CommandType
}

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(pause|brb|wait|hold( on)?)$`), domain.CommandPause},
		{regexp.MustCompile(`(?i)^(resume|back|unpause|go on)$`), domain.CommandResume},
		{regexp.MustCompile(`(?i)^(p|toggle|space)$`), domain.CommandToggle},
		{regexp.MustCompile(`(?i)^(next|done|skip|stop|n|x|stop step|finish step)$`), domain.CommandStopStep},
		{regexp.MustCompile(`(?i)^(end|quit|exit|q|abandon|end session)$`), domain.CommandEnd},
		{regexp.MustCompile(`(?i)^(status|where|progress|info|s)$`), domain.CommandStatus},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.CommandHelp},
	}
	return p
}

// Parse converts a line of user input into a command. A line made only
// of spaces toggles pause, mirroring the space bar in the TUI.
func (p *KeywordParser) Parse(input string) domain.Command {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		if strings.Contains(input, " ") {
			return domain.Command{Type: domain.CommandToggle, Input: input}
		}
		return domain.Command{Type: domain.CommandUnknown}
	}

	p.log.Debug("parsing input: %q", trimmed)

	normalized := strings.Join(strings.Fields(trimmed), " ")
	if t := domain.CommandFromString(strings.ToLower(normalized)); t != domain.CommandUnknown {
		return domain.Command{Type: t, Input: trimmed}
	}
	for _, rule := range p.patterns {
		if rule.regex.MatchString(normalized) {
			p.log.Debug("matched command: %s", rule.command)
			return domain.Command{Type: rule.command, Input: trimmed}
		}
	}

	p.log.Debug("no match, returning unknown command")
	return domain.Command{Type: domain.CommandUnknown, Input: trimmed}
}
