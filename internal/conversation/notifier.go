package conversation

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/stepcook/internal/domain"
	"github.com/hammamikhairi/stepcook/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

var (
	noticeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	urgentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

// CLINotifier writes notifications to a terminal, one per line. Styling
// is dropped automatically when the output is not a color terminal.
type CLINotifier struct {
	log *logger.Logger

	mu       sync.Mutex
	out      io.Writer
	renderer *lipgloss.Renderer
}

// NewCLINotifier creates a terminal notifier. If out is nil, os.Stdout is used.
func NewCLINotifier(log *logger.Logger, out io.Writer) *CLINotifier {
	if out == nil {
		out = os.Stdout
	}
	return &CLINotifier{
		log:      log,
		out:      out,
		renderer: lipgloss.NewRenderer(out),
	}
}

// Notify prints a normal notification.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	return n.print(noticeStyle, message)
}

// NotifyUrgent prints an urgent notification in bold red.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	return n.print(urgentStyle, message)
}

func (n *CLINotifier) print(style lipgloss.Style, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	line := style.Renderer(n.renderer).Render(message)
	if _, err := fmt.Fprintln(n.out, line); err != nil {
		return fmt.Errorf("writing notification: %w", err)
	}
	return nil
}
