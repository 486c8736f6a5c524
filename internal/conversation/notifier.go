package conversation

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/ottocake/internal/domain"
	"github.com/hammamikhairi/ottocake/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

// feedbackStyle is how one feedback kind looks in the scrollback.
type feedbackStyle struct {
	mark  string
	style lipgloss.Style
}

var feedbackStyles = map[domain.FeedbackKind]feedbackStyle{
	domain.FeedbackAccept:  {"+", lipgloss.NewStyle().Foreground(lipgloss.Color("#fde68a"))},
	domain.FeedbackReject:  {"x", lipgloss.NewStyle().Foreground(lipgloss.Color("#fca5a5")).Bold(true)},
	domain.FeedbackSuccess: {"*", lipgloss.NewStyle().Foreground(lipgloss.Color("#bbf7d0")).Bold(true)},
	domain.FeedbackFailure: {"!", lipgloss.NewStyle().Foreground(lipgloss.Color("#fca5a5"))},
	domain.FeedbackInfo:    {"-", lipgloss.NewStyle().Foreground(lipgloss.Color("#bae6fd"))},
}

// PrintFunc is a function used to print formatted output.
// Matches the signature of both fmt.Printf and display.UI.Printf.
type PrintFunc func(format string, a ...interface{})

// CLINotifier prints feedback lines, marked and coloured by kind.
type CLINotifier struct {
	log     *logger.Logger
	printFn PrintFunc
}

// NewCLINotifier creates a stdout-based notifier.
// If printFn is nil, fmt.Printf is used.
func NewCLINotifier(log *logger.Logger, printFn PrintFunc) *CLINotifier {
	if printFn == nil {
		printFn = func(format string, a ...interface{}) {
			fmt.Printf(format+"\n", a...)
		}
	}
	return &CLINotifier{log: log, printFn: printFn}
}

// Notify prints one feedback message. Feedback without a message is skipped.
func (n *CLINotifier) Notify(ctx context.Context, fb domain.Feedback) error {
	if fb.Message == "" {
		return nil
	}
	n.log.Debug("notify (%s): %s", fb.Kind, fb.Message)
	n.printFn("%s", formatFeedback(fb))
	return nil
}

func formatFeedback(fb domain.Feedback) string {
	fs, ok := feedbackStyles[fb.Kind]
	if !ok {
		fs = feedbackStyles[domain.FeedbackInfo]
	}
	return fs.style.Render(fmt.Sprintf("  %s %s", fs.mark, fb.Message))
}
