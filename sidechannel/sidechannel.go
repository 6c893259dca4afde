// Package sidechannel delivers published links and upload notices to the
// desktop. Failures are logged at debug level and otherwise ignored.
package sidechannel

import (
	"context"
	"log/slog"

	"github.com/aither64/haveup/internal/command"
)

// Default command lines.
const (
	DefaultClipboardCommand = "xsel -pi"
	DefaultNotifyCommand    = "notify-send"
)

// Clipboard writes text to the primary selection by piping it into a
// clipboard program.
type Clipboard struct {
	program string
	args    []string
	runner  command.Runner
	logger  *slog.Logger
}

// NewClipboard parses cmdline into a Clipboard. It returns nil when cmdline
// is empty, which disables the side channel.
func NewClipboard(cmdline string, runner command.Runner, logger *slog.Logger) *Clipboard {
	program, args, ok := command.Split(cmdline)
	if !ok {
		return nil
	}
	if runner == nil {
		runner = command.Exec{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Clipboard{program: program, args: args, runner: runner, logger: logger}
}

// Publish replaces the clipboard content with text.
func (c *Clipboard) Publish(ctx context.Context, text string) {
	if _, err := c.runner.Run(ctx, c.program, c.args, command.WithStdin(text)); err != nil {
		c.logger.Debug("clipboard update failed", "program", c.program, "err", err)
	}
}

// Notifier shows a desktop notification through notify-send or a
// compatible program invoked as "program [args...] title body".
type Notifier struct {
	program string
	args    []string
	runner  command.Runner
	logger  *slog.Logger
}

// NewNotifier parses cmdline into a Notifier. It returns nil when cmdline is
// empty.
func NewNotifier(cmdline string, runner command.Runner, logger *slog.Logger) *Notifier {
	program, args, ok := command.Split(cmdline)
	if !ok {
		return nil
	}
	if runner == nil {
		runner = command.Exec{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{program: program, args: args, runner: runner, logger: logger}
}

// Notify shows title and body.
func (n *Notifier) Notify(ctx context.Context, title, body string) {
	args := make([]string, 0, len(n.args)+2)
	args = append(args, n.args...)
	args = append(args, title, body)
	if _, err := n.runner.Run(ctx, n.program, args); err != nil {
		n.logger.Debug("notification failed", "program", n.program, "err", err)
	}
}
