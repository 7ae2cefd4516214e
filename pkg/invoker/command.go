package invoker

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/papercomputeco/duet/pkg/logger"
	"github.com/papercomputeco/duet/pkg/utils"
)

const (
	DefaultCommand     = "llm"
	DefaultModelFlag   = "-m"
	DefaultSessionFlag = "-c"

	previewLen = 60
)

// CommandInvoker runs an external CLI once per request:
//
//	<Command> [ExtraArgs...] <ModelFlag> <model> [<SessionFlag> <conversation id>]
//
// The prompt is written to the tool's stdin and its stdout is the response.
type CommandInvoker struct {
	Command     string
	ModelFlag   string
	SessionFlag string
	ExtraArgs   []string

	logger *slog.Logger
}

// CommandOption configures a CommandInvoker.
type CommandOption func(*CommandInvoker)

// WithCommand sets the executable to run.
func WithCommand(command string) CommandOption {
	return func(c *CommandInvoker) {
		if command != "" {
			c.Command = command
		}
	}
}

// WithModelFlag sets the flag used to select the model.
func WithModelFlag(flag string) CommandOption {
	return func(c *CommandInvoker) {
		if flag != "" {
			c.ModelFlag = flag
		}
	}
}

// WithSessionFlag sets the flag used to pass a conversation id.
func WithSessionFlag(flag string) CommandOption {
	return func(c *CommandInvoker) {
		if flag != "" {
			c.SessionFlag = flag
		}
	}
}

// WithExtraArgs adds arguments placed right after the command.
func WithExtraArgs(args ...string) CommandOption {
	return func(c *CommandInvoker) {
		c.ExtraArgs = append(c.ExtraArgs, args...)
	}
}

// WithLogger sets the logger invocation failures are reported to.
func WithLogger(l *slog.Logger) CommandOption {
	return func(c *CommandInvoker) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCommandInvoker returns an invoker for the llm CLI unless options say otherwise.
func NewCommandInvoker(opts ...CommandOption) *CommandInvoker {
	c := &CommandInvoker{
		Command:     DefaultCommand,
		ModelFlag:   DefaultModelFlag,
		SessionFlag: DefaultSessionFlag,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Args returns the argument list (without the command) used for req.
func (c *CommandInvoker) Args(req Request) []string {
	args := make([]string, 0, len(c.ExtraArgs)+4)
	args = append(args, c.ExtraArgs...)
	args = append(args, c.ModelFlag, req.Model)
	if req.ConversationID != "" {
		args = append(args, c.SessionFlag, req.ConversationID)
	}
	return args
}

// Invoke runs the tool and blocks until it exits. There is no timeout and no
// retry. A failure is logged with the model and captured stderr before the
// *InvocationError is returned.
func (c *CommandInvoker) Invoke(ctx context.Context, req Request) (string, error) {
	args := c.Args(req)

	c.logger.Debug("invoking model",
		"command", c.Command,
		"model", req.Model,
		"conversation_id", req.ConversationID,
		"prompt", utils.Preview(req.Prompt, previewLen),
	)

	// #nosec G204 -- the command comes from the user's own flags or config.
	cmd := exec.CommandContext(ctx, c.Command, args...)
	cmd.Stdin = strings.NewReader(req.Prompt)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		invErr := &InvocationError{
			Model:    req.Model,
			ExitCode: -1,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			invErr.ExitCode = exitErr.ExitCode()
		}

		c.logger.Error("model invocation failed",
			"model", req.Model,
			"exit_code", invErr.ExitCode,
			"stderr", invErr.Stderr,
			"error", err,
		)
		return "", invErr
	}

	response := strings.TrimSpace(stdout.String())

	c.logger.Debug("model responded",
		"model", req.Model,
		"response", utils.Preview(response, previewLen),
	)

	return response, nil
}
