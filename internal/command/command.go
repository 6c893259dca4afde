// Package command runs external programs and captures their output.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Result holds the captured output of a finished command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs a program to completion.
type Runner interface {
	Run(ctx context.Context, program string, args []string, opts ...Option) (*Result, error)
}

// Options configures a single run.
type Options struct {
	Stdin      string
	WorkingDir string
	Env        map[string]string
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithStdin feeds input to the command's standard input.
func WithStdin(input string) Option {
	return func(o *Options) {
		o.Stdin = input
	}
}

// WithWorkingDir sets the working directory.
func WithWorkingDir(dir string) Option {
	return func(o *Options) {
		o.WorkingDir = dir
	}
}

// WithEnvVar adds a single environment variable.
func WithEnvVar(key, value string) Option {
	return func(o *Options) {
		if o.Env == nil {
			o.Env = make(map[string]string)
		}
		o.Env[key] = value
	}
}

// Exec runs commands with os/exec.
type Exec struct{}

// Run implements Runner. A non-zero exit status is returned as an error
// carrying the trimmed stderr output; the Result is returned either way.
func (Exec) Run(ctx context.Context, program string, args []string, opts ...Option) (*Result, error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	cmd := exec.CommandContext(ctx, program, args...) //#nosec G204 -- programs come from user configuration
	if options.WorkingDir != "" {
		cmd.Dir = options.WorkingDir
	}
	if len(options.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range options.Env {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
		}
	}
	if options.Stdin != "" {
		cmd.Stdin = strings.NewReader(options.Stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return result, nil
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		result.ExitCode = -1
	}

	if msg := strings.TrimSpace(result.Stderr); msg != "" {
		return result, fmt.Errorf("%s: %w: %s", program, err, msg)
	}
	return result, fmt.Errorf("%s: %w", program, err)
}

// Split breaks a command line such as "xsel -pi" into program and
// arguments. It reports false for an empty line. Quoting is not supported.
func Split(line string) (string, []string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, false
	}
	return fields[0], fields[1:], true
}
