package transport

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aither64/haveup/internal/command"
)

// SCP copies files with an scp compatible program invoked as
// "program [args...] -- localPath destination".
type SCP struct {
	program string
	args    []string
	runner  command.Runner
}

// NewSCP parses program (e.g. "scp -q") into an SCP transport.
func NewSCP(program string, runner command.Runner) *SCP {
	name, args, ok := command.Split(program)
	if !ok {
		name = DefaultSCPProgram
	}
	if runner == nil {
		runner = command.Exec{}
	}
	return &SCP{program: name, args: args, runner: runner}
}

// Transfer copies localPath to destination.
func (s *SCP) Transfer(ctx context.Context, localPath, destination string) error {
	args := make([]string, 0, len(s.args)+3)
	args = append(args, s.args...)
	args = append(args, "--", localOperand(localPath), destination)

	if _, err := s.runner.Run(ctx, s.program, args); err != nil {
		return fmt.Errorf("copy to %s: %w", destination, err)
	}
	return nil
}

// localOperand anchors a relative path to the working directory so a colon
// in the name is not read as host:path.
func localOperand(path string) string {
	if filepath.IsAbs(path) || strings.HasPrefix(path, "./") || strings.HasPrefix(path, "../") {
		return path
	}
	return "./" + path
}
