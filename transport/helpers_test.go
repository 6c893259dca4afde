package transport_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aither64/haveup/internal/command"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

type SpyRunner struct {
	mock.Mock
}

func (s *SpyRunner) Run(ctx context.Context, program string, args []string, opts ...command.Option) (*command.Result, error) {
	called := s.Called(program, args)
	res, _ := called.Get(0).(*command.Result)
	return res, called.Error(1)
}
