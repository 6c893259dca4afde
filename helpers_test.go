package haveup_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aither64/haveup"
	"github.com/aither64/haveup/profile"
)

type SpyTransport struct {
	mock.Mock
}

func (s *SpyTransport) Transfer(ctx context.Context, localPath, destination string) error {
	args := s.Called(ctx, localPath, destination)
	return args.Error(0)
}

type SpyDigester struct {
	mock.Mock
}

func (s *SpyDigester) Digest(ctx context.Context, path, algorithm string) (string, error) {
	args := s.Called(ctx, path, algorithm)
	return args.String(0), args.Error(1)
}

type SpySideChannel struct {
	mock.Mock
}

func (s *SpySideChannel) Publish(ctx context.Context, text string) {
	s.Called(ctx, text)
}

type SpyNotifier struct {
	mock.Mock
}

func (s *SpyNotifier) Notify(ctx context.Context, title, body string) {
	s.Called(ctx, title, body)
}

// writeFile creates a file named name in a fresh temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newOptions(t *testing.T, files []string, values map[string]string, o haveup.Overrides) *haveup.Options {
	t.Helper()
	merged := map[string]string{
		"publicurl": "http://x/pub",
		"uploadurl": "user@h:/var/www",
	}
	for k, v := range values {
		merged[k] = v
	}
	opts, err := haveup.NewOptions(files, &profile.Profile{Name: "test", Values: merged}, o)
	require.NoError(t, err)
	return opts
}
