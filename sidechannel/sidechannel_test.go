package sidechannel_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aither64/haveup/internal/command"
	"github.com/aither64/haveup/sidechannel"
)

type SpyRunner struct {
	mock.Mock
}

func (s *SpyRunner) Run(ctx context.Context, program string, args []string, opts ...command.Option) (*command.Result, error) {
	var o command.Options
	for _, opt := range opts {
		opt(&o)
	}
	called := s.Called(program, args, o.Stdin)
	res, _ := called.Get(0).(*command.Result)
	return res, called.Error(1)
}

func TestClipboard(t *testing.T) {
	ctx := context.Background()

	t.Run("pipes text into program", func(t *testing.T) {
		runner := new(SpyRunner)
		runner.On("Run", "xsel", []string{"-pi"}, "http://a\nhttp://b").Return(&command.Result{}, nil)

		clip := sidechannel.NewClipboard(sidechannel.DefaultClipboardCommand, runner, nil)
		require.NotNil(t, clip)
		clip.Publish(ctx, "http://a\nhttp://b")

		runner.AssertExpectations(t)
	})

	t.Run("swallows failure", func(t *testing.T) {
		runner := new(SpyRunner)
		runner.On("Run", "xsel", mock.Anything, mock.Anything).Return(&command.Result{ExitCode: -1}, errors.New("not found"))

		clip := sidechannel.NewClipboard("xsel -pi", runner, nil)
		assert.NotPanics(t, func() { clip.Publish(ctx, "x") })
	})

	t.Run("empty command disables", func(t *testing.T) {
		assert.Nil(t, sidechannel.NewClipboard("  ", nil, nil))
	})

	t.Run("real program", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "clip")
		clip := sidechannel.NewClipboard("tee "+out, nil, nil)
		clip.Publish(ctx, "http://x/pub/cat.png")

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "http://x/pub/cat.png", string(data))
	})
}

func TestNotifier(t *testing.T) {
	ctx := context.Background()

	t.Run("passes title and body", func(t *testing.T) {
		runner := new(SpyRunner)
		runner.On("Run", "notify-send", []string{"-u", "low", "Upload finished", "File a was successfully uploaded"}, "").
			Return(&command.Result{}, nil)

		n := sidechannel.NewNotifier("notify-send -u low", runner, nil)
		require.NotNil(t, n)
		n.Notify(ctx, "Upload finished", "File a was successfully uploaded")

		runner.AssertExpectations(t)
	})

	t.Run("swallows failure", func(t *testing.T) {
		runner := new(SpyRunner)
		runner.On("Run", mock.Anything, mock.Anything, mock.Anything).Return(&command.Result{}, errors.New("no display"))

		n := sidechannel.NewNotifier(sidechannel.DefaultNotifyCommand, runner, nil)
		assert.NotPanics(t, func() { n.Notify(ctx, "t", "b") })
		runner.AssertNumberOfCalls(t, "Run", 1)
	})

	t.Run("empty command disables", func(t *testing.T) {
		assert.Nil(t, sidechannel.NewNotifier("", nil, nil))
	})
}
