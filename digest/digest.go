// Package digest computes file checksums for sidecar files.
//
// Native hashes in-process. Command shells out to the coreutils style
// {algorithm}sum programs and takes the first field of their output.
package digest

import (
	"context"
	"crypto/md5"  //#nosec G501 -- checksum sidecars, not security
	"crypto/sha1" //#nosec G505 -- checksum sidecars, not security
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	godigest "github.com/opencontainers/go-digest"

	"github.com/aither64/haveup/internal/command"
)

// ErrUnsupportedAlgorithm is returned for an algorithm Native cannot compute.
var ErrUnsupportedAlgorithm = errors.New("unsupported digest algorithm")

// Mode names accepted by New.
const (
	ModeNative  = "native"
	ModeCommand = "command"
)

// Native computes digests in-process.
type Native struct{}

// Algorithms lists what Native supports.
func (Native) Algorithms() []string {
	return []string{"md5", "sha1", "sha224", "sha256", "sha384", "sha512"}
}

// Digest returns the lowercase hex digest of the file at path.
func (Native) Digest(ctx context.Context, path, algorithm string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(path) //#nosec G304 -- path is user-provided input
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	alg := strings.ToLower(algorithm)

	if a := godigest.Algorithm(alg); a.Available() {
		d, err := a.FromReader(f)
		if err != nil {
			return "", fmt.Errorf("%s %s: %w", alg, path, err)
		}
		return d.Encoded(), nil
	}

	h, err := legacyHash(alg)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("%s %s: %w", alg, path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func legacyHash(alg string) (hash.Hash, error) {
	switch alg {
	case "md5":
		return md5.New(), nil //#nosec G401
	case "sha1":
		return sha1.New(), nil //#nosec G401
	case "sha224":
		return sha256.New224(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
}

// Command computes digests by running {algorithm}sum.
type Command struct {
	Runner command.Runner
}

// NewCommand returns a Command backed by runner, or by os/exec when nil.
func NewCommand(runner command.Runner) *Command {
	if runner == nil {
		runner = command.Exec{}
	}
	return &Command{Runner: runner}
}

// Digest runs "{algorithm}sum -- path" and returns the first whitespace
// separated field of its output.
func (c *Command) Digest(ctx context.Context, path, algorithm string) (string, error) {
	program := strings.ToLower(algorithm) + "sum"
	res, err := c.Runner.Run(ctx, program, []string{"--", path})
	if err != nil {
		return "", err
	}

	fields := strings.Fields(res.Stdout)
	if len(fields) == 0 {
		return "", fmt.Errorf("%s: empty output", program)
	}
	return fields[0], nil
}

// Digester is satisfied by both Native and Command.
type Digester interface {
	Digest(ctx context.Context, path, algorithm string) (string, error)
}

// New returns the digester for mode. An empty mode means native.
func New(mode string, runner command.Runner) (Digester, error) {
	switch mode {
	case "", ModeNative:
		return Native{}, nil
	case ModeCommand:
		return NewCommand(runner), nil
	default:
		return nil, fmt.Errorf("unknown digest mode %q", mode)
	}
}
