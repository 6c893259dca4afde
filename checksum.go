package haveup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ChecksumPublisher computes file digests and uploads them as sidecars next
// to the published file.
type ChecksumPublisher struct {
	digester  Digester
	transport Transport
	logger    *slog.Logger
}

// NewChecksumPublisher returns a ChecksumPublisher using digester to compute
// digests and transport to upload them.
func NewChecksumPublisher(digester Digester, transport Transport, logger *slog.Logger) (*ChecksumPublisher, error) {
	if digester == nil {
		return nil, errors.New("digester is required")
	}
	if transport == nil {
		return nil, errors.New("transport is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChecksumPublisher{digester: digester, transport: transport, logger: logger}, nil
}

// SidecarDestination returns where the digest for algorithm is uploaded.
func SidecarDestination(uploadDestination, algorithm string) string {
	return uploadDestination + "." + algorithm + "sum"
}

// ArtifactPath returns where a retained digest file for localPath is written.
func ArtifactPath(localPath, algorithm string) string {
	return localPath + "." + algorithm + "sum"
}

// Publish digests localPath with algorithm and uploads the result to the
// sidecar destination of uploadDestination.
//
// With keep set the digest file is written next to localPath and left there.
// Otherwise a temporary file is used and removed once the transfer attempt
// has finished, whatever its outcome.
func (c *ChecksumPublisher) Publish(ctx context.Context, localPath, algorithm, uploadDestination string, keep bool) error {
	logger := c.logger.With("file", localPath, "algorithm", algorithm)

	sum, err := c.digester.Digest(ctx, localPath, algorithm)
	if err != nil {
		logger.Debug("checksum failed", "err", err)
		return fmt.Errorf("%w: %s %s: %w", ErrChecksumFailed, algorithm, localPath, err)
	}

	artifact, cleanup, err := writeArtifact(localPath, algorithm, sum, keep)
	if err != nil {
		logger.Debug("write checksum file", "err", err)
		return fmt.Errorf("%w: %s %s: %w", ErrChecksumFailed, algorithm, localPath, err)
	}
	defer cleanup()

	dest := SidecarDestination(uploadDestination, algorithm)
	if err := c.transport.Transfer(ctx, artifact, dest); err != nil {
		logger.Debug("checksum upload failed", "destination", dest, "err", err)
		return fmt.Errorf("%w: upload %s: %w", ErrChecksumFailed, dest, err)
	}

	logger.Debug("checksum published", "destination", dest, "digest", sum)
	return nil
}

// PublishAll publishes a sidecar for each algorithm in order and stops at the
// first failure.
func (c *ChecksumPublisher) PublishAll(ctx context.Context, localPath string, algorithms []string, uploadDestination string, keep bool) error {
	for _, alg := range algorithms {
		if err := c.Publish(ctx, localPath, alg, uploadDestination, keep); err != nil {
			return err
		}
	}
	return nil
}

// writeArtifact writes "sum\n" to a temp file. With keep set the file is
// created next to localPath and renamed into place, otherwise it lives in the
// system temp dir until cleanup is called.
func writeArtifact(localPath, algorithm, sum string, keep bool) (path string, cleanup func(), err error) {
	dir, pattern := "", "haveup-*."+algorithm+"sum"
	if keep {
		dir, pattern = filepath.Dir(localPath), "."+filepath.Base(localPath)+".*.tmp"
	}

	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmp)
		}
	}()

	if _, err := f.WriteString(sum + "\n"); err != nil {
		_ = f.Close()
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return "", nil, fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}

	if !keep {
		success = true
		return tmp, func() { _ = os.Remove(tmp) }, nil
	}

	path = ArtifactPath(localPath, algorithm)
	if err := os.Chmod(tmp, 0o644); err != nil { //#nosec G302 -- digest files are public
		return "", nil, fmt.Errorf("chmod %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", nil, fmt.Errorf("rename to %s: %w", path, err)
	}

	success = true
	return path, func() {}, nil
}
