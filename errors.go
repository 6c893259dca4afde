package haveup

import "errors"

var (
	// ErrNoFiles is returned when no files were given to publish.
	ErrNoFiles = errors.New("no files to upload")
	// ErrInvalidOptions is returned when the resolved settings fail coercion or validation.
	ErrInvalidOptions = errors.New("invalid options")
	// ErrOptionsRequired is returned when Run is called without options.
	ErrOptionsRequired = errors.New("options are required")
	// ErrAuthentication is returned by transports when the remote side rejects
	// the configured credentials. It aborts the whole batch.
	ErrAuthentication = errors.New("authentication failed")
)

// Per-file errors. A file failing with one of these is skipped and the batch continues.
var (
	// ErrUnreadableFile is returned when a local file cannot be opened for upload.
	ErrUnreadableFile = errors.New("unable to open file")
	// ErrChecksumFailed is returned when a checksum sidecar could not be published.
	ErrChecksumFailed = errors.New("checksum failed")
	// ErrTransferFailed is returned when the main file transfer failed.
	ErrTransferFailed = errors.New("transfer failed")
)
