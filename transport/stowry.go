package transport

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	stowry "github.com/sagarc03/stowry-go"
)

// PresignExpires is the lifetime of a presigned upload URL in seconds.
const PresignExpires = 900

// Stowry uploads to a Stowry object server with a presigned PUT.
// stowry://host/path maps to http://host and stowrys://host/path to https://host.
type Stowry struct {
	accessKey string
	secretKey string
	client    *http.Client
}

// NewStowry returns a Stowry transport signing with the given key pair.
func NewStowry(accessKey, secretKey string, timeout time.Duration) *Stowry {
	return &Stowry{
		accessKey: accessKey,
		secretKey: secretKey,
		client:    &http.Client{Timeout: timeout},
	}
}

// Transfer uploads localPath to destination.
func (s *Stowry) Transfer(ctx context.Context, localPath, destination string) error {
	if s.accessKey == "" || s.secretKey == "" {
		return fmt.Errorf("stowry: %w: access_key and secret_key", ErrNoCredentials)
	}

	endpoint, path, err := ParseStowry(destination)
	if err != nil {
		return err
	}

	signer := stowry.NewClient(endpoint, s.accessKey, s.secretKey)
	return put(ctx, s.client, localPath, signer.PresignPut(path, PresignExpires), nil)
}

// ParseStowry splits a stowry:// or stowrys:// destination into the server
// endpoint and the object path, which always starts with a slash.
func ParseStowry(destination string) (endpoint, path string, err error) {
	scheme, rest, ok := strings.Cut(destination, "://")
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidDestination, destination)
	}

	switch strings.ToLower(scheme) {
	case "stowry":
		scheme = "http"
	case "stowrys":
		scheme = "https"
	default:
		return "", "", fmt.Errorf("%w: %s", ErrInvalidDestination, destination)
	}

	host, path, _ := strings.Cut(rest, "/")
	path = strings.Trim(path, "/")
	if host == "" || path == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidDestination, destination)
	}

	return scheme + "://" + host, "/" + path, nil
}
