package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/aither64/haveup"
)

// HTTP uploads with a PUT request to the destination URL.
type HTTP struct {
	user     string
	password string
	client   *http.Client
}

// NewHTTP returns an HTTP transport. Basic auth is sent when user is set.
// A zero timeout leaves uploads unbounded.
func NewHTTP(user, password string, timeout time.Duration) *HTTP {
	return &HTTP{
		user:     user,
		password: password,
		client:   &http.Client{Timeout: timeout},
	}
}

// Transfer PUTs the file at localPath to destination.
func (h *HTTP) Transfer(ctx context.Context, localPath, destination string) error {
	return put(ctx, h.client, localPath, destination, func(req *http.Request) {
		if h.user != "" {
			req.SetBasicAuth(h.user, h.password)
		}
	})
}

func put(ctx context.Context, client *http.Client, localPath, url string, prepare func(*http.Request)) error {
	file, err := os.Open(localPath) //#nosec G304 -- path is user-provided input
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	contentType, err := detectContentType(localPath)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, file)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = info.Size()
	if prepare != nil {
		prepare(req)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	if statusErr.IsAuth() {
		return fmt.Errorf("%w: %w", haveup.ErrAuthentication, statusErr)
	}
	return statusErr
}

func detectContentType(path string) (string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detect content type: %w", err)
	}
	return mtype.String(), nil
}
