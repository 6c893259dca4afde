package transport

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aither64/haveup"
	"github.com/aither64/haveup/internal/command"
)

// DefaultSCPProgram is used for remote copy destinations.
const DefaultSCPProgram = "scp"

// Config carries the profile credentials and program settings shared by all
// transports.
type Config struct {
	User       string
	Password   string
	AccessKey  string
	SecretKey  string
	Region     string
	Endpoint   string
	SCPProgram string

	// Timeout bounds a whole HTTP or Stowry request, body included.
	// Zero means no limit.
	Timeout time.Duration
}

// Router picks a transport by destination scheme.
type Router struct {
	cfg    Config
	logger *slog.Logger

	http   *HTTP
	stowry *Stowry
	scp    *SCP
	s3     *S3
}

var _ haveup.Transport = (*Router)(nil)

// New returns a Router for cfg. The S3 client is created on first use.
func New(cfg Config, runner command.Runner, logger *slog.Logger) *Router {
	if cfg.Timeout < 0 {
		cfg.Timeout = 0
	}
	if cfg.SCPProgram == "" {
		cfg.SCPProgram = DefaultSCPProgram
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Router{
		cfg:    cfg,
		logger: logger,
		http:   NewHTTP(cfg.User, cfg.Password, cfg.Timeout),
		stowry: NewStowry(cfg.AccessKey, cfg.SecretKey, cfg.Timeout),
		scp:    NewSCP(cfg.SCPProgram, runner),
	}
}

// Kind names the transport Transfer would use for destination.
func Kind(destination string) string {
	scheme, _, ok := strings.Cut(destination, "://")
	if !ok {
		return "scp"
	}
	switch strings.ToLower(scheme) {
	case "http", "https":
		return "http"
	case "s3":
		return "s3"
	case "stowry", "stowrys":
		return "stowry"
	default:
		return "scp"
	}
}

// Transfer implements haveup.Transport.
func (r *Router) Transfer(ctx context.Context, localPath, destination string) error {
	kind := Kind(destination)
	r.logger.Debug("transfer", "transport", kind, "file", localPath, "destination", destination)

	switch kind {
	case "http":
		return r.http.Transfer(ctx, localPath, destination)
	case "stowry":
		return r.stowry.Transfer(ctx, localPath, destination)
	case "s3":
		if r.s3 == nil {
			client, err := NewS3(ctx, r.cfg)
			if err != nil {
				return fmt.Errorf("s3 client: %w", err)
			}
			r.s3 = client
		}
		return r.s3.Transfer(ctx, localPath, destination)
	default:
		return r.scp.Transfer(ctx, localPath, destination)
	}
}
