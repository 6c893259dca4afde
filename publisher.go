package haveup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Publisher uploads files one at a time and collects their public links.
type Publisher struct {
	transport Transport
	digester  Digester
	checksums *ChecksumPublisher
	channel   SideChannel
	notifier  Notifier
	out       io.Writer
	formatter Formatter
	logger    *slog.Logger
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithDigester sets the digester used for checksum sidecars.
func WithDigester(d Digester) Option {
	return func(p *Publisher) {
		p.digester = d
	}
}

// WithSideChannel sets where the link list is sent after each upload.
func WithSideChannel(ch SideChannel) Option {
	return func(p *Publisher) {
		p.channel = ch
	}
}

// WithNotifier sets the notifier told about each finished upload.
func WithNotifier(n Notifier) Option {
	return func(p *Publisher) {
		p.notifier = n
	}
}

// WithOutput sets where published links are written and how.
func WithOutput(w io.Writer, f Formatter) Option {
	return func(p *Publisher) {
		p.out = w
		p.formatter = f
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher creates a Publisher that uploads with transport.
func NewPublisher(transport Transport, opts ...Option) (*Publisher, error) {
	if transport == nil {
		return nil, errors.New("transport is required")
	}

	p := &Publisher{
		transport: transport,
		out:       os.Stdout,
		formatter: &HumanFormatter{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.digester != nil {
		checksums, err := NewChecksumPublisher(p.digester, p.transport, p.logger)
		if err != nil {
			return nil, err
		}
		p.checksums = checksums
	}

	return p, nil
}

// Run publishes every file in opts.Files in order.
//
// A file whose checksum or transfer fails is skipped and the remaining files
// are still processed; its result carries the error. Run itself only fails
// for invalid input, cancellation, or an ErrAuthentication from the
// transport, in which case the partial report is returned with the error.
func (p *Publisher) Run(ctx context.Context, opts *Options) (*Report, error) {
	if opts == nil {
		return nil, ErrOptionsRequired
	}
	if len(opts.Files) == 0 {
		return nil, ErrNoFiles
	}
	if len(opts.ChecksumAlgorithms) > 0 && p.checksums == nil {
		return nil, fmt.Errorf("%w: checksums requested without a digester", ErrInvalidOptions)
	}

	sink := NewLinkSink(p.channel)
	report := &Report{Results: make([]PublishResult, 0, len(opts.Files))}

	for i, file := range opts.Files {
		if err := ctx.Err(); err != nil {
			report.Links = sink.Links()
			return report, err
		}

		result := p.publishFile(ctx, opts, file)
		report.Results = append(report.Results, result)

		if result.Err != nil {
			p.logger.Error("file skipped", "file", file, "err", result.Err)
			if errors.Is(result.Err, ErrAuthentication) {
				report.Links = sink.Links()
				return report, result.Err
			}
			continue
		}

		if p.out != nil {
			if err := p.formatter.FormatPublished(p.out, &result); err != nil {
				p.logger.Warn("write output", "err", err)
			}
		}
		sink.Record(ctx, result.DownloadURL)
		p.notify(ctx, file, i < len(opts.Files)-1)
	}

	report.Links = sink.Links()
	return report, nil
}

func (p *Publisher) publishFile(ctx context.Context, opts *Options, file string) PublishResult {
	target := TargetName(file, opts.HashName)
	result := PublishResult{
		LocalPath:         file,
		TargetName:        target,
		DownloadURL:       joinLocation(opts.Profile.PublicURL, opts.Subdir, target),
		UploadDestination: joinLocation(opts.Profile.UploadURL, opts.Subdir, target),
	}
	logger := p.logger.With("file", file, "destination", result.UploadDestination)

	if err := checkReadable(file); err != nil {
		result.Err = err
		return result
	}

	if len(opts.ChecksumAlgorithms) > 0 {
		err := p.checksums.PublishAll(ctx, file, opts.ChecksumAlgorithms, result.UploadDestination, opts.KeepChecksumArtifact)
		if err != nil {
			result.Err = err
			return result
		}
	}

	logger.Debug("uploading")
	if err := p.transport.Transfer(ctx, file, result.UploadDestination); err != nil {
		result.Err = fmt.Errorf("%w: %s: %w", ErrTransferFailed, file, err)
		return result
	}

	logger.Info("uploaded", "url", result.DownloadURL)
	result.Succeeded = true
	return result
}

func (p *Publisher) notify(ctx context.Context, file string, more bool) {
	if p.notifier == nil {
		return
	}
	title := "Upload finished"
	if more {
		title = "File uploaded"
	}
	p.notifier.Notify(ctx, title, fmt.Sprintf("File %s was successfully uploaded", file))
}

func checkReadable(path string) error {
	f, err := os.Open(path) //#nosec G304 -- path is user-provided input
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreadableFile, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreadableFile, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrUnreadableFile, path)
	}
	return nil
}
