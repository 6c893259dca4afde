package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aither64/haveup"
	"github.com/aither64/haveup/config"
	"github.com/aither64/haveup/digest"
	"github.com/aither64/haveup/internal/command"
	"github.com/aither64/haveup/profile"
	"github.com/aither64/haveup/sidechannel"
	"github.com/aither64/haveup/transport"
)

func runPublish(cmd *cobra.Command, f *rootFlags, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	store, err := cfg.Store()
	if err != nil {
		return invalidConfig(err)
	}

	p, err := profile.Resolve(cfg.Class, store)
	if err != nil {
		return err
	}

	opts, err := haveup.NewOptions(args, p, overrides(cmd.Flags(), f))
	if err != nil {
		return err
	}

	logger := slog.Default().With("run", uuid.NewString(), "profile", opts.ProfileName)
	logger.Debug("options resolved",
		"files", len(opts.Files),
		"subdir", opts.Subdir,
		"hash_name", opts.HashName,
		"checksums", opts.ChecksumAlgorithms,
	)

	publisher, err := newPublisher(cmd, cfg, opts, f.jsonOutput, logger)
	if err != nil {
		return err
	}

	report, runErr := publisher.Run(ctx, opts)
	if report != nil {
		if err := haveup.NewFormatter(f.jsonOutput).FormatReport(cmd.OutOrStdout(), report); err != nil {
			logger.Warn("write report", "err", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	if skipped := report.Skipped(); skipped > 0 {
		logger.Warn("batch finished with skipped files", "skipped", skipped, "total", len(opts.Files))
		if f.strict {
			return fmt.Errorf("%w: %d of %d", errSkippedFiles, skipped, len(opts.Files))
		}
	}
	return nil
}

func newPublisher(cmd *cobra.Command, cfg *config.Config, opts *haveup.Options, jsonOutput bool, logger *slog.Logger) (*haveup.Publisher, error) {
	runner := command.Exec{}

	tr := transport.New(transport.Config{
		User:       opts.Profile.User,
		Password:   opts.Profile.Password,
		AccessKey:  opts.Profile.AccessKey,
		SecretKey:  opts.Profile.SecretKey,
		Region:     opts.Profile.Region,
		Endpoint:   opts.Profile.Endpoint,
		SCPProgram: cfg.Transport.SCP,
		Timeout:    cfg.Transport.Timeout,
	}, runner, logger)

	digester, err := digest.New(cfg.Digest.Mode, runner)
	if err != nil {
		return nil, invalidConfig(err)
	}

	pubOpts := []haveup.Option{
		haveup.WithDigester(digester),
		haveup.WithLogger(logger),
		haveup.WithOutput(cmd.OutOrStdout(), haveup.NewFormatter(jsonOutput)),
	}
	if clip := sidechannel.NewClipboard(cfg.Clipboard.Command, runner, logger); clip != nil {
		pubOpts = append(pubOpts, haveup.WithSideChannel(clip))
	}
	if cfg.Notify.Enabled {
		if n := sidechannel.NewNotifier(cfg.Notify.Command, runner, logger); n != nil {
			pubOpts = append(pubOpts, haveup.WithNotifier(n))
		}
	}

	return haveup.NewPublisher(tr, pubOpts...)
}

// overrides collects the flags the user set explicitly.
func overrides(fl *pflag.FlagSet, f *rootFlags) haveup.Overrides {
	var o haveup.Overrides
	if fl.Changed("dir") {
		o.Subdir = &f.dir
	}
	if fl.Changed("hash-name") {
		o.HashName = &f.hashName
	}
	if fl.Changed("checksum") {
		o.Checksum = f.checksum
		if o.Checksum == nil {
			o.Checksum = []string{}
		}
	}
	if fl.Changed("keep-checksum") {
		o.KeepChecksum = &f.keepChecksum
	}
	return o
}
