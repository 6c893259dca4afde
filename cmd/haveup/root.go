package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/aither64/haveup/config"
)

type rootFlags struct {
	configFile   string
	class        string
	dir          string
	hashName     bool
	checksum     []string
	keepChecksum bool
	jsonOutput   bool
	strict       bool
	verbose      bool
	logLevel     string
	logFormat    string
	digestMode   string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:     "haveup [flags] FILE...",
		Version: version,
		Short:   "Upload file(s) and print links",
		Long: `haveup uploads files to the destination configured by a profile and
prints the public link of each uploaded file.

Profiles are read from ~/.haveup/config.yaml. A profile is selected by exact
name or by the first profile whose name starts with the given prefix.

Examples:
  haveup cat.png
  haveup -c img -k md5,sha256 cat.png dog.png
  haveup -s -d 2024 --json report.pdf`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errMissingFiles
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var files []string
			if f.configFile != "" {
				files = []string{f.configFile}
			}
			cfg, err := config.Load(files, cmd.Flags())
			if err != nil {
				return invalidConfig(err)
			}
			setupLogging(stderr, cfg.Log, f.verbose)
			cmd.SetContext(config.WithContext(cmd.Context(), cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd, f, args)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	fl := cmd.Flags()
	fl.StringVarP(&f.class, "class", "c", "", "profile name or prefix (default: DEFAULT, env: HAVEUP_CLASS)")
	fl.StringVarP(&f.dir, "dir", "d", "", "upload into this subdirectory")
	fl.BoolVarP(&f.hashName, "hash-name", "s", false, "name the remote file by the SHA1 of its basename")
	fl.StringSliceVarP(&f.checksum, "checksum", "k", nil, "comma separated checksum algorithms to publish alongside the file")
	fl.BoolVarP(&f.keepChecksum, "keep-checksum", "e", false, "keep the .{alg}sum files next to the source")
	fl.StringVar(&f.configFile, "config", "", "config file (default: ~/.haveup/config.yaml, env: HAVEUP_CONFIG)")
	fl.BoolVar(&f.jsonOutput, "json", false, "print a JSON report instead of one line per file")
	fl.BoolVar(&f.strict, "strict", false, "exit with status 3 when any file was skipped")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	fl.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error (env: HAVEUP_LOG_LEVEL)")
	fl.StringVar(&f.logFormat, "log-format", "", "log format: text, json (env: HAVEUP_LOG_FORMAT)")
	fl.StringVar(&f.digestMode, "digest-mode", "", "checksum implementation: native, command (env: HAVEUP_DIGEST_MODE)")

	return cmd
}
