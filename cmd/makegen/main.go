package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"makegen/cmd/makegen/ui"
	"makegen/internal/build"
	"makegen/internal/cli"
	"makegen/internal/config"
	"makegen/internal/logging"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

type loggerFactory func(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error)

// rootOptions carries flags and the per-run state built in PersistentPreRunE.
type rootOptions struct {
	argv0  string
	stdout io.Writer

	// Flags
	verbose    bool
	configPath string
	verify     bool
	tags       bool

	newLogger loggerFactory
	logger    *zap.Logger
	cfg       *config.Config
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "makegen <app_name> [appdir] <manifest_file_name>",
		Short: "Prepare an app directory for the SDK 3.5 make-based build",
		Long: `The SDK 3.5 build step only accepts a manifest named manifest.json and
builds by running make. makegen renames the given manifest to manifest.json
(replacing any existing one) and writes a Makefile whose build target runs:

  go build $(TAGS_ARG) -ldflags "-s -w  -extldflags '-L./lib -Wl,-rpath,./lib'" -o <app_name> .

TAGS_ARG is filled from GO_BUILD_TAGS when make runs, not when makegen runs.

Examples:
  makegen myapp manifest.lowsdk.json
  makegen myapp ./apps/myapp manifest.lowsdk.json`,
		Args: func(cmd *cobra.Command, args []string) error {
			_, err := cli.ParseArgs(opts.argv0, args)
			return err
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				path = config.DefaultPath
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("verify") {
				cfg.Manifest.Verify = opts.verify
			}
			if cmd.Flags().Changed("tags") {
				cfg.Recipe.SupportTags = opts.tags
			}
			opts.cfg = cfg

			logger, err := opts.newLogger(cfg.Logging, opts.verbose)
			if err != nil {
				return err
			}
			opts.logger = logger
			logging.Get(logger, logging.CategoryBoot).Debug("Configuration loaded",
				zap.String("config", path),
				zap.Bool("verify", cfg.Manifest.Verify),
				zap.Bool("support_tags", cfg.Recipe.SupportTags),
			)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrepare(opts, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to config file (default: ./"+config.DefaultPath+" if present)")
	cmd.Flags().BoolVar(&opts.verify, "verify", true, "Parse the moved manifest and report its schemaVersion")
	cmd.Flags().BoolVar(&opts.tags, "tags", true, "Emit a TAGS_ARG variable read from GO_BUILD_TAGS at make time")

	return cmd
}

func runPrepare(opts *rootOptions, args []string) error {
	inv, err := cli.ParseArgs(opts.argv0, args)
	if err != nil {
		return err
	}

	report, err := build.Prepare(inv, opts.cfg, opts.logger)
	if err != nil {
		return err
	}

	p := ui.NewPrinter(opts.stdout, opts.cfg.UI.Color, ui.DetectTheme())
	if report.Manifest.VerifyErr != nil {
		p.Warning(fmt.Sprintf("Warning: Could not verify manifest content: %v", report.Manifest.VerifyErr))
	}
	p.Preview(report.Recipe.Content)
	p.Success("Makefile created successfully. " + report.Recipe.Path)
	return nil
}

// run executes makegen for argv (including the program name) and returns
// the process exit status.
func run(argv []string, stdout, stderr io.Writer, newLogger loggerFactory) int {
	argv0 := "makegen"
	if len(argv) > 0 {
		argv0 = argv[0]
		argv = argv[1:]
	}
	if newLogger == nil {
		newLogger = logging.New
	}

	opts := &rootOptions{argv0: argv0, stdout: stdout, newLogger: newLogger}
	cmd := newRootCmd(opts)
	cmd.SetArgs(argv)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		var usage *cli.UsageError
		if errors.As(err, &usage) {
			fmt.Fprintln(stdout, usage.Error())
			return cli.ExitUsage
		}
		fmt.Fprintln(stderr, "Error:", err)
		return exitFailure
	}
	return exitSuccess
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr, nil))
}
