package main

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/tailscale-portfolio/zoom-batch/internal/actions"
	"github.com/tailscale-portfolio/zoom-batch/internal/auth"
	"github.com/tailscale-portfolio/zoom-batch/internal/batch"
	"github.com/tailscale-portfolio/zoom-batch/internal/config"
	"github.com/tailscale-portfolio/zoom-batch/internal/identity"
	"github.com/tailscale-portfolio/zoom-batch/internal/logging"
	"github.com/tailscale-portfolio/zoom-batch/internal/zoom"
	"go.uber.org/zap"
)

const defaultConfigFile = "zoom_settings.yaml"

type options struct {
	inFile     string
	outFile    string
	configFile string
	logFile    string
	verbose    bool
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "zoom-batch",
		Short: "Apply user actions from a JSON file to Zoom",
		Long: `zoom-batch reads a JSON file of user actions (update, delete, listusers),
applies each one to Zoom in order and writes the outcome of every action
to a CSV file with the columns action, username, result.

Credentials come from the settings file or the ZOOM_API_KEY and
ZOOM_API_SECRET environment variables.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.Flags().Changed("config"), stdout)
		},
	}

	cmd.Flags().StringVarP(&opts.inFile, "file", "f", "", "Input JSON file with user actions and params")
	cmd.Flags().StringVarP(&opts.outFile, "out", "o", "", "Output file with results of Zoom user actions")
	cmd.Flags().StringVar(&opts.configFile, "config", defaultConfigFile, "Settings file with Zoom credentials")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "zoom.log", "Audit log file")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug detail")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func run(ctx context.Context, opts options, configRequired bool, stdout io.Writer) error {
	logger, runID, err := logging.New(opts.logFile, opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	reporter := actions.NewReporter(stdout, logger)
	logger.Info("starting zoom batch", zap.String("input", opts.inFile), zap.String("output", opts.outFile))

	settings, err := config.Load(opts.configFile, configRequired)
	if err != nil {
		reporter.Errorf("unable to load the settings: %v", err)
		return err
	}

	httpClient := &http.Client{Timeout: settings.Timeout}
	source, err := auth.NewTokenSource(ctx, settings, httpClient)
	if err != nil {
		reporter.Errorf("unable to build API credentials: %v", err)
		return err
	}
	if _, err := source.Token(); err != nil {
		reporter.Errorf("unable to obtain an API token: %v", err)
		return err
	}

	client := zoom.NewClient(source, zoom.WithBaseURL(settings.BaseURL), zoom.WithTimeout(settings.Timeout))
	resolver := identity.NewDirectoryResolver(client, settings.EmailDomain, logger)
	handler := actions.NewHandler(client, resolver, reporter,
		actions.WithListingOutput(stdout),
		actions.WithPageSize(settings.PageSize),
	)
	runner := batch.NewRunner(handler, reporter, logger)

	sum, err := runner.RunFiles(ctx, opts.inFile, opts.outFile)
	if err != nil {
		if errors.Is(err, batch.ErrFileAccess) {
			reporter.Errorf("Unable to open input/output file!")
			logger.Error("file access failed", zap.Error(err))
		} else {
			reporter.Errorf("batch run failed: %v", err)
		}
		return err
	}

	reporter.Infof("run %s processed %d action(s): %d succeeded, %d failed", runID, sum.Total, sum.Succeeded, sum.Failed)
	return nil
}
