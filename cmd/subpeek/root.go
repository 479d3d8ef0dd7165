package main

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/sl4desec/subpeek/internal/config"
	"github.com/sl4desec/subpeek/internal/datastore"
	"github.com/sl4desec/subpeek/internal/logger"
	"github.com/sl4desec/subpeek/internal/orchestrator"
	"github.com/sl4desec/subpeek/internal/progress"
	"github.com/sl4desec/subpeek/internal/reporter"
	"github.com/sl4desec/subpeek/internal/rslimiter"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type cli struct {
	opts   options
	stdout io.Writer
	stderr io.Writer
}

func newCLI(stdout, stderr io.Writer) *cli {
	return &cli{stdout: stdout, stderr: stderr}
}

func (c *cli) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "subpeek <domain>",
		Short: "Passive subdomain discovery with DNS and HTTP verification",
		Long: `subpeek aggregates subdomains of a domain from passive sources, keeps the
ones that resolve, fingerprints each over HTTP and drops wildcard DNS look-alikes.

Results are printed to stdout as a JSON array; logs go to stderr.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE:          c.run,
	}
	root.SetOut(c.stderr)
	root.SetErr(c.stderr)
	c.opts.register(root.Flags())

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(c.stdout, "subpeek version %s\n", version)
		},
	})

	return root
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	ctx := cmd.Context()
	domain := normalizeDomain(args[0])

	cfg, err := config.LoadGlobalConfig(c.opts.configPath, zerolog.Nop())
	if err != nil {
		return err
	}
	c.opts.apply(cmd.Flags(), cfg)
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	log, err := logger.NewLoggerBuilder().WithConfig(cfg.LogConfig).WithConsole(c.stderr).Build()
	if err != nil {
		return fmt.Errorf("could not initialize logger: %w", err)
	}

	orch, err := orchestrator.NewFromConfig(cfg, log)
	if err != nil {
		return err
	}

	limiter := rslimiter.NewResourceLimiter(cfg.ResourceLimiterConfig, log)
	limiter.Start()
	defer limiter.Stop()

	pdm := progress.NewProgressDisplayManager(log, &progress.ProgressDisplayConfig{
		DisplayInterval:   cfg.ProgressConfig.GetDisplayIntervalDuration(),
		EnableProgress:    cfg.ProgressConfig.EnableProgress,
		ShowETAEstimation: true,
	})
	pdm.Start()

	scanTime := time.Now()
	results, summary, err := orch.WithProgress(pdm).Run(ctx, domain)
	pdm.Stop()
	if err != nil {
		return err
	}

	if err := reporter.WriteJSON(c.stdout, results); err != nil {
		return err
	}
	reporter.NewSummaryPrinter(c.stderr).Print(summary)

	exporter := datastore.NewExporter(cfg.ExportConfig, log)
	if exporter.Enabled() {
		// Export failures are logged by the exporter and never change the exit status.
		_ = exporter.Export(ctx, domain, results, scanTime)
	}

	return nil
}
