package main

import (
	"strings"

	"github.com/sl4desec/subpeek/internal/config"
	"github.com/spf13/pflag"
)

// options holds raw flag values. Only flags the user actually set
// override the configuration file.
type options struct {
	configPath      string
	dnsConcurrency  int
	httpConcurrency int
	timeoutSecs     int
	resolvers       []string
	sources         []string
	noWildcard      bool
	logLevel        string
	logFormat       string
	parquetPath     string
	sqlitePath      string
	noProgress      bool
}

func (o *options) register(flags *pflag.FlagSet) {
	flags.StringVarP(&o.configPath, "config", "c", "", "Path to a YAML/JSON config file (default: $"+config.ConfigPathEnv+", ./config.yaml, ./config.json)")
	flags.IntVar(&o.dnsConcurrency, "dns-concurrency", config.DefaultResolverConcurrency, "Maximum DNS lookups in flight")
	flags.IntVar(&o.httpConcurrency, "http-concurrency", config.DefaultProberConcurrency, "Maximum HTTP probes in flight")
	flags.IntVar(&o.timeoutSecs, "timeout", config.DefaultProberTimeoutSecs, "HTTP probe timeout in seconds")
	flags.StringSliceVar(&o.resolvers, "resolvers", nil, "Comma-separated DNS servers (host or host:port)")
	flags.StringSliceVar(&o.sources, "sources", nil, "Comma-separated passive sources to query")
	flags.BoolVar(&o.noWildcard, "no-wildcard", false, "Skip wildcard DNS detection and filtering")
	flags.StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&o.logFormat, "log-format", "", "Log format (console, json, text)")
	flags.StringVar(&o.parquetPath, "parquet", "", "Also write results to this Parquet file")
	flags.StringVar(&o.sqlitePath, "sqlite", "", "Also write results to this SQLite database")
	flags.BoolVar(&o.noProgress, "no-progress", false, "Disable periodic progress lines")
}

func (o *options) apply(flags *pflag.FlagSet, cfg *config.GlobalConfig) {
	if flags.Changed("dns-concurrency") {
		cfg.ResolverConfig.Concurrency = o.dnsConcurrency
	}
	if flags.Changed("http-concurrency") {
		cfg.ProberConfig.Concurrency = o.httpConcurrency
	}
	if flags.Changed("timeout") {
		cfg.ProberConfig.TimeoutSecs = o.timeoutSecs
	}
	if flags.Changed("resolvers") {
		cfg.ResolverConfig.Nameservers = compact(o.resolvers)
	}
	if flags.Changed("sources") {
		cfg.DiscoveryConfig.Sources = compact(o.sources)
	}
	if o.noWildcard {
		cfg.WildcardConfig.Enabled = false
	}
	if o.logLevel != "" {
		cfg.LogConfig.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		cfg.LogConfig.LogFormat = o.logFormat
	}
	if o.parquetPath != "" {
		cfg.ExportConfig.ParquetPath = o.parquetPath
	}
	if o.sqlitePath != "" {
		cfg.ExportConfig.SQLitePath = o.sqlitePath
	}
	if o.noProgress {
		cfg.ProgressConfig.EnableProgress = false
	}
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// normalizeDomain trims, lowercases and drops one trailing dot.
func normalizeDomain(raw string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(raw)), ".")
}
