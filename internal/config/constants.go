package config

const (
	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Discovery Defaults
	DefaultSourceTimeoutSecs = 15
	DefaultSourceUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) SubPeek/2.0"

	// Resolver Defaults
	DefaultResolverConcurrency      = 200
	DefaultResolverTimeoutSecs      = 5
	DefaultResolverQueriesPerSecond = 0

	// Prober Defaults
	DefaultProberConcurrency  = 50
	DefaultProberTimeoutSecs  = 8
	DefaultProberMaxRedirects = 3
	DefaultProberMaxBodyBytes = 10 * 1024 * 1024

	// Wildcard Defaults
	DefaultWildcardLabelPrefix     = "wildcard-test"
	DefaultWildcardLengthTolerance = 50

	// Export Defaults
	DefaultExportCompressionCodec = "zstd"

	// Progress Defaults
	DefaultProgressDisplayIntervalSecs = 3

	// Resource Limiter Defaults
	DefaultResourceCheckIntervalSecs  = 10
	DefaultResourceMaxMemoryMB        = 1024
	DefaultResourceMaxGoroutines      = 10000
	DefaultResourceSystemMemThreshold = 0.9

	// ConfigPathEnv overrides the config file location when no flag is given.
	ConfigPathEnv = "SUBPEEK_CONFIG_PATH"
)

// DefaultSources lists the passive sources queried when none are configured.
var DefaultSources = []string{
	"crtsh",
	"anubis",
	"hackertarget",
	"sublist3r",
	"alienvault",
	"certspotter",
	"rapiddns",
}

// DefaultNameservers mirrors the public Google resolvers.
var DefaultNameservers = []string{
	"8.8.8.8:53",
	"8.8.4.4:53",
}

// DefaultProbeSchemes is the scheme priority for HTTP probing.
var DefaultProbeSchemes = []string{"https", "http"}

// DefaultWordlist holds the well-known labels always added to the candidate set.
var DefaultWordlist = []string{
	"www",
	"mail",
	"remote",
	"blog",
	"webmail",
	"server",
	"ns1",
	"ns2",
	"smtp",
	"secure",
	"vpn",
	"m",
	"shop",
	"ftp",
	"mail2",
	"test",
	"portal",
	"ns",
	"ww1",
	"host",
	"dev",
	"support",
	"admin",
	"web",
	"api",
	"cloud",
	"data",
	"app",
	"autodiscover",
	"autoconfig",
}
