package version

// Set via -ldflags at build time.
var (
	BuildVersion = "dev"
	BuildCommit  = "none"
	BuildDate    = "unknown"
	SentryDSN    = ""
)
