package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-r remote record-store base URL
//	-d local database DSN
//	-request-timeout outbound request timeout (e.g., "30s", "1m")
//	-sync-interval periodic full sync interval (e.g., "5m")
//	-log-level minimum log severity
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var remoteBaseURL string
	var databaseDSN string
	var requestTimeout time.Duration
	var syncInterval time.Duration
	var logLevel string
	var jsonConfigPath string

	flag.StringVar(&remoteBaseURL, "r", "", "Remote record-store base URL")
	flag.StringVar(&databaseDSN, "d", "", "Local database DSN")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Periodic sync interval (e.g., 5m)")
	flag.StringVar(&logLevel, "log-level", "", "Minimum log severity")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			LogLevel: logLevel,
		},
		Remote: Remote{
			BaseURL:        remoteBaseURL,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Sync: Sync{
			Interval: syncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
