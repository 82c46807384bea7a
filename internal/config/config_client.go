package config

import (
	"fmt"
	"time"
)

// Defaults applied by [GetClientConfig] when the merged config leaves a
// duration unset.
const (
	defaultRequestTimeout = 30 * time.Second
	defaultSyncInterval   = 5 * time.Minute
)

// ClientApp holds application-level client settings.
type ClientApp struct {
	// LogLevel is the minimum severity emitted by the structured logger.
	LogLevel string
	// Version is the running application version.
	Version string
}

// ClientRemote holds network settings used by the client transport layer.
type ClientRemote struct {
	// BaseURL is the record-store API root used by the client.
	BaseURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientSync contains background synchronization settings.
type ClientSync struct {
	// Interval defines how often the periodic full sync runs.
	Interval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Remote contains the record-store endpoint and timeouts.
	Remote ClientRemote
	// Storage contains client storage settings.
	Storage ClientStorage
	// Sync contains background job settings.
	Sync ClientSync
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, fills in duration defaults, and validates
// the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			LogLevel: cfg.App.LogLevel,
			Version:  cfg.App.Version,
		},
		Remote: ClientRemote{
			BaseURL:        cfg.Remote.BaseURL,
			RequestTimeout: cfg.Remote.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Sync: ClientSync{Interval: cfg.Sync.Interval},
	}

	if clientCfg.Remote.RequestTimeout == 0 {
		clientCfg.Remote.RequestTimeout = defaultRequestTimeout
	}
	if clientCfg.Sync.Interval == 0 {
		clientCfg.Sync.Interval = defaultSyncInterval
	}

	return clientCfg, clientCfg.validate()
}
