// Package config defines the server configuration structure.
package config

// Default configuration values.
const (
	DefaultHTTPAddr = "127.0.0.1:8642"

	DefaultInitialSize   = 1009
	DefaultMaxLoadFactor = 0.5
	DefaultGrowthFactor  = 2.0
	DefaultPolicy        = "mark"
	DefaultHash          = "murmur3"
	DefaultMaxKeyLen     = 31

	DefaultRatePerSecond = 0.0
	DefaultBurst         = 100

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr: DefaultHTTPAddr,
			},
		},
		Table: TableSection{
			InitialSize:   DefaultInitialSize,
			MaxLoadFactor: DefaultMaxLoadFactor,
			GrowthFactor:  DefaultGrowthFactor,
			Policy:        DefaultPolicy,
			Hash:          DefaultHash,
			MaxKeyLen:     DefaultMaxKeyLen,
		},
		Limits: LimitsSection{
			RatePerSecond: DefaultRatePerSecond,
			Burst:         DefaultBurst,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
