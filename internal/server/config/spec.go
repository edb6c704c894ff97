// Package config defines the server configuration structure.
package config

// ServerConfig is the root configuration for oatable-server.
type ServerConfig struct {
	Server ServerSection `koanf:"server"`
	Table  TableSection  `koanf:"table"`
	Limits LimitsSection `koanf:"limits"`
	Log    LogSection    `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	HTTP HTTPConfig `koanf:"http"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr        string `koanf:"addr"`
	TLSCertFile string `koanf:"tls_cert_file"`
	TLSKeyFile  string `koanf:"tls_key_file"`
}

// TableSection configures the hash table backing the key store.
type TableSection struct {
	// InitialSize is the requested capacity. It is rounded up to the
	// next prime at startup.
	InitialSize int `koanf:"initial_size"`

	// MaxLoadFactor triggers growth when count/size reaches it.
	// Must be in (0, 1].
	MaxLoadFactor float64 `koanf:"max_load_factor"`

	// GrowthFactor scales the table size on expansion. Must be > 1.
	GrowthFactor float64 `koanf:"growth_factor"`

	// Policy selects the deletion strategy: "mark" or "pack".
	Policy string `koanf:"policy"`

	// Hash selects the hash function pair: "murmur3", "xxhash",
	// "blake2b" or "fnv".
	Hash string `koanf:"hash"`

	// Seed salts the hash functions. Keeping it private hardens the
	// table against collision flooding. Decimal or 0x-prefixed hex.
	Seed string `koanf:"seed"`

	// MaxKeyLen is the longest accepted key, in bytes.
	MaxKeyLen int `koanf:"max_key_len"`
}

// LimitsSection configures request throttling.
type LimitsSection struct {
	// RatePerSecond is the sustained per-client request rate.
	// Zero disables throttling.
	RatePerSecond float64 `koanf:"rate_per_second"`

	// Burst is the per-client burst allowance.
	Burst int `koanf:"burst"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
