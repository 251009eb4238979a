// Package am holds the qntx-dims configuration: parse defaults, the HTTP
// server and logging. Values merge from built-in defaults, TOML files and
// QNTX_DIMS_* environment variables.
package am

// Config represents the qntx-dims configuration
type Config struct {
	Parse  ParseConfig  `mapstructure:"parse" toml:"parse" json:"parse" yaml:"parse"`
	Server ServerConfig `mapstructure:"server" toml:"server" json:"server" yaml:"server"`
	Log    LogConfig    `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// ParseConfig holds the defaults applied to parse requests that leave a
// field unset
type ParseConfig struct {
	Locale          string   `mapstructure:"locale" toml:"locale" json:"locale" yaml:"locale"`                                         // e.g. "en_US", "en_GB"
	Timezone        string   `mapstructure:"timezone" toml:"timezone" json:"timezone" yaml:"timezone"`                                 // IANA name, abbreviation or offset
	Dims            []string `mapstructure:"dims" toml:"dims" json:"dims" yaml:"dims"`                                                 // empty = every dimension
	WithLatent      bool     `mapstructure:"with_latent" toml:"with_latent" json:"with_latent" yaml:"with_latent"`                     // admit latent readings
	MaxAlternatives int      `mapstructure:"max_alternatives" toml:"max_alternatives" json:"max_alternatives" yaml:"max_alternatives"` // extra occurrences for ambiguous times; negative = none
	MaxRounds       int      `mapstructure:"max_rounds" toml:"max_rounds" json:"max_rounds" yaml:"max_rounds"`                         // derivation round cap (default: 64)
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Port            *int     `mapstructure:"port" toml:"port,omitempty" json:"port,omitempty" yaml:"port,omitempty"`                       // nil = DefaultServerPort, 0 is invalid
	RatePerSecond   float64  `mapstructure:"rate_per_second" toml:"rate_per_second" json:"rate_per_second" yaml:"rate_per_second"`         // 0 = unlimited
	Burst           int      `mapstructure:"burst" toml:"burst" json:"burst" yaml:"burst"`                                                 // limiter burst
	CacheTTLSeconds int      `mapstructure:"cache_ttl_seconds" toml:"cache_ttl_seconds" json:"cache_ttl_seconds" yaml:"cache_ttl_seconds"` // 0 = no response cache
	CacheSizeHint   int      `mapstructure:"cache_size_hint" toml:"cache_size_hint" json:"cache_size_hint" yaml:"cache_size_hint"`         // initial cache capacity
	AllowedOrigins  []string `mapstructure:"allowed_origins" toml:"allowed_origins" json:"allowed_origins" yaml:"allowed_origins"`         // websocket origins; empty = same host only
}

// LogConfig configures zap output
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"` // production JSON encoder instead of the console encoder
}

// Server constants
const (
	DefaultServerPort = 8787
	DefaultMaxRounds  = 64
)

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)
