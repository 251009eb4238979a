package am

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/teranos/qntx-dims/am/geotime"
	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/locale"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("parse.locale", locale.Default.String())
	v.SetDefault("parse.timezone", "UTC")
	v.SetDefault("parse.dims", []string{})
	v.SetDefault("parse.with_latent", false)
	v.SetDefault("parse.max_alternatives", dimension.DefaultMaxAlternatives)
	v.SetDefault("parse.max_rounds", DefaultMaxRounds)

	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.rate_per_second", 20.0)
	v.SetDefault("server.burst", 40)
	v.SetDefault("server.cache_ttl_seconds", 60)
	v.SetDefault("server.cache_size_hint", 1024)
	v.SetDefault("server.allowed_origins", []string{})

	v.SetDefault("log.json", false)
}

// BindEnvVars binds settings whose environment names do not follow the
// QNTX_DIMS_<SECTION>_<KEY> pattern
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("parse.timezone", "QNTX_DIMS_PARSE_TIMEZONE", "QNTX_DIMS_TZ")
	v.BindEnv("parse.locale", "QNTX_DIMS_PARSE_LOCALE", "QNTX_DIMS_LOCALE")
	v.BindEnv("server.port", "QNTX_DIMS_SERVER_PORT", "QNTX_DIMS_PORT")
}

// GetServerPort returns the configured port, DefaultServerPort when unset
func (c *Config) GetServerPort() int {
	if c.Server.Port == nil {
		return DefaultServerPort
	}
	return *c.Server.Port
}

// GetLocale parses parse.locale
func (c *Config) GetLocale() (locale.Locale, error) {
	return locale.Parse(c.Parse.Locale)
}

// GetLocation resolves parse.timezone
func (c *Config) GetLocation() (*time.Location, error) {
	return geotime.Load(c.Parse.Timezone)
}

// GetDims parses parse.dims; empty means every dimension
func (c *Config) GetDims() ([]dimension.Kind, error) {
	if len(c.Parse.Dims) == 0 {
		return dimension.AllKinds(), nil
	}
	return dimension.ParseKinds(c.Parse.Dims)
}

// GetOptions returns the resolution options of parse
func (c *Config) GetOptions() dimension.Options {
	return dimension.Options{
		WithLatent:      c.Parse.WithLatent,
		MaxAlternatives: c.Parse.MaxAlternatives,
	}
}

// GetCacheTTL returns the response cache lifetime; zero disables the cache
func (c *Config) GetCacheTTL() time.Duration {
	return time.Duration(c.Server.CacheTTLSeconds) * time.Second
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Parse: {Locale: %s, Timezone: %s}, Server: {Port: %d}}",
		c.Parse.Locale, c.Parse.Timezone, c.GetServerPort())
}
