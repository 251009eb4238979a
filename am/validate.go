package am

import (
	"github.com/teranos/qntx-dims/am/geotime"
	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/errors"
	"github.com/teranos/qntx-dims/locale"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := locale.Parse(c.Parse.Locale); err != nil {
		return errors.Wrap(err, "parse.locale")
	}
	if _, err := geotime.Load(c.Parse.Timezone); err != nil {
		return errors.Wrap(err, "parse.timezone")
	}
	if _, err := dimension.ParseKinds(c.Parse.Dims); err != nil {
		return errors.Wrap(err, "parse.dims")
	}
	// max_alternatives: 0 = default, negative = none, so any value is valid
	if c.Parse.MaxRounds < 0 {
		return errors.Newf("parse.max_rounds must be >= 0, got %d", c.Parse.MaxRounds)
	}

	if c.Server.Port != nil && *c.Server.Port == 0 {
		return errors.Newf("server.port cannot be 0 (omit for default port %d)", DefaultServerPort)
	}
	if c.Server.Port != nil && (*c.Server.Port < 0 || *c.Server.Port > 65535) {
		return errors.Newf("server.port must be in 1..65535, got %d", *c.Server.Port)
	}
	if c.Server.RatePerSecond < 0 {
		return errors.Newf("server.rate_per_second must be >= 0, got %f", c.Server.RatePerSecond)
	}
	if c.Server.RatePerSecond > 0 && c.Server.Burst <= 0 {
		return errors.Newf("server.burst must be > 0 when rate limiting, got %d", c.Server.Burst)
	}
	if c.Server.CacheTTLSeconds < 0 {
		return errors.Newf("server.cache_ttl_seconds must be >= 0, got %d", c.Server.CacheTTLSeconds)
	}
	if c.Server.CacheSizeHint < 0 {
		return errors.Newf("server.cache_size_hint must be >= 0, got %d", c.Server.CacheSizeHint)
	}
	return nil
}
