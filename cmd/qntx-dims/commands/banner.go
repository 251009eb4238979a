package commands

import (
	"fmt"
	"strings"

	"github.com/teranos/qntx-dims/am"
	"github.com/teranos/qntx-dims/logger"
	"github.com/teranos/qntx-dims/version"
)

// printStartupBanner prints the user-friendly startup message
func printStartupBanner(verbosity int, cfg *am.Config, watched []string) {
	cyan := "\033[36m"
	green := "\033[32m"
	yellow := "\033[33m"
	bold := "\033[1m"
	reset := "\033[0m"

	versionInfo := version.Get()
	port := cfg.GetServerPort()
	dims := "all"
	if len(cfg.Parse.Dims) > 0 {
		dims = strings.Join(cfg.Parse.Dims, ", ")
	}

	fmt.Printf("\n%s%s   ┌─ qntx-dims ───────────────────────────────────────┐%s\n", cyan, bold, reset)
	fmt.Printf("%s│%s Version:   %s (commit %s)\n", green, reset, versionInfo.Version, versionInfo.Short())
	fmt.Printf("%s│%s Verbosity: %s\n", green, reset, logger.LevelName(verbosity))
	fmt.Printf("%s│%s Locale:    %s (%s)\n", green, reset, cfg.Parse.Locale, cfg.Parse.Timezone)
	fmt.Printf("%s│%s Dims:      %s\n", green, reset, dims)
	if cfg.Server.RatePerSecond > 0 {
		fmt.Printf("%s│%s Rate:      %.0f/s (burst %d)\n", green, reset, cfg.Server.RatePerSecond, cfg.Server.Burst)
	}
	for _, path := range watched {
		fmt.Printf("%s│%s Watching:  %s\n", green, reset, path)
	}
	fmt.Printf("%s└─────────────────────────────────────────────────────┘%s\n", green, reset)

	fmt.Printf("\n%s%s✨ POST http://localhost:%d/api/parse  ·  ws://localhost:%d/ws/parse%s\n", yellow, bold, port, port, reset)
	fmt.Printf("%s💡 Press Ctrl+C to stop%s\n\n", cyan, reset)
}
