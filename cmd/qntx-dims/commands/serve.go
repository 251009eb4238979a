package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/qntx-dims/am"
	"github.com/teranos/qntx-dims/errors"
	"github.com/teranos/qntx-dims/logger"
	"github.com/teranos/qntx-dims/server"
)

// ServeCmd starts the HTTP and WebSocket API
var ServeCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "Start the extraction API server",
	Long: `Serve extraction over HTTP (POST /api/parse) and WebSocket (/ws/parse).

Config files in effect are watched: edits to locale, dims, rate limits or
cache settings apply without a restart. The listen port is fixed at start.`,
	RunE: runServe,
}

var (
	servePort    int
	serveNoWatch bool
)

func init() {
	ServeCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Listen port (overrides config)")
	ServeCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "Do not reload when config files change")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Default to Info for the server
	verbosity, _ := cmd.Flags().GetCount("verbose")
	if verbosity == 0 {
		verbosity = 1
		logger.SetVerbosity(verbosity)
	}

	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if servePort != 0 {
		port := servePort
		cfg.Server.Port = &port
	}

	srv, err := server.New(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to create server")
	}

	var watched []string
	if !serveNoWatch {
		for _, path := range am.ConfigFiles() {
			watcher, err := am.NewConfigWatcher(path)
			if err != nil {
				pterm.Warning.Printfln("Not watching %s: %v", path, err)
				continue
			}
			watcher.OnReload(func(next *am.Config) error {
				next.Server.Port = cfg.Server.Port
				return srv.Reload(next)
			})
			watcher.Start()
			defer watcher.Stop()
			am.SetGlobalWatcher(watcher)
			watched = append(watched, path)
		}
	}

	printStartupBanner(verbosity, cfg, watched)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		return errors.Wrap(err, "server failed")
	}
	pterm.Success.Println("Server stopped cleanly")
	return nil
}
