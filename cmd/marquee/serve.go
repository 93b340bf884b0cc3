package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marquee-dev/marquee"
	"github.com/marquee-dev/marquee/internal/config"
	"github.com/marquee-dev/marquee/pkg/site"
)

func serveCmd() *cobra.Command {
	var (
		addr       string
		staticDir  string
		dev        bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site",
		Long: `Serve the site over HTTP.

Pages are rendered server-side; connected browsers get their behavior
over a WebSocket session. Settings come from marquee.json when one
exists in the working directory or a parent; flags override it.

Examples:
  marquee serve
  marquee serve --addr=:3000
  marquee serve --static=public --dev`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, staticDir, dev, configPath)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from marquee.json)")
	cmd.Flags().StringVarP(&staticDir, "static", "s", "", "Static files directory")
	cmd.Flags().BoolVar(&dev, "dev", false, "Development mode: relaxed origins, pretty HTML")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to marquee.json")

	return cmd
}

func runServe(addr, staticDir string, dev bool, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// Apply command-line overrides.
	if addr != "" {
		cfg.Addr = addr
	}
	if dev {
		cfg.Dev = true
	}

	// Flag paths resolve against the working directory, config paths
	// against the config file.
	staticPath := cfg.StaticDir()
	if staticDir != "" {
		staticPath = staticDir
	}
	if staticPath != "" {
		if _, err := os.Stat(staticPath); err != nil {
			warn("Static directory %s not found, serving without static files", staticPath)
			staticPath = ""
		}
	}

	durations, err := cfg.Durations()
	if err != nil {
		return err
	}

	cacheControl := marquee.CacheControlProduction
	if cfg.Dev {
		cacheControl = marquee.CacheControlNone
	}

	app, err := marquee.New(site.New(site.WithName(cfg.Name)), marquee.Config{
		Addr:        cfg.Addr,
		DevMode:     cfg.Dev,
		StyleSheets: cfg.StyleSheets,
		Static: marquee.StaticConfig{
			Dir:          staticPath,
			Prefix:       cfg.Static.Prefix,
			CacheControl: cacheControl,
		},
		Session: marquee.SessionConfig{
			ReadTimeout:       durations.ReadTimeout,
			WriteTimeout:      durations.WriteTimeout,
			IdleTimeout:       durations.IdleTimeout,
			HeartbeatInterval: durations.Heartbeat,
			MaxSessions:       durations.MaxSessions,
		},
		Metrics: marquee.MetricsConfig{Enabled: !cfg.Dev},
	})
	if err != nil {
		return err
	}

	name := cfg.Name
	if name == "" {
		name = site.DefaultName
	}

	printBanner()
	if cfg.Dev {
		fmt.Println("  dev")
	}
	fmt.Println()
	info("Serving %s on %s", name, cfg.Addr)
	fmt.Println()

	return app.Run(cfg.Addr)
}

// loadConfig loads marquee.json from an explicit path, or walks up from
// the working directory. Without an explicit path a missing file is not
// an error; defaults apply.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.LoadFromWorkingDir()
}
