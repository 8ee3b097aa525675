package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bskyreport/internal/web"
	"bskyreport/pkg/bluesky"
	"bskyreport/pkg/logger"
)

var (
	// Serve command flags
	serveAddr  string
	serveLimit int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web front end",
	Long: `Start an HTTP server with a search form, rendered HTML reports, a JSON
API endpoint at /api/report/{handle}, and an engagement chart at /chart.`,
	Example: `  bskyreport serve
  bskyreport serve --addr :9090 --limit 25`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8080)")
	serveCmd.Flags().IntVar(&serveLimit, "limit", 0, "default number of posts per report (default 50)")
}

func runServe(cmd *cobra.Command, args []string) {
	flags := globalFlagOverrides(cmd)
	if serveAddr != "" {
		flags["addr"] = serveAddr
	}

	cfg := loadConfig(flags)
	if serveLimit > 0 {
		cfg.Server.DefaultLimit = serveLimit
	}

	log := logger.GetLogger()
	client := bluesky.NewClient(&cfg.API, log)

	server, err := web.NewServer(cfg, client, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create server: %v\n", err)
		os.Exit(1)
	}

	if err := server.Start(); err != nil {
		log.WithError(err).Error("web server stopped")
		os.Exit(1)
	}
}
