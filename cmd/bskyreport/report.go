package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"bskyreport/pkg/bluesky"
	"bskyreport/pkg/config"
	"bskyreport/pkg/logger"
	"bskyreport/pkg/report"
)

var (
	// Report command flags
	outputFormat string
	postLimit    int
	outputFile   string
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <did>",
	Short: "Generate a post summary report for a Bluesky user",
	Long: `Fetch recent posts for the user identified by the given DID and emit
a summary report.

Handle resolution failure is not fatal; the report falls back to an
"Unknown" handle placeholder and omits post URLs. A feed fetch failure
mid-pagination yields a partial report rather than an error.`,
	Example: `  # JSON report to stdout
  bskyreport report did:plc:z72i7hdynmk6r22z27h6tvur

  # CSV report for the 50 most recent posts, written to a file
  bskyreport report did:plc:z72i7hdynmk6r22z27h6tvur --format csv --limit 50 --output report.csv`,
	Args: cobra.ExactArgs(1),
	Run:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	addReportFlags(reportCmd)
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json or csv)")
	cmd.Flags().IntVarP(&postLimit, "limit", "l", 100, "maximum number of posts to fetch")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file path (default: stdout)")
}

// reportFlagOverrides collects only the flags the user explicitly set, so
// environment variables and config files keep their say for the rest.
func reportFlagOverrides(cmd *cobra.Command) map[string]interface{} {
	flags := globalFlagOverrides(cmd)
	if cmd.Flags().Changed("format") {
		flags["format"] = outputFormat
	}
	if cmd.Flags().Changed("limit") {
		flags["limit"] = postLimit
	}
	return flags
}

func runReport(cmd *cobra.Command, args []string) {
	did := strings.TrimSpace(args[0])

	if !bluesky.IsDID(did) {
		fmt.Fprintln(os.Stderr, "Error: DID must start with 'did:' (e.g., did:plc:...)")
		fmt.Fprintln(os.Stderr, "\nTip: use 'bskyreport resolve <handle>' to look up a user's DID")
		os.Exit(1)
	}

	if cmd.Flags().Changed("limit") && postLimit <= 0 {
		fmt.Fprintln(os.Stderr, "Error: limit must be a positive integer")
		os.Exit(1)
	}

	cfg := loadConfig(reportFlagOverrides(cmd))

	formatter, err := report.NewFormatter(cfg.Report.DefaultFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logger.GetLogger()
	client := bluesky.NewClient(&cfg.API, log)

	// Handle resolution is best-effort here; the DID is what drives the fetch
	handle := report.UnknownHandle
	if profile, err := client.FetchProfile(did); err == nil {
		handle = profile.Handle
	} else {
		log.WithError(err).Warn("could not resolve handle")
	}

	log.WithField("did", did).Info("fetching posts")
	entries := client.FetchAuthorPosts(did, cfg.Report.DefaultLimit)

	rep := report.Build(did, handle, entries, time.Now())

	out := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := formatter.Format(out, rep); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write report: %v\n", err)
		os.Exit(1)
	}

	if outputFile != "" {
		log.WithField("path", outputFile).Info("report saved")
	}
}

// loadConfig loads configuration and initializes the global logger,
// exiting on failure.
func loadConfig(flags map[string]interface{}) *config.Config {
	cfg, err := config.Load(configFile, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	return cfg
}
