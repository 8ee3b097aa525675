package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bskyreport",
	Short: "Generate summary reports of a Bluesky user's posts",
	Long: `bskyreport fetches recent posts from a Bluesky user via the public
read API and generates a summary report in JSON or CSV format.

It can also resolve a handle to its DID and run a small web front end
for browsing reports in the browser.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is $HOME/.bskyreport.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.SetVersionTemplate(`bskyreport {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// globalFlagOverrides collects root-level flag values that were explicitly
// set on the command line. Persistent flags are merged into the command's
// flag set during execution, so Changed sees them.
func globalFlagOverrides(cmd *cobra.Command) map[string]interface{} {
	flags := map[string]interface{}{}
	if cmd.Flags().Changed("log-level") {
		flags["log-level"] = logLevel
	}
	return flags
}
