package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bskyreport/pkg/bluesky"
	"bskyreport/pkg/logger"
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <handle>",
	Short: "Resolve a Bluesky handle to a DID",
	Long: `Look up a Bluesky handle and print the account's DID along with its
display name and follower statistics.

A leading "@" is stripped and a bare username without a domain gets
".bsky.social" appended.`,
	Example: `  bskyreport resolve alice.bsky.social
  bskyreport resolve @alice
  bskyreport resolve bsky.app`,
	Args: cobra.ExactArgs(1),
	Run:  runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) {
	handle := bluesky.NormalizeActor(strings.TrimSpace(args[0]))
	if handle == "" {
		fmt.Fprintln(os.Stderr, "Error: handle must not be empty")
		os.Exit(1)
	}

	cfg := loadConfig(globalFlagOverrides(cmd))

	client := bluesky.NewClient(&cfg.API, logger.GetLogger())

	profile, err := client.FetchProfile(handle)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Handle: %s\n", profile.Handle)
	fmt.Printf("DID: %s\n", profile.DID)
	if profile.DisplayName != "" {
		fmt.Printf("Display Name: %s\n", profile.DisplayName)
	}
	fmt.Printf("Stats: %d followers, %d following, %d posts\n",
		profile.FollowersCount, profile.FollowsCount, profile.PostsCount)
}
