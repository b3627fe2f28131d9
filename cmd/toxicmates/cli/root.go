package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose    bool
	jsonOutput bool
	dbPath     string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "toxicmates",
	Short: "In-memory social network playground",
	Long: `TOXIC Mates keeps members, friendships, interests, an activity feed and
mailboxes in memory. Explore it from the interactive shell, replay scripted
scenarios, or time the member registry with the benchmark.`,
	SilenceUsage: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	RootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Log as JSON")
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Settings database (default ~/.toxicmates/settings.db)")
}
