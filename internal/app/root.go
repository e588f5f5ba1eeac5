// Package app contains the Cobra command tree for mindpatch.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagDemo    bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "mindpatch",
	Short: "A small daily check-in for screen time, mood and screen-free habits",
	Long: `mindpatch records how you feel and how long you spent on screens each
day, suggests one concrete detox action, and tracks a screen-free habit with
streaks, XP and badges. A gratitude journal rounds out the check-in.

Run 'mindpatch' with no arguments to see today's dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDashboard,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/mindpatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flagDemo, "demo", false, "Use a generated demo history for insights")
}
