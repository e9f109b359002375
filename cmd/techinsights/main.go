// Command techinsights builds the Tech Insights static site.
//
// Usage:
//
//	techinsights                 Fetch feeds and write the site (same as build)
//	techinsights build           Fetch feeds and write the site
//	techinsights weeks           List archived weeks
//	techinsights config          Print the effective configuration
//	techinsights version         Print version information
package main

import (
	"os"

	"github.com/abelbrown/techinsights/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command line and returns the process exit code.
// Cobra's own error printing is silenced, so every failure is logged here.
func run(args []string) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		logging.Error("techinsights failed", "err", err)
		return 1
	}
	return 0
}
