/*
Package cmd provides the crawlsched command line tool.

This package makes it easy to build custom crawlsched binaries that supply
their own Goal, LinkExtractor, or Fetcher. A binary that is happy with the
defaults requires simply:

	func main() {
		cmd.Execute()
	}

To supply a custom goal and link extractor:

	func main() {
		cmd.Goal(myGoal)
		cmd.LinkExtractor(myExtractor)
		cmd.Execute()
	}

cmd.Execute() blocks until the program completes, usually via SIGINT.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iParadigms/crawlsched"
	"github.com/iParadigms/crawlsched/goal"
)

// Goal sets the global Goal policy this process will use to score
// responses and decide when a domain is done.
func Goal(g goal.Goal) {
	commander.Goal = g
}

// LinkExtractor sets the global link extractor this process will use to
// pull outbound links from a fetched response.
func LinkExtractor(le crawlsched.LinkExtractor) {
	commander.LinkExtractor = le
}

// Fetcher sets the global Fetcher this process will use to retrieve a
// Request's URL. Fetching itself is out of scope for crawlsched's core;
// this is the seam a real binary plugs its HTTP (or other transport)
// client into.
func Fetcher(f crawlsched.Fetcher) {
	commander.Fetcher = f
}

// Execute runs the command specified on the command line.
func Execute() {
	commander.Execute()
}

var commander struct {
	*cobra.Command
	Goal          goal.Goal
	LinkExtractor crawlsched.LinkExtractor
	Fetcher       crawlsched.Fetcher
}

// config is the path to a config file, set by the --config/-c flag shared
// across every subcommand.
var config string

func initCommand() {
	if config != "" {
		if err := crawlsched.ReadConfigFile(config); err != nil {
			fatalf("failed to read config file %v: %v", config, err)
		}
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(1)
}

func init() {
	root := &cobra.Command{
		Use:   "crawlsched",
		Short: "drive a BalancedScheduler-based crawl",
	}
	root.PersistentFlags().StringVarP(&config, "config", "c", "", "path to a config file to load")

	root.AddCommand(runCommand)
	root.AddCommand(serveCommand)
	root.AddCommand(dumpCommand)

	commander.Command = root
}
