package cmd

import (
	"net/url"

	"github.com/spf13/cobra"

	log4go "github.com/ccpaging/log4go"

	"github.com/iParadigms/crawlsched"
	"github.com/iParadigms/crawlsched/console"
	"golang.org/x/net/publicsuffix"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "start only the console dashboard, against an empty scheduler",
	Run: func(c *cobra.Command, args []string) {
		initCommand()
		sched := crawlsched.NewBalancedScheduler(crawlsched.Config.Scheduler.Eps, crawlsched.Config.Scheduler.BalancingTemperature)
		serveConsole(sched)
	},
}

// serveConsole blocks serving the dashboard over sched. It is shared by
// the serve and run subcommands so the latter can start the dashboard
// alongside a live crawl.
func serveConsole(sched *crawlsched.BalancedScheduler) {
	srv := console.NewServer(sched)
	if err := srv.ListenAndServe(); err != nil {
		log4go.Error("console: %v", err)
	}
}

// slotForURL derives a scheduler slot (the registrable domain) from a raw
// seed URL, mirroring the walker Response contract's "else derived by
// taking the registrable domain of the URL" fallback from spec.md §6.
func slotForURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return publicsuffix.EffectiveTLDPlusOne(u.Hostname())
}
