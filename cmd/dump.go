package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	log4go "github.com/ccpaging/log4go"

	"github.com/iParadigms/crawlsched"
)

// dumpOut is the path dump writes its CSV to, defaulting to
// crawlsched-dump.csv in the current directory.
var dumpOut string

// dumpSeeds lets dump be exercised standalone (without a live run) by
// seeding the scheduler it dumps from, mainly useful for smoke-testing the
// CSV format end to end.
var dumpSeeds []string

var dumpCommand = &cobra.Command{
	Use:   "dump",
	Short: "write a scheduler's CSV debug dump to disk",
	Run: func(c *cobra.Command, args []string) {
		initCommand()
		sched := crawlsched.NewBalancedScheduler(crawlsched.Config.Scheduler.Eps, crawlsched.Config.Scheduler.BalancingTemperature)
		for i, u := range dumpSeeds {
			slot, err := slotForURL(u)
			if err != nil {
				fatalf("failed to derive a slot for seed %v: %v", u, err)
			}
			// Spread seeds across a descending priority so the dump output
			// exercises more than a single priority value.
			score := 1.0 - float64(i)*0.01
			if err := sched.Push(crawlsched.NewRequest(u, slot, score)); err != nil {
				fatalf("failed to seed %v: %v", u, err)
			}
		}
		if err := writeDump(sched, dumpOut); err != nil {
			fatalf("dump failed: %v", err)
		}
		log4go.Info("dump: wrote %v", dumpOut)
	},
}

func init() {
	dumpCommand.Flags().StringVarP(&dumpOut, "out", "o", "crawlsched-dump.csv", "path to write the CSV dump to")
	dumpCommand.Flags().StringArrayVarP(&dumpSeeds, "url", "u", nil, "a URL to seed before dumping (repeatable)")
}

// writeDump creates path's parent directory if needed and writes sched's
// CSV debug dump to it, grounded on the teacher's simplehandler file-
// writing idiom (os.MkdirAll followed by os.Create).
func writeDump(sched *crawlsched.BalancedScheduler, path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return sched.DebugDump(f)
}
