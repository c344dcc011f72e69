package cmd

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	log4go "github.com/ccpaging/log4go"

	"github.com/iParadigms/crawlsched"
	"github.com/iParadigms/crawlsched/goal"
	"github.com/iParadigms/crawlsched/htmllinks"
	"github.com/iParadigms/crawlsched/linkintake"
	"github.com/iParadigms/crawlsched/semaphore"
)

// runSeeds holds the --url flags passed to run.
var runSeeds []string

// runWorkers bounds how many fetches run concurrently via the semaphore,
// mirroring the teacher's worker-count flags on its crawl command.
var runWorkers int

// runNoConsole, when set, skips starting the dashboard alongside the crawl.
var runNoConsole bool

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "seed URLs and drive a crawl through the configured Fetcher (net/http GET by default)",
	Run: func(c *cobra.Command, args []string) {
		initCommand()
		if len(runSeeds) == 0 {
			fatalf("run requires at least one --url to seed")
		}
		runCrawl()
	},
}

func init() {
	runCommand.Flags().StringArrayVarP(&runSeeds, "url", "u", nil, "a URL to seed the crawl with (repeatable)")
	runCommand.Flags().IntVarP(&runWorkers, "workers", "w", 4, "number of concurrent fetches")
	runCommand.Flags().BoolVar(&runNoConsole, "no-console", false, "do not start the dashboard")
}

// runCrawl drives a single-threaded BalancedScheduler loop (spec.md §5's
// "cooperative fetch loop") whose Pop calls happen only on this goroutine,
// fanning each popped request out to a bounded pool of fetch goroutines.
// The semaphore bounds how many fetches are in flight at once; every call
// back into the scheduler or the goal from those goroutines is wrapped in
// a mutex, the external synchronization §5 requires of a multi-threaded
// caller. Grounded on the teacher's Dispatcher/generateRoutine worker
// loop, with semaphore.Semaphore standing in for its request-count bound.
func runCrawl() {
	sched := crawlsched.NewBalancedScheduler(crawlsched.Config.Scheduler.Eps, crawlsched.Config.Scheduler.BalancingTemperature)

	g := commander.Goal
	if g == nil {
		g = goal.NewRelevancyGoal(func(res crawlsched.Response) float64 {
			if text, ok := res.Text(); ok && len(text) > 0 {
				return 1.0
			}
			return 0.0
		})
	}

	le := commander.LinkExtractor
	if le == nil {
		le = htmllinks.New()
	}
	fetcher := commander.Fetcher
	if fetcher == nil {
		fetcher = newHTTPFetcher()
	}

	intake, err := linkintake.New()
	if err != nil {
		fatalf("failed to build link intake: %v", err)
	}

	for _, u := range runSeeds {
		slot, err := slotForURL(u)
		if err != nil {
			fatalf("failed to derive a slot for seed %v: %v", u, err)
		}
		if err := sched.Push(crawlsched.NewRequest(u, slot, 1.0)); err != nil {
			fatalf("failed to seed %v: %v", u, err)
		}
	}

	if !runNoConsole {
		go serveConsole(sched)
	}

	var mu sync.Mutex

	reprioritizer := crawlsched.NewReprioritizer(sched, func(reqs []*crawlsched.Request) []int {
		out := make([]int, len(reqs))
		for i, r := range reqs {
			out[i] = r.Priority
		}
		return out
	}, 5*time.Second)
	stop := make(chan struct{})
	defer close(stop)
	// Each reprioritizing pass runs under mu, like every other scheduler
	// call made off the dispatch goroutine.
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				mu.Lock()
				reprioritizer.RunOnce()
				mu.Unlock()
			}
		}
	}()

	sem := semaphore.New()
	sem.Add(runWorkers)
	acquire := func() { sem.Wait(); sem.Done() }
	release := func() { sem.Add(1) }

	var wg sync.WaitGroup
	var inFlight sync.WaitGroup

	for {
		mu.Lock()
		req := sched.Pop()
		mu.Unlock()

		if req == nil {
			inFlight.Wait()

			mu.Lock()
			remaining := sched.Len()
			mu.Unlock()
			if remaining == 0 {
				break
			}
			time.Sleep(20 * time.Millisecond)
			continue
		}

		acquire()
		inFlight.Add(1)
		wg.Add(1)
		go func(req *crawlsched.Request) {
			defer wg.Done()
			defer inFlight.Done()
			defer release()
			fetchOne(sched, &mu, g, le, intake, fetcher, req)
		}(req)
	}

	wg.Wait()
	fmt.Fprintln(os.Stdout, "run: scheduler drained, exiting")
}

// fetchOne fetches req, scores and records the response against g, closes
// the domain if its goal is now achieved, and otherwise extracts and
// pushes discovered links back into sched.
func fetchOne(sched *crawlsched.BalancedScheduler, mu *sync.Mutex, g goal.Goal, le crawlsched.LinkExtractor,
	intake *linkintake.Intake, fetcher crawlsched.Fetcher, req *crawlsched.Request) {

	res, err := fetcher.Fetch(req)
	if err != nil {
		log4go.Warn("run: fetch of %v failed: %v", req.URL, err)
		return
	}

	mu.Lock()
	reward := g.GetReward(res)
	g.ResponseObserved(res)
	achieved := g.IsAchievedFor(res.Domain())
	mu.Unlock()
	log4go.Fine("run: fetched %v reward=%v", req.URL, reward)

	if achieved {
		mu.Lock()
		dropped := sched.CloseQueue(res.Domain())
		mu.Unlock()
		log4go.Info("run: goal achieved for %v, closed queue (%v requests dropped)", res.Domain(), dropped)
		return
	}

	if le == nil {
		return
	}
	links, err := le.ExtractLinks(res)
	if err != nil {
		log4go.Warn("run: link extraction for %v failed: %v", req.URL, err)
		return
	}
	mu.Lock()
	pushLinks(sched, intake, res.Domain(), links, reward)
	mu.Unlock()
}
