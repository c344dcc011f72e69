package cmd

import (
	"io"
	"net/http"
	"strings"

	log4go "github.com/ccpaging/log4go"

	"github.com/iParadigms/crawlsched"
	"github.com/iParadigms/crawlsched/linkintake"
)

// httpFetcher is the default crawlsched.Fetcher: a plain net/http GET that
// treats any text/html response as carrying extractable text and
// everything else as opaque. It does not honor robots.txt and does not
// retry; redirects follow net/http's default client policy. Real crawl
// deployments are expected to supply their own Fetcher via cmd.Fetcher.
type httpFetcher struct {
	client *http.Client
}

func newHTTPFetcher() *httpFetcher {
	return &httpFetcher{client: &http.Client{}}
}

func (f *httpFetcher) Fetch(req *crawlsched.Request) (crawlsched.Response, error) {
	resp, err := f.client.Get(req.URL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	domain := req.Domain
	if domain == "" {
		domain = req.Slot
	}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		return crawlsched.NewTextResponse(req.URL, domain, string(body)), nil
	}
	return crawlsched.NewNonTextResponse(req.URL, domain), nil
}

// pushLinks lets the run loop push a page's extracted links through a
// linkintake.Intake and back into the scheduler as new Requests, slotting
// each under its own registrable domain (link.Domain).
func pushLinks(sched *crawlsched.BalancedScheduler, in *linkintake.Intake, sourceDomain string, rawLinks []string, score float64) {
	for _, link := range in.Process(sourceDomain, rawLinks) {
		req := crawlsched.NewRequest(link.URL, link.Domain, score)
		if err := sched.Push(req); err != nil && err != crawlsched.ErrQueueClosed {
			log4go.Error("cmd: failed to push discovered link %v: %v", link.URL, err)
		}
	}
}
