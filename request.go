package crawlsched

// Request is the envelope the scheduler routes: a URL, a mutable integer
// priority, and the metadata the scheduler needs to route and annotate it.
//
// The teacher crawler's FetchResults (fetcher.go) carried the equivalent
// data for a completed fetch; Request is the pre-fetch counterpart that
// flows into the scheduler instead.
type Request struct {
	URL string

	// Priority is mutated in place by DomainQueue.ChangePriority and by
	// UpdateAllPriorities. Callers should treat it as read-only except
	// through those calls.
	Priority int

	// Slot is the target domain identifier (spec.md's "scheduler_slot").
	// Required for Push.
	Slot string

	// Domain is informational metadata naming the domain of URL. NewRequest
	// sets it equal to Slot, but it need not equal Slot (a crawl may choose
	// to group several subdomains under one slot, for instance).
	Domain string

	// FromRandomPolicy is written by BalancedScheduler.Pop (via popMany) to
	// record whether this request was returned via the eps-greedy random
	// branch rather than the softmax-weighted branch. It is an explicit
	// output field rather than a generic metadata map entry, per
	// spec.md's design notes for target languages that prefer immutable
	// metadata.
	FromRandomPolicy bool
}

// NewRequest builds a Request for the given slot with an initial score,
// converting it to the integer priority space via ScoreToPriority.
func NewRequest(url, slot string, score float64) *Request {
	return &Request{
		URL:      url,
		Priority: ScoreToPriority(score),
		Slot:     slot,
		Domain:   slot,
	}
}

// Response is the contract the Goal and link-intake layers consume from
// whatever fetched the page. It models the teacher's duck-typed
// FetchResults/text-probe pattern as an explicit tagged variant: a
// Response either carries text content or it doesn't, and callers branch
// on Text's ok result rather than probing for an attribute.
type Response interface {
	// URL returns the URL that was fetched.
	URL() string

	// Domain returns the registrable domain of the fetch, used as the
	// scheduler slot for anything discovered from this response.
	Domain() string

	// Text returns the response body as text and true if this response
	// carries extractable text content (e.g. an HTML or plain-text page).
	// Non-text responses (images, binaries, failed fetches) return
	// ("", false).
	Text() (string, bool)
}

// LinkExtractor produces deduplicated outbound URLs discovered in a
// Response's content. Implementations need not deduplicate across pages -
// that is linkintake's job - only within the single page they are given.
type LinkExtractor interface {
	ExtractLinks(res Response) ([]string, error)
}

// Fetcher retrieves a Request's URL and turns it into a Response.
// Fetching itself (robots.txt, redirects, retry policy, connection
// pooling) is out of scope for crawlsched's core, per spec.md's
// Non-goals; this interface is the seam the cmd package's demo driver -
// or any other caller - supplies its own transport through.
type Fetcher interface {
	Fetch(req *Request) (Response, error)
}
