// Package goal provides pluggable policies that turn a fetched response
// into a reward and decide when a domain's crawl objective has been met.
package goal

import "github.com/iParadigms/crawlsched"

// Goal converts responses into rewards and tracks, per domain, whether the
// crawl's objective has been satisfied. A Goal is polymorphic over its own
// capability set: callers should treat GetReward as pure and
// ResponseObserved as the single point where state changes.
//
// Grounded on the teacher's console.Model interface: a small read/update
// surface with one concrete struct doing per-domain bookkeeping.
type Goal interface {
	// GetReward scores res. It must be safe to call more than once for the
	// same response and must return the same value each time; it must not
	// mutate the Goal's internal state.
	GetReward(res crawlsched.Response) float64

	// ResponseObserved is called at most once per response, after every
	// GetReward call has been made for it, and updates internal state.
	ResponseObserved(res crawlsched.Response)

	// IsAchievedFor reports whether domain's objective has been met, a
	// signal the caller should use to close that domain's queue.
	IsAchievedFor(domain string) bool

	// DebugPrint writes optional diagnostic state to the process log.
	DebugPrint()
}
