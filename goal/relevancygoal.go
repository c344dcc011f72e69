package goal

import "github.com/iParadigms/crawlsched"

// RelevancyFunc scores a single response's relevance to the crawl's topic.
type RelevancyFunc func(res crawlsched.Response) float64

// RelevancyGoal rewards pages in proportion to how relevant they are to
// some externally supplied topic function, and declares a domain done once
// it has either seen enough requests or found enough relevant pages.
//
// Grounded on the request/relevant-page counters in the teacher's
// cassandra.Datastore, generalized from Cassandra-backed columns to an
// in-memory map since crawlsched's Non-goals exclude durable persistence.
type RelevancyGoal struct {
	Relevancy                 RelevancyFunc
	MaxRequestsPerDomain      int     // 0 means unlimited
	MaxRelevantPagesPerDomain float64 // 0 means unlimited
	RelevancyThreshold        float64 // defaults to 0.1 via NewRelevancyGoal

	requestCounts  map[string]int
	relevantCounts map[string]float64
}

// NewRelevancyGoal returns a RelevancyGoal with RelevancyThreshold defaulted
// to 0.1, matching the teacher's convention of sensible zero-value defaults
// applied in constructors rather than scattered through call sites.
func NewRelevancyGoal(relevancy RelevancyFunc) *RelevancyGoal {
	return &RelevancyGoal{
		Relevancy:          relevancy,
		RelevancyThreshold: 0.1,
		requestCounts:      map[string]int{},
		relevantCounts:     map[string]float64{},
	}
}

// GetReward returns g.Relevancy(res). It does not mutate state.
func (g *RelevancyGoal) GetReward(res crawlsched.Response) float64 {
	return g.Relevancy(res)
}

// ResponseObserved increments res.Domain()'s request count, and its
// relevant-page count if the reward meets RelevancyThreshold.
func (g *RelevancyGoal) ResponseObserved(res crawlsched.Response) {
	domain := res.Domain()
	g.requestCounts[domain]++
	if g.GetReward(res) >= g.RelevancyThreshold {
		g.relevantCounts[domain]++
	}
}

// IsAchievedFor reports whether domain has reached either configured limit.
// A zero-valued limit is treated as unlimited.
func (g *RelevancyGoal) IsAchievedFor(domain string) bool {
	if g.MaxRequestsPerDomain > 0 && g.requestCounts[domain] >= g.MaxRequestsPerDomain {
		return true
	}
	if g.MaxRelevantPagesPerDomain > 0 && g.relevantCounts[domain] >= g.MaxRelevantPagesPerDomain {
		return true
	}
	return false
}

// DebugPrint is a no-op for RelevancyGoal; its per-domain counters are not
// logged.
func (g *RelevancyGoal) DebugPrint() {}
