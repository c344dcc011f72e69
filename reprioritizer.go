package crawlsched

import (
	"time"

	log4go "github.com/ccpaging/log4go"
)

// ScoreFunc computes new priorities for a batch of requests, in the same
// order they were given, for use with DomainQueue.UpdateAllPriorities.
type ScoreFunc func(reqs []*Request) []int

// Reprioritizer periodically recomputes priorities for every enqueued
// request across every active domain. It gives a concrete shape to "the
// learner" mentioned in spec.md §2's data-flow paragraph, grounded on the
// teacher's Dispatcher.domainIterator/generateRoutine loop in
// dispatcher.go, which periodically walked domains needing new work.
type Reprioritizer struct {
	sched  *BalancedScheduler
	score  ScoreFunc
	period time.Duration
}

// NewReprioritizer builds a Reprioritizer that will call score against
// every active slot's live requests every period.
func NewReprioritizer(sched *BalancedScheduler, score ScoreFunc, period time.Duration) *Reprioritizer {
	return &Reprioritizer{sched: sched, score: score, period: period}
}

// Run blocks, ticking every r.period and calling RunOnce, until stop is
// closed.
func (r *Reprioritizer) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(r.period)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			log4go.Debug("Reprioritizer signaled to stop")
			return
		case <-ticker.C:
			r.RunOnce()
		}
	}
}

// RunOnce walks every currently active slot and reprioritizes its
// DomainQueue in place.
func (r *Reprioritizer) RunOnce() {
	for _, slot := range r.sched.GetActiveSlots() {
		q := r.sched.GetQueue(slot)
		if q == nil {
			// Closed between GetActiveSlots and here; skip it.
			continue
		}
		log4go.Fine("Reprioritizing slot %v", slot)
		q.UpdateAllPriorities(r.score)
	}
}
