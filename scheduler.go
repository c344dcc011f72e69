package crawlsched

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"strconv"
)

// bufferDumpSlot is the literal slot name debug_dump uses for rows drawn
// from the output buffer rather than a DomainQueue.
const bufferDumpSlot = "<BUFFER>"

// BalancedScheduler multiplexes many DomainQueues, one per domain, so
// that high-priority requests are preferred, attention is spread across
// domains via softmax-weighted sampling over each domain's top priority,
// and - with probability Eps - a uniformly random domain and request are
// chosen instead.
//
// Grounded on the teacher's per-domain work distribution in dispatcher.go
// and cassandra/priorityurl.go, generalized from a single Cassandra-wide
// heap to one DomainQueue per domain plus the weighted-sampling layer
// spec.md requires on top.
type BalancedScheduler struct {
	queues      map[string]*DomainQueue
	closedSlots map[string]bool
	buffer      []*Request

	// Eps is the eps-greedy exploration probability, in [0, 1].
	Eps float64

	// BalancingTemperature scales the softmax temperature; spec.md
	// requires it be multiplied by PMult internally since domain weights
	// live in the scaled integer priority space, not the raw score space.
	BalancingTemperature float64

	// BatchSize overrides the computed batch size from spec.md §4.2 when
	// positive. Leave zero to use the computed default.
	BatchSize int

	newQueue func() *DomainQueue
}

// NewBalancedScheduler returns an empty BalancedScheduler. balancingTemperature
// must be strictly positive.
func NewBalancedScheduler(eps, balancingTemperature float64) *BalancedScheduler {
	if balancingTemperature <= 0 {
		panic("crawlsched: balancingTemperature must be > 0")
	}
	return &BalancedScheduler{
		queues:               map[string]*DomainQueue{},
		closedSlots:          map[string]bool{},
		Eps:                  eps,
		BalancingTemperature: balancingTemperature,
		newQueue:             NewDomainQueue,
	}
}

// SetQueueFactory overrides how new per-domain DomainQueues are
// constructed (for example to use NewLIFODomainQueue). The default is
// NewDomainQueue.
func (bs *BalancedScheduler) SetQueueFactory(f func() *DomainQueue) {
	bs.newQueue = f
}

// Push routes req into the DomainQueue for its Slot, allocating one
// lazily on first use. Returns ErrQueueClosed if Slot has been closed via
// CloseQueue; the scheduler's state is unchanged in that case.
func (bs *BalancedScheduler) Push(req *Request) error {
	if bs.closedSlots[req.Slot] {
		return ErrQueueClosed
	}
	q, ok := bs.queues[req.Slot]
	if !ok {
		q = bs.newQueue()
		bs.queues[req.Slot] = q
	}
	q.Push(req)
	return nil
}

// Pop returns the next request to fetch, or nil if the scheduler is
// entirely drained. Internally it refills an output buffer via popMany
// and drains it LIFO; spec.md documents this buffer-order artifact and
// callers should not assume FIFO consumption across a batch.
func (bs *BalancedScheduler) Pop() *Request {
	if len(bs.buffer) == 0 {
		bs.buffer = append(bs.buffer, bs.popMany(bs.effectiveBatchSize())...)
	}
	n := len(bs.buffer)
	if n == 0 {
		return nil
	}
	req := bs.buffer[n-1]
	bs.buffer = bs.buffer[:n-1]
	return req
}

// effectiveBatchSize implements spec.md §4.2's computed default:
// min(1000, max(1, |queues| // 1000)).
func (bs *BalancedScheduler) effectiveBatchSize() int {
	if bs.BatchSize > 0 {
		return bs.BatchSize
	}
	n := len(bs.queues) / 1000
	if n < 1 {
		n = 1
	}
	if n > 1000 {
		n = 1000
	}
	return n
}

// popMany draws up to n requests via softmax-weighted sampling over each
// domain's current top priority, with the eps-greedy random branch
// applied independently per draw. none returns from a drained queue are
// dropped silently, so the result may be shorter than n.
func (bs *BalancedScheduler) popMany(n int) []*Request {
	if n < 0 {
		panic("crawlsched: popMany requires n >= 0")
	}
	if n == 0 || len(bs.queues) == 0 {
		return nil
	}

	slots := make([]string, 0, len(bs.queues))
	weights := make([]float64, 0, len(bs.queues))
	for slot, q := range bs.queues {
		slots = append(slots, slot)
		weights = append(weights, float64(q.MaxPriority()))
	}
	probs := Softmax(weights, PMult*bs.BalancingTemperature)

	out := make([]*Request, 0, n)
	for i := 0; i < n; i++ {
		idx := weightedSample(probs)
		fromRandom := false
		if rand.Float64() < bs.Eps {
			idx = rand.Intn(len(slots))
			fromRandom = true
		}

		q := bs.queues[slots[idx]]
		var req *Request
		if fromRandom {
			req = q.PopRandom()
		} else {
			req = q.Pop()
		}
		if req == nil {
			continue
		}
		req.FromRandomPolicy = fromRandom
		out = append(out, req)
	}
	return out
}

// weightedSample draws a single index from a discrete probability vector.
func weightedSample(probs []float64) int {
	r := rand.Float64()
	var cum float64
	for i, p := range probs {
		cum += p
		if r < cum {
			return i
		}
	}
	return len(probs) - 1
}

// GetActiveSlots returns every domain with at least one entry (tombstones
// included) still in its queue.
func (bs *BalancedScheduler) GetActiveSlots() []string {
	var out []string
	for slot, q := range bs.queues {
		if q.Len() > 0 {
			out = append(out, slot)
		}
	}
	return out
}

// GetQueue returns the DomainQueue for slot, or nil if none exists (the
// slot has never been pushed to, or has been closed). Intended for the
// learner's reprioritize-all pass.
func (bs *BalancedScheduler) GetQueue(slot string) *DomainQueue {
	return bs.queues[slot]
}

// CloseQueue adds slot to the closed set and removes its DomainQueue,
// returning the number of requests (including tombstones) it held.
// Subsequent Push calls for slot fail with ErrQueueClosed. Closing an
// already-closed slot returns 0.
func (bs *BalancedScheduler) CloseQueue(slot string) int {
	bs.closedSlots[slot] = true
	q, ok := bs.queues[slot]
	if !ok {
		return 0
	}
	delete(bs.queues, slot)
	return q.Len()
}

// Len returns the total number of requests across the output buffer and
// every live DomainQueue.
func (bs *BalancedScheduler) Len() int {
	total := len(bs.buffer)
	for _, q := range bs.queues {
		total += q.Len()
	}
	return total
}

// DebugDump writes a CSV of (priority, slot, url) rows covering the
// buffer (slot "<BUFFER>") and every live request in every queue, per
// spec.md §6. It is not required for correctness; it exists for
// operational visibility, grounded on the teacher console's tabular
// domain views.
func (bs *BalancedScheduler) DebugDump(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"priority", "slot", "url"}); err != nil {
		return err
	}
	for _, req := range bs.buffer {
		row := []string{strconv.Itoa(req.Priority), bufferDumpSlot, req.URL}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	for slot, q := range bs.queues {
		for _, req := range q.IterRequests() {
			row := []string{strconv.Itoa(req.Priority), slot, req.URL}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("crawlsched: debug dump: %w", err)
	}
	return nil
}
