package crawlsched

import "math"

// PMult is the fixed multiplier used to convert a float score into an
// integer priority. Priorities live in this scaled integer space so the
// queue can use plain integer comparisons while still accepting
// fine-grained scores.
const PMult = 10000

// EmptyPriority is returned by DomainQueue.MaxPriority for an empty queue.
const EmptyPriority = -10000 * PMult

// RemovedDelta is added on top of the current max priority when
// tombstoning an entry, so it floats to the heap root and is reclaimed
// eagerly the next time the heap surfaces its root.
const RemovedDelta = 10000 * PMult

// ScoreToPriority converts a float score into the signed integer priority
// space used by DomainQueue, truncating toward zero as spec.md requires.
func ScoreToPriority(score float64) int {
	return int(score * PMult)
}

// PriorityToScore is the inverse of ScoreToPriority.
func PriorityToScore(priority int) float64 {
	return float64(priority) / PMult
}

// Softmax computes exp((w_i - max(w)) / temperature) / sum, the standard
// numerically stable softmax. temperature must be strictly positive. An
// empty input returns an empty output. The result is always a valid
// probability vector: nonnegative and summing to 1 (barring floating
// point rounding) for any finite input.
func Softmax(weights []float64, temperature float64) []float64 {
	if len(weights) == 0 {
		return nil
	}
	if temperature <= 0 {
		panic("crawlsched: Softmax requires a strictly positive temperature")
	}

	max := weights[0]
	for _, w := range weights[1:] {
		if w > max {
			max = w
		}
	}

	out := make([]float64, len(weights))
	var sum float64
	for i, w := range weights {
		e := math.Exp((w - max) / temperature)
		out[i] = e
		sum += e
	}
	if sum == 0 {
		// All weights underflowed to zero relative to the max; fall back
		// to a uniform distribution rather than dividing by zero.
		u := 1.0 / float64(len(out))
		for i := range out {
			out[i] = u
		}
		return out
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
