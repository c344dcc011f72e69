package goal

// MaxScores tracks, for each of a set of keys (normally domains), the
// largest value ever recorded for it. Absent keys read as zero.
//
// Grounded on the per-domain lru-cached counters in the teacher's
// cassandra.Datastore, generalized from a bounded cache to an unbounded
// map since crawlsched's Non-goals exclude durable/bounded storage here.
type MaxScores struct {
	scores map[string]float64
}

// NewMaxScores returns an empty MaxScores.
func NewMaxScores() *MaxScores {
	return &MaxScores{scores: map[string]float64{}}
}

// Update records value for key if it exceeds the previously stored max (or
// if key has not been seen before).
func (m *MaxScores) Update(key string, value float64) {
	if m.scores == nil {
		m.scores = map[string]float64{}
	}
	if cur, ok := m.scores[key]; !ok || value > cur {
		m.scores[key] = value
	}
}

// Get returns the current max for key, or 0 if key has never been updated.
func (m *MaxScores) Get(key string) float64 {
	return m.scores[key]
}

// Sum returns the sum of every recorded max.
func (m *MaxScores) Sum() float64 {
	var total float64
	for _, v := range m.scores {
		total += v
	}
	return total
}

// Avg returns Sum() / (number of keys seen), or 0 if no keys have been
// recorded.
func (m *MaxScores) Avg() float64 {
	if len(m.scores) == 0 {
		return 0
	}
	return m.Sum() / float64(len(m.scores))
}
