package goal

import "testing"

func TestMaxScoresUpdateKeepsMax(t *testing.T) {
	m := NewMaxScores()
	m.Update("a", 1.0)
	m.Update("a", 0.5)
	if got := m.Get("a"); got != 1.0 {
		t.Errorf("expected max to stick at 1.0, got %v", got)
	}
	m.Update("a", 2.0)
	if got := m.Get("a"); got != 2.0 {
		t.Errorf("expected max to rise to 2.0, got %v", got)
	}
}

func TestMaxScoresGetAbsentKeyDefaultsZero(t *testing.T) {
	m := NewMaxScores()
	if got := m.Get("missing"); got != 0 {
		t.Errorf("expected 0 for an absent key, got %v", got)
	}
}

func TestMaxScoresSumAndAvg(t *testing.T) {
	m := NewMaxScores()
	m.Update("a", 1.0)
	m.Update("b", 3.0)
	if got := m.Sum(); got != 4.0 {
		t.Errorf("expected sum 4.0, got %v", got)
	}
	if got := m.Avg(); got != 2.0 {
		t.Errorf("expected avg 2.0, got %v", got)
	}
}

func TestMaxScoresAvgOfEmptyIsZero(t *testing.T) {
	m := NewMaxScores()
	if got := m.Avg(); got != 0 {
		t.Errorf("expected avg 0 on an empty MaxScores, got %v", got)
	}
}
