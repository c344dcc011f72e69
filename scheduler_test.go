package crawlsched

import (
	"bytes"
	"strings"
	"testing"
)

// Scenario E: closure.
func TestBalancedSchedulerClosure(t *testing.T) {
	bs := NewBalancedScheduler(0, 1.0)
	for i := 0; i < 5; i++ {
		if err := bs.Push(&Request{URL: "d1", Priority: 1, Slot: "d1"}); err != nil {
			t.Fatalf("unexpected push error: %v", err)
		}
	}
	for i := 0; i < 3; i++ {
		if err := bs.Push(&Request{URL: "d2", Priority: 1, Slot: "d2"}); err != nil {
			t.Fatalf("unexpected push error: %v", err)
		}
	}

	if n := bs.CloseQueue("d1"); n != 5 {
		t.Errorf("expected CloseQueue to report 5 dropped requests, got %v", n)
	}
	if bs.Len() != 3 {
		t.Errorf("expected scheduler len 3 after closing d1, got %v", bs.Len())
	}

	if err := bs.Push(&Request{URL: "d1-again", Priority: 1, Slot: "d1"}); err != ErrQueueClosed {
		t.Errorf("expected ErrQueueClosed pushing to a closed slot, got %v", err)
	}

	for i := 0; i < 3; i++ {
		req := bs.Pop()
		if req == nil {
			t.Fatalf("expected a request at pop %v, got nil", i)
		}
		if req.Slot != "d2" {
			t.Errorf("expected only d2 requests after closing d1, got slot %v", req.Slot)
		}
	}
	if req := bs.Pop(); req != nil {
		t.Errorf("expected scheduler to be drained, got %v", req)
	}
}

// close_queue(d) twice: returns length first call, 0 on second.
func TestBalancedSchedulerCloseQueueTwice(t *testing.T) {
	bs := NewBalancedScheduler(0, 1.0)
	bs.Push(&Request{URL: "a", Priority: 1, Slot: "d"})
	if n := bs.CloseQueue("d"); n != 1 {
		t.Errorf("expected first close to report 1, got %v", n)
	}
	if n := bs.CloseQueue("d"); n != 0 {
		t.Errorf("expected second close to report 0, got %v", n)
	}
}

// Scenario F: softmax concentration.
func TestBalancedSchedulerSoftmaxConcentration(t *testing.T) {
	bs := NewBalancedScheduler(0, 0.01)
	bs.Push(&Request{URL: "hi", Priority: ScoreToPriority(1.0), Slot: "hot"})
	bs.Push(&Request{URL: "lo", Priority: ScoreToPriority(0.0), Slot: "cold"})

	hot := 0
	total := 1000
	for i := 0; i < total; i++ {
		req := bs.Pop()
		if req == nil {
			t.Fatalf("unexpected drain at iteration %v", i)
		}
		if req.Slot == "hot" {
			hot++
		}
		// Replenish so the distribution keeps being sampled.
		bs.Push(&Request{URL: req.URL, Priority: req.Priority, Slot: req.Slot})
	}

	if float64(hot)/float64(total) < 0.99 {
		t.Errorf("expected >=99%% of pops from the hot domain, got %v/%v", hot, total)
	}
}

// Property 12: with eps=1, every popped request is flagged from_random_policy.
func TestBalancedSchedulerEpsOneAlwaysRandom(t *testing.T) {
	bs := NewBalancedScheduler(1.0, 1.0)
	for i := 0; i < 50; i++ {
		bs.Push(&Request{URL: "u", Priority: i, Slot: "d"})
	}
	for i := 0; i < 50; i++ {
		req := bs.Pop()
		if req == nil {
			break
		}
		if !req.FromRandomPolicy {
			t.Errorf("expected FromRandomPolicy with eps=1, got false for %v", req.URL)
		}
	}
}

// Property 11: popMany(0) == [] and popMany on an empty scheduler == [].
func TestBalancedSchedulerPopManyEmptyCases(t *testing.T) {
	bs := NewBalancedScheduler(0.1, 1.0)
	if out := bs.popMany(0); out != nil {
		t.Errorf("expected popMany(0) to return nil/empty, got %v", out)
	}
	if out := bs.popMany(10); out != nil {
		t.Errorf("expected popMany on an empty scheduler to return nil/empty, got %v", out)
	}
}

func TestBalancedSchedulerGetActiveSlots(t *testing.T) {
	bs := NewBalancedScheduler(0, 1.0)
	bs.Push(&Request{URL: "a", Priority: 1, Slot: "d1"})
	bs.Push(&Request{URL: "b", Priority: 1, Slot: "d2"})
	slots := bs.GetActiveSlots()
	if len(slots) != 2 {
		t.Fatalf("expected 2 active slots, got %v (%v)", len(slots), slots)
	}
}

func TestBalancedSchedulerDebugDump(t *testing.T) {
	bs := NewBalancedScheduler(0, 1.0)
	bs.Push(&Request{URL: "http://a.example/1", Priority: 5, Slot: "a.example"})
	bs.Push(&Request{URL: "http://a.example/2", Priority: 3, Slot: "a.example"})

	var buf bytes.Buffer
	if err := bs.DebugDump(&buf); err != nil {
		t.Fatalf("unexpected error from DebugDump: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "priority,slot,url" {
		t.Errorf("expected CSV header, got %v", lines[0])
	}
	if len(lines) != 3 {
		t.Errorf("expected a header plus 2 data rows, got %v lines: %v", len(lines), lines)
	}
}
