package linkintake

import (
	"testing"

	"github.com/iParadigms/crawlsched"
)

func newTestIntake(t *testing.T) *Intake {
	t.Helper()
	crawlsched.SetDefaultConfig()
	in, err := New()
	if err != nil {
		t.Fatalf("unexpected error building Intake: %v", err)
	}
	return in
}

func TestProcessCanonicalizesAndDedupes(t *testing.T) {
	in := newTestIntake(t)
	links := in.Process("example.com", []string{
		"http://example.com/a#frag",
		"http://example.com/a",
	})
	if len(links) != 1 {
		t.Fatalf("expected fragment-only duplicate to collapse to 1 link, got %v (%v)", len(links), links)
	}
}

func TestProcessDropsMailto(t *testing.T) {
	in := newTestIntake(t)
	links := in.Process("example.com", []string{"mailto:a@example.com"})
	if len(links) != 0 {
		t.Errorf("expected mailto link to be dropped, got %v", links)
	}
}

func TestProcessSalvagesJavascriptLocationHref(t *testing.T) {
	in := newTestIntake(t)
	links := in.Process("example.com", []string{
		`javascript:location.href='http://example.com/target'`,
	})
	if len(links) != 1 {
		t.Fatalf("expected the salvaged link to survive, got %v", links)
	}
	if !links[0].FromJS {
		t.Errorf("expected FromJS to be true for a salvaged link")
	}
	if links[0].URL != "http://example.com/target" {
		t.Errorf("expected salvaged target URL, got %v", links[0].URL)
	}
}

func TestProcessDropsOtherJavascript(t *testing.T) {
	in := newTestIntake(t)
	links := in.Process("example.com", []string{"javascript:void(0)"})
	if len(links) != 0 {
		t.Errorf("expected a non-location.href javascript: link to be dropped, got %v", links)
	}
}

func TestProcessDropsIgnoredExtensions(t *testing.T) {
	in := newTestIntake(t)
	links := in.Process("example.com", []string{"http://example.com/archive.zip"})
	if len(links) != 0 {
		t.Errorf("expected a .zip link to be dropped, got %v", links)
	}
}

func TestProcessSameDomainOnly(t *testing.T) {
	in := newTestIntake(t)
	in.SameDomainOnly = true
	links := in.Process("example.com", []string{"http://other.com/x", "http://example.com/x"})
	if len(links) != 1 || links[0].Domain != "example.com" {
		t.Errorf("expected only the same-domain link to survive, got %v", links)
	}
}

func TestProcessLocalDedupeDoesNotPersistAcrossCalls(t *testing.T) {
	in := newTestIntake(t)
	in.DeduplicateLocal = true

	first := in.Process("example.com", []string{"http://example.com/a"})
	second := in.Process("example.com", []string{"http://example.com/a"})
	if len(first) != 1 || len(second) != 1 {
		t.Errorf("expected local dedupe to reset across calls, got first=%v second=%v", first, second)
	}
}

func TestProcessGlobalDedupePersistsAcrossCalls(t *testing.T) {
	in := newTestIntake(t)
	first := in.Process("example.com", []string{"http://example.com/a"})
	second := in.Process("example.com", []string{"http://example.com/a"})
	if len(first) != 1 || len(second) != 0 {
		t.Errorf("expected global dedupe to suppress the repeat, got first=%v second=%v", first, second)
	}
}
