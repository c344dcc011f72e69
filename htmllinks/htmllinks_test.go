package htmllinks

import (
	"testing"

	"github.com/iParadigms/crawlsched"
)

func TestExtractLinksResolvesRelativeAnchors(t *testing.T) {
	e := New()
	res := crawlsched.NewTextResponse(
		"http://example.com/dir/page.html", "example.com",
		`<html><body><a href="child.html">x</a><a href="/root.html">y</a></body></html>`,
	)
	links, err := e.ExtractLinks(res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]bool{
		"http://example.com/dir/child.html": true,
		"http://example.com/root.html":      true,
	}
	if len(links) != len(want) {
		t.Fatalf("expected %v links, got %v (%v)", len(want), len(links), links)
	}
	for _, l := range links {
		if !want[l] {
			t.Errorf("unexpected link %v", l)
		}
	}
}

func TestExtractLinksDedupesWithinPage(t *testing.T) {
	e := New()
	res := crawlsched.NewTextResponse(
		"http://example.com/", "example.com",
		`<a href="http://example.com/x">a</a><a href="http://example.com/x">b</a>`,
	)
	links, err := e.ExtractLinks(res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(links) != 1 {
		t.Errorf("expected duplicates within a page to collapse, got %v", links)
	}
}

func TestExtractLinksIgnoresUnwantedTags(t *testing.T) {
	e := New()
	res := crawlsched.NewTextResponse(
		"http://example.com/", "example.com",
		`<img src="http://example.com/pic.png"><a href="http://example.com/ok">ok</a>`,
	)
	links, err := e.ExtractLinks(res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(links) != 1 || links[0] != "http://example.com/ok" {
		t.Errorf("expected only the anchor link, got %v", links)
	}
}

func TestExtractLinksNoTextBody(t *testing.T) {
	e := New()
	res := crawlsched.NewNonTextResponse("http://example.com/img.png", "example.com")
	links, err := e.ExtractLinks(res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if links != nil {
		t.Errorf("expected no links for a non-text response, got %v", links)
	}
}

func TestExtractLinksCustomTagSet(t *testing.T) {
	e := New()
	delete(e.Tags, "iframe")
	res := crawlsched.NewTextResponse(
		"http://example.com/", "example.com",
		`<iframe src="http://example.com/frame"></iframe><a href="http://example.com/ok">ok</a>`,
	)
	links, err := e.ExtractLinks(res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(links) != 1 || links[0] != "http://example.com/ok" {
		t.Errorf("expected iframe to be excluded after removing it from Tags, got %v", links)
	}
}
