// Package linkintake canonicalizes candidate outbound links discovered on
// a page and filters the ones not worth scheduling: duplicates, javascript
// pseudo-links with nothing to salvage, mailto links, and links to files
// with an ignored extension.
//
// Grounded on the teacher's url.go (purell-based normalization,
// publicsuffix-based registrable domain extraction) and its
// dnscache/cassandra.Datastore.domainCache bounded-LRU idiom.
package linkintake

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/purell"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/net/publicsuffix"

	"github.com/iParadigms/crawlsched"
)

// Link is a canonicalized candidate outbound URL, tagged with the domain
// it should be scheduled against and whether it was salvaged from a
// javascript: pseudo-link.
type Link struct {
	URL    string
	Domain string
	FromJS bool
}

// Intake canonicalizes and filters candidate links extracted from a page.
// It is not safe for concurrent use without external synchronization, per
// crawlsched's single-threaded cooperative scheduling model; its
// canonicalization cache and seen-set belong to the Intake and are shared
// by all of its Process calls.
type Intake struct {
	// IgnoredExtensions is the set of lowercase file extensions (without
	// the leading dot) whose links are dropped outright.
	IgnoredExtensions map[string]bool

	// SameDomainOnly restricts survivors to links that resolve to the same
	// registrable domain as the page they were found on.
	SameDomainOnly bool

	// DeduplicateLocal, when true, only deduplicates within a single
	// Process call rather than across the lifetime of the Intake.
	DeduplicateLocal bool

	cache *lru.Cache
	seen  map[string]bool
}

// New builds an Intake using crawlsched.Config.LinkIntake for its ignored
// extensions, same-domain restriction, local-dedupe flag, and cache size.
func New() (*Intake, error) {
	cache, err := lru.New(crawlsched.Config.LinkIntake.CacheSize)
	if err != nil {
		return nil, err
	}
	ignored := map[string]bool{}
	for _, ext := range crawlsched.Config.LinkIntake.IgnoredExtensions {
		ignored[strings.ToLower(ext)] = true
	}
	return &Intake{
		IgnoredExtensions: ignored,
		SameDomainOnly:    crawlsched.Config.LinkIntake.SameDomainOnly,
		DeduplicateLocal:  crawlsched.Config.LinkIntake.DeduplicateLocal,
		cache:             cache,
		seen:              map[string]bool{},
	}, nil
}

// Process canonicalizes and filters rawLinks, which were all found on a
// page served by sourceDomain. The returned slice has at most one entry
// per surviving distinct URL.
func (in *Intake) Process(sourceDomain string, rawLinks []string) []Link {
	localSeen := map[string]bool{}
	var out []Link

	for _, raw := range rawLinks {
		salvaged, fromJS, ok := salvageOrDrop(raw)
		if !ok {
			continue
		}

		canon, err := in.canonicalize(salvaged)
		if err != nil {
			continue
		}

		if hasIgnoredExtension(canon, in.IgnoredExtensions) {
			continue
		}

		domain, err := registrableDomain(canon)
		if err != nil {
			continue
		}
		if in.SameDomainOnly && domain != sourceDomain {
			continue
		}

		seenMap := in.seen
		if in.DeduplicateLocal {
			seenMap = localSeen
		}
		if seenMap[canon] {
			continue
		}
		seenMap[canon] = true

		out = append(out, Link{URL: canon, Domain: domain, FromJS: fromJS})
	}
	return out
}

// canonicalize runs canon through purell, caching results in a bounded LRU
// to avoid recomputation on hot URLs, per the teacher's domainCache idiom.
func (in *Intake) canonicalize(raw string) (string, error) {
	if cached, ok := in.cache.Get(raw); ok {
		return cached.(string), nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	purell.NormalizeURL(u, purell.FlagsSafe|purell.FlagRemoveFragment)
	canon := u.String()
	in.cache.Add(raw, canon)
	return canon, nil
}

// salvageOrDrop implements spec.md's javascript link salvage: a URL of the
// form "[javascript:]location.href='X'" is rewritten to X and tagged as
// salvaged from JS; any other javascript: URL, or a mailto: URL, is
// dropped.
func salvageOrDrop(raw string) (rewritten string, fromJS bool, ok bool) {
	if strings.HasPrefix(raw, "mailto:") {
		return "", false, false
	}
	const marker = "location.href="
	body := strings.TrimPrefix(raw, "javascript:")
	if body == raw && !strings.HasPrefix(raw, marker) {
		return raw, false, true
	}
	idx := strings.Index(body, marker)
	if idx < 0 {
		return "", false, false
	}
	target := strings.TrimSpace(body[idx+len(marker):])
	target = strings.Trim(target, `'"`)
	if target == "" {
		return "", false, false
	}
	return target, true, true
}

func hasIgnoredExtension(rawURL string, ignored map[string]bool) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(u.Path)), ".")
	return ext != "" && ignored[ext]
}

func registrableDomain(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return publicsuffix.EffectiveTLDPlusOne(u.Hostname())
}
