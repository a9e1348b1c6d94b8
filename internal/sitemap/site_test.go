package sitemap

import (
	"errors"
	"testing"
)

func TestDominantSitePicksMostFrequentHost(t *testing.T) {
	site, ok := DominantSite([]string{"https://a.com/1", "https://a.com/2", "https://b.com/1"})
	if !ok {
		t.Fatal("expected a dominant site")
	}
	if site.Host != "a.com" || site.Scheme != "https" {
		t.Fatalf("unexpected site %+v", site)
	}
}

func TestDominantSiteTieBreaksOnSmallestHost(t *testing.T) {
	site, ok := DominantSite([]string{"https://z.com/1", "https://m.com/1", "https://c.com/1"})
	if !ok || site.Host != "c.com" {
		t.Fatalf("expected c.com, got %+v (ok=%v)", site, ok)
	}
}

func TestDominantSiteSchemePreference(t *testing.T) {
	site, _ := DominantSite([]string{"http://a.com/1", "http://a.com/2", "https://a.com/3"})
	if site.Scheme != "http" {
		t.Fatalf("expected the majority scheme, got %q", site.Scheme)
	}
	site, _ = DominantSite([]string{"http://a.com/1", "https://a.com/2"})
	if site.Scheme != "https" {
		t.Fatalf("expected https on a scheme tie, got %q", site.Scheme)
	}
}

func TestDominantSiteIgnoresHostlessURLs(t *testing.T) {
	if _, ok := DominantSite(nil); ok {
		t.Fatal("expected no site for empty input")
	}
	if _, ok := DominantSite([]string{"/relative", "mailto:x@y", "::bad"}); ok {
		t.Fatal("expected no site without hosts")
	}
}

func TestParseSite(t *testing.T) {
	site, err := ParseSite("a.com", "")
	if err != nil || site.String() != "https://a.com" {
		t.Fatalf("unexpected bare host parse %+v %v", site, err)
	}
	site, err = ParseSite("http://b.com/", "https")
	if err != nil || site.String() != "http://b.com" {
		t.Fatalf("unexpected origin parse %+v %v", site, err)
	}
	if _, err := ParseSite("  ", "https"); !errors.Is(err, ErrInvalidSite) {
		t.Fatalf("expected ErrInvalidSite, got %v", err)
	}
}

func TestSiteURLJoinsPaths(t *testing.T) {
	site := Site{Scheme: "https", Host: "a.com"}
	if got := site.URL("/posts/1.html"); got != "https://a.com/posts/1.html" {
		t.Fatalf("unexpected url %q", got)
	}
	if got := site.URL("robots.txt"); got != "https://a.com/robots.txt" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestObservedSitesDistinctAndSorted(t *testing.T) {
	sites := ObservedSites([]string{"https://b.com/1", "http://a.com/1", "https://b.com/2", "https://a.com/x"})
	want := []string{"http://a.com", "https://a.com", "https://b.com"}
	if len(sites) != len(want) {
		t.Fatalf("expected %d sites, got %+v", len(want), sites)
	}
	for i, site := range sites {
		if site.String() != want[i] {
			t.Fatalf("site %d: expected %s, got %s", i, want[i], site.String())
		}
	}
}
