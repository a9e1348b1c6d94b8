package sitemap

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// ErrNoDominantSite reports URL input where no URL carries a host.
var ErrNoDominantSite = errors.New("sitemap: no url with a host to derive the site from")

// ErrInvalidSite reports a site override that cannot be parsed.
var ErrInvalidSite = errors.New("sitemap: invalid site")

// Site identifies a published origin.
type Site struct {
	Scheme string
	Host   string
}

// IsZero reports whether the site has no host.
func (s Site) IsZero() bool {
	return s.Host == ""
}

// String renders scheme://host.
func (s Site) String() string {
	if s.IsZero() {
		return ""
	}
	return s.scheme() + "://" + s.Host
}

// URL joins a site-relative path onto the origin.
func (s Site) URL(path string) string {
	return s.String() + "/" + strings.TrimLeft(path, "/")
}

func (s Site) scheme() string {
	if s.Scheme == "" {
		return "https"
	}
	return s.Scheme
}

// ParseSite accepts either a bare host ("a.com") or an origin
// ("http://a.com"). Bare hosts use defaultScheme, or https when empty.
func ParseSite(raw, defaultScheme string) (Site, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Site{}, fmt.Errorf("%w: empty", ErrInvalidSite)
	}
	if !strings.Contains(value, "://") {
		scheme := strings.TrimSpace(defaultScheme)
		if scheme == "" {
			scheme = "https"
		}
		value = scheme + "://" + value
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return Site{}, fmt.Errorf("%w: %q: %v", ErrInvalidSite, raw, err)
	}
	if parsed.Host == "" {
		return Site{}, fmt.Errorf("%w: %q has no host", ErrInvalidSite, raw)
	}
	return Site{Scheme: strings.ToLower(parsed.Scheme), Host: parsed.Host}, nil
}

// DominantSite returns the host occurring in most URLs. Ties pick the
// lexicographically smallest host. The scheme is the one seen most often
// with that host, preferring https on ties. URLs without a host or that do
// not parse are ignored.
func DominantSite(urls []string) (Site, bool) {
	hostCounts := map[string]int{}
	schemeCounts := map[string]map[string]int{}
	for _, raw := range urls {
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Host == "" {
			continue
		}
		hostCounts[parsed.Host]++
		if schemeCounts[parsed.Host] == nil {
			schemeCounts[parsed.Host] = map[string]int{}
		}
		schemeCounts[parsed.Host][strings.ToLower(parsed.Scheme)]++
	}
	if len(hostCounts) == 0 {
		return Site{}, false
	}

	host := ""
	for candidate, count := range hostCounts {
		if host == "" || count > hostCounts[host] || (count == hostCounts[host] && candidate < host) {
			host = candidate
		}
	}

	scheme := ""
	for candidate, count := range schemeCounts[host] {
		if scheme == "" || count > schemeCounts[host][scheme] ||
			(count == schemeCounts[host][scheme] && schemeBefore(candidate, scheme)) {
			scheme = candidate
		}
	}
	return Site{Scheme: scheme, Host: host}, true
}

func schemeBefore(a, b string) bool {
	if a == "https" || b == "https" {
		return a == "https"
	}
	return a < b
}

// ObservedSites lists the distinct (scheme, host) pairs among urls, sorted by
// origin string.
func ObservedSites(urls []string) []Site {
	seen := map[Site]struct{}{}
	var sites []Site
	for _, raw := range urls {
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Host == "" {
			continue
		}
		site := Site{Scheme: strings.ToLower(parsed.Scheme), Host: parsed.Host}
		if _, ok := seen[site]; ok {
			continue
		}
		seen[site] = struct{}{}
		sites = append(sites, site)
	}
	sort.Slice(sites, func(i, j int) bool {
		return sites[i].String() < sites[j].String()
	})
	return sites
}
