package sitemap

import (
	"net/url"
	"sort"
	"strings"
)

// RenderRobots renders robots.txt from a reconciliation: Sitemap lines for
// every origin observed among live URLs, then Disallow for dead paths and
// Allow for live paths.
func RenderRobots(live, dead URLSet) []byte {
	var builder strings.Builder
	for _, site := range ObservedSites(live.Sorted()) {
		builder.WriteString("Sitemap: " + site.URL("sitemap.xml") + "\n")
		builder.WriteString("Sitemap: " + site.URL("sitemap.txt") + "\n")
	}
	builder.WriteString("User-agent: *\n")
	for _, path := range robotsPaths(dead) {
		builder.WriteString("Disallow: " + path + "\n")
	}
	for _, path := range robotsPaths(live) {
		builder.WriteString("Allow: " + path + "\n")
	}
	return []byte(builder.String())
}

func robotsPaths(set URLSet) []string {
	seen := map[string]struct{}{}
	paths := make([]string, 0, len(set))
	for u := range set {
		path := urlPath(u)
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func urlPath(raw string) string {
	path := ""
	if parsed, err := url.Parse(raw); err == nil {
		path = parsed.EscapedPath()
	}
	if path == "" {
		return "/"
	}
	return path
}
