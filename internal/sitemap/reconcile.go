package sitemap

// Reconciliation is the outcome of merging live URLs into the inventory.
type Reconciliation struct {
	All  URLSet
	Live URLSet
	Dead URLSet
}

// WellKnownURLs qualifies each site file against the site origin.
func WellKnownURLs(site Site, files []string) URLSet {
	set := URLSet{}
	if site.IsZero() {
		return set
	}
	for _, file := range files {
		if file == "" {
			continue
		}
		set.Add(site.URL(file))
	}
	return set
}

// Reconcile folds the newly live URLs and the site's well-known files into
// the known inventory and derives the dead complement. Inputs are not
// modified.
func Reconcile(allKnown, newlyLive URLSet, site Site, wellKnown []string) Reconciliation {
	live := newlyLive.Union(WellKnownURLs(site, wellKnown))
	all := allKnown.Union(live)
	return Reconciliation{
		All:  all,
		Live: live,
		Dead: all.Difference(live),
	}
}
