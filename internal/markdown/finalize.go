package markdown

import "time"

// Finalize completes the front matter of doc before publication:
//
//   - hide: true also sets sitemap: false and hidden: true
//   - date is the file modification time
//   - updated is the file modification time
//   - abbrlink is derived from the title and claimed in registry
//
// layout formats the timestamps. A collision leaves doc unchanged.
func Finalize(doc *Document, registry *Registry, layout string) error {
	abbrlink := Abbrlink(doc.Meta.Title)
	if err := registry.Claim(abbrlink, doc.Path); err != nil {
		return err
	}

	if doc.Meta.Hide {
		hidden := false
		doc.Meta.Sitemap = &hidden
		doc.Meta.Hidden = true
	}

	if layout == "" {
		layout = "2006-01-02 15:04:05"
	}
	modified := doc.ModTime
	if modified.IsZero() {
		modified = time.Now()
	}
	stamp := modified.Local().Format(layout)
	doc.Meta.Date = stamp
	doc.Meta.Updated = stamp
	doc.Meta.Abbrlink = abbrlink
	return nil
}
