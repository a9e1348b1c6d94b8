package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"time"
)

// Namespace is the sitemaps.org 0.9 schema namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Entry pairs a post URL with its last update timestamp rendered with the
// configured timestamp layout.
type Entry struct {
	Timestamp string
	URL       string
}

// XMLOptions controls per-URL sitemap fields.
type XMLOptions struct {
	ChangeFreq      string
	Priority        string
	TimestampLayout string
	LastModLayout   string
}

type xmlURLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

type xmlURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// SortEntries orders entries newest first by timestamp string, then by URL.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Timestamp != entries[j].Timestamp {
			return entries[i].Timestamp > entries[j].Timestamp
		}
		return entries[i].URL < entries[j].URL
	})
}

// RenderXML renders entries as a sitemap document, newest first. The input
// slice is not reordered.
func RenderXML(entries []Entry, opts XMLOptions) ([]byte, error) {
	opts = opts.withDefaults()
	sorted := append([]Entry(nil), entries...)
	SortEntries(sorted)

	doc := xmlURLSet{XMLNS: Namespace, URLs: make([]xmlURL, 0, len(sorted))}
	for _, entry := range sorted {
		stamp, err := time.Parse(opts.TimestampLayout, entry.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("sitemap: entry %s: timestamp %q: %w", entry.URL, entry.Timestamp, err)
		}
		doc.URLs = append(doc.URLs, xmlURL{
			Loc:        entry.URL,
			LastMod:    stamp.Format(opts.LastModLayout),
			ChangeFreq: opts.ChangeFreq,
			Priority:   opts.Priority,
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	encoder := xml.NewEncoder(&buf)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("sitemap: encode xml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("sitemap: encode xml: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (o XMLOptions) withDefaults() XMLOptions {
	if o.ChangeFreq == "" {
		o.ChangeFreq = "monthly"
	}
	if o.Priority == "" {
		o.Priority = "0.8"
	}
	if o.TimestampLayout == "" {
		o.TimestampLayout = "2006-01-02 15:04:05"
	}
	if o.LastModLayout == "" {
		o.LastModLayout = "2006-01-02"
	}
	return o
}
