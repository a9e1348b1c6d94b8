package sitemap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-sitepub/internal/markdown"
	"github.com/goliatone/go-sitepub/pkg/interfaces"
)

var errPostHidden = errors.New("post is hidden")
var errPostMissingAbbrlink = errors.New("post has no abbrlink")

// PostOptions controls how published posts map to sitemap entries.
type PostOptions struct {
	// PostPath is a fmt pattern receiving the abbrlink, e.g. "posts/%s.html".
	PostPath        string
	TimestampLayout string
	// Pattern filters file names; defaults to "*.md".
	Pattern string
}

// Collection is the result of scanning a posts directory.
type Collection struct {
	Entries []Entry
	Skipped []string
}

// URLs returns the set of collected entry URLs.
func (c Collection) URLs() URLSet {
	set := make(URLSet, len(c.Entries))
	for _, entry := range c.Entries {
		set.Add(entry.URL)
	}
	return set
}

// CollectPosts walks fsys recursively and builds one entry per visible post.
// Hidden posts are skipped silently. Posts with unreadable front matter, no
// abbrlink or a malformed updated timestamp are logged and listed as skipped.
func CollectPosts(ctx context.Context, fsys fs.FS, site Site, opts PostOptions, logger interfaces.Logger) (Collection, error) {
	opts = opts.withDefaults()
	var collection Collection

	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if ok, _ := path.Match(opts.Pattern, path.Base(name)); !ok {
			return nil
		}

		entry, err := readPostEntry(fsys, name, site, opts)
		switch {
		case err == nil:
			collection.Entries = append(collection.Entries, entry)
		case errors.Is(err, errPostHidden):
			if logger != nil {
				logger.Debug("sitemap.post.hidden", "path", name)
			}
		default:
			collection.Skipped = append(collection.Skipped, name)
			if logger != nil {
				logger.Warn("sitemap.post.skipped", "path", name, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		return Collection{}, fmt.Errorf("sitemap: scan posts: %w", err)
	}

	sort.Strings(collection.Skipped)
	SortEntries(collection.Entries)
	return collection, nil
}

func readPostEntry(fsys fs.FS, name string, site Site, opts PostOptions) (Entry, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Entry{}, err
	}
	meta, _, err := markdown.ParseFrontMatter(data)
	if err != nil {
		return Entry{}, err
	}
	if meta.Hide || (meta.Sitemap != nil && !*meta.Sitemap) {
		return Entry{}, errPostHidden
	}
	abbrlink := strings.TrimSpace(meta.Abbrlink)
	if abbrlink == "" {
		return Entry{}, errPostMissingAbbrlink
	}
	updated := strings.TrimSpace(meta.Updated)
	if _, err := time.Parse(opts.TimestampLayout, updated); err != nil {
		return Entry{}, fmt.Errorf("updated %q: %w", updated, err)
	}
	return Entry{
		Timestamp: updated,
		URL:       site.URL(fmt.Sprintf(opts.PostPath, abbrlink)),
	}, nil
}

func (o PostOptions) withDefaults() PostOptions {
	if strings.TrimSpace(o.PostPath) == "" {
		o.PostPath = "posts/%s.html"
	}
	if o.TimestampLayout == "" {
		o.TimestampLayout = "2006-01-02 15:04:05"
	}
	if strings.TrimSpace(o.Pattern) == "" {
		o.Pattern = "*.md"
	}
	return o
}
