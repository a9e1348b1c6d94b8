package markdown

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/yuin/goldmark/ast"
)

// LinkIndex maps lowercased note names ("foo.md" and "foo") to abbrlinks.
type LinkIndex map[string]string

// NewLinkIndex indexes documents by file name using the abbrlink their
// title will receive.
func NewLinkIndex(docs []*Document) LinkIndex {
	index := LinkIndex{}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		abbrlink := Abbrlink(doc.Meta.Title)
		name := strings.ToLower(doc.Name())
		index[name] = abbrlink
		index[strings.TrimSuffix(name, ".md")] = abbrlink
	}
	return index
}

// Lookup resolves a note reference such as "dir/Foo.md" or "Foo".
func (idx LinkIndex) Lookup(ref string) (string, bool) {
	name := strings.ToLower(baseName(strings.TrimSpace(ref)))
	if abbrlink, ok := idx[name]; ok {
		return abbrlink, true
	}
	abbrlink, ok := idx[strings.TrimSuffix(name, ".md")]
	return abbrlink, ok
}

var wikiLink = regexp.MustCompile(`(!?)\[\[([^\]|#]+)(#[^\]|]*)?(\|[^\]]*)?\]\]`)

// linkFilter rewrites links between notes ("other.md#Heading" and
// "[[Other#Heading|label]]") to published post URLs.
type linkFilter struct{}

func (linkFilter) Name() string { return "link" }

func (linkFilter) Apply(_ context.Context, doc *Document, env FilterEnv) error {
	body := parseBody(doc.Body)
	replacements := map[string]string{}

	body.walk(func(node ast.Node) ast.WalkStatus {
		link, ok := node.(*ast.Link)
		if !ok {
			return ast.WalkContinue
		}
		dest := string(link.Destination)
		if _, done := replacements[dest]; done || !isLocalReference(dest) {
			return ast.WalkContinue
		}
		target, anchor, _ := strings.Cut(dest, "#")
		if unescaped, err := url.PathUnescape(target); err == nil {
			target = unescaped
		}
		if !strings.EqualFold(pathExt(target), ".md") {
			return ast.WalkContinue
		}
		if href, ok := postHref(env, target, anchor); ok {
			replacements[dest] = href
		} else if env.Logger != nil {
			env.Logger.Warn("markdown.link.unresolved", "path", doc.Rel, "link", dest)
		}
		return ast.WalkContinue
	})

	body = parseBody(body.replaceDestinations(replacements))
	doc.Body = body.rewriteProse(func(chunk []byte) []byte {
		return wikiLink.ReplaceAllFunc(chunk, func(match []byte) []byte {
			parts := wikiLink.FindSubmatch(match)
			if len(parts[1]) > 0 {
				return match
			}
			target := strings.TrimSpace(string(parts[2]))
			anchor := strings.TrimPrefix(string(parts[3]), "#")
			href, ok := postHref(env, target, anchor)
			if !ok {
				if env.Logger != nil {
					env.Logger.Warn("markdown.link.unresolved", "path", doc.Rel, "link", string(match))
				}
				return match
			}
			label := strings.TrimSpace(strings.TrimPrefix(string(parts[4]), "|"))
			if label == "" {
				label = target
				if anchor != "" {
					label += "#" + anchor
				}
			}
			return []byte("[" + label + "](" + href + ")")
		})
	})
	return nil
}

func postHref(env FilterEnv, target, anchor string) (string, bool) {
	abbrlink, ok := env.Links.Lookup(target)
	if !ok {
		return "", false
	}
	pattern := env.PostPath
	if strings.TrimSpace(pattern) == "" {
		pattern = "posts/%s.html"
	}
	href := "/" + strings.TrimLeft(fmt.Sprintf(pattern, abbrlink), "/")
	if anchor = strings.TrimSpace(anchor); anchor != "" {
		href += "#" + anchorSlug(anchor)
	}
	return href, true
}

func anchorSlug(anchor string) string {
	if unescaped, err := url.PathUnescape(anchor); err == nil {
		anchor = unescaped
	}
	if normalized, err := slug.Normalize(anchor); err == nil && normalized != "" {
		return normalized
	}
	return url.PathEscape(anchor)
}

func pathExt(name string) string {
	base := baseName(name)
	if idx := strings.LastIndexByte(base, '.'); idx >= 0 {
		return base[idx:]
	}
	return ""
}
