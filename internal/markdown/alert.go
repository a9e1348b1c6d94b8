package markdown

import (
	"bytes"
	"context"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
)

var calloutPattern = regexp.MustCompile(`^\[!([A-Za-z]+)\]([+-]?)[ \t]*(.*)$`)

// calloutKinds maps Obsidian callout types onto the five GitHub alert kinds.
var calloutKinds = map[string]string{
	"note":      "NOTE",
	"abstract":  "NOTE",
	"summary":   "NOTE",
	"tldr":      "NOTE",
	"info":      "NOTE",
	"todo":      "NOTE",
	"example":   "NOTE",
	"quote":     "NOTE",
	"cite":      "NOTE",
	"question":  "NOTE",
	"help":      "NOTE",
	"faq":       "NOTE",
	"tip":       "TIP",
	"hint":      "TIP",
	"success":   "TIP",
	"check":     "TIP",
	"done":      "TIP",
	"important": "IMPORTANT",
	"warning":   "WARNING",
	"attention": "WARNING",
	"caution":   "CAUTION",
	"failure":   "CAUTION",
	"fail":      "CAUTION",
	"missing":   "CAUTION",
	"danger":    "CAUTION",
	"error":     "CAUTION",
	"bug":       "CAUTION",
}

// alertFilter rewrites Obsidian callouts ("> [!tip] Title") into GitHub
// alerts ("> [!TIP]"), keeping a custom title as a bold first line.
type alertFilter struct{}

func (alertFilter) Name() string { return "alert" }

func (alertFilter) Apply(_ context.Context, doc *Document, _ FilterEnv) error {
	body := parseBody(doc.Body)
	source := body.source
	var edits []edit

	body.walk(func(node ast.Node) ast.WalkStatus {
		quote, ok := node.(*ast.Blockquote)
		if !ok {
			return ast.WalkContinue
		}
		paragraph, ok := quote.FirstChild().(*ast.Paragraph)
		if !ok || paragraph.Lines().Len() == 0 {
			return ast.WalkContinue
		}
		segment := paragraph.Lines().At(0)
		line := bytes.TrimRight(source[segment.Start:segment.Stop], " \t\r\n")
		match := calloutPattern.FindSubmatch(line)
		if match == nil {
			return ast.WalkContinue
		}
		kind, ok := calloutKinds[strings.ToLower(string(match[1]))]
		if !ok {
			kind = "NOTE"
		}

		replacement := "[!" + kind + "]"
		if title := strings.TrimSpace(string(match[3])); title != "" {
			prefix := string(source[lineStart(source, segment.Start):segment.Start])
			replacement += "\n" + prefix + "**" + title + "**"
		}
		edits = append(edits, edit{
			start: segment.Start,
			stop:  segment.Start + len(line),
			text:  []byte(replacement),
		})
		return ast.WalkContinue
	})

	doc.Body = applyEdits(source, edits)
	return nil
}
