package markdown

import (
	"context"
	"regexp"
)

var (
	displayBracketMath = regexp.MustCompile(`(?s)\\\[(.+?)\\\]`)
	inlineParenMath    = regexp.MustCompile(`(?s)\\\((.+?)\\\)`)
	displayDollarMath  = regexp.MustCompile(`(?s)\$\$.+?\$\$`)
	// Opening "$" is followed by a non-space, closing "$" preceded by a
	// non-space and not followed by a digit.
	inlineDollarMath = regexp.MustCompile(`\$[^\s$](?:[^$\n]*[^\s$])?\$(?:[^0-9]|$)`)
)

// equationFilter normalises TeX delimiters to dollar form and flags
// documents containing math so the theme loads MathJax.
type equationFilter struct{}

func (equationFilter) Name() string { return "equation" }

func (equationFilter) Apply(_ context.Context, doc *Document, _ FilterEnv) error {
	body := parseBody(doc.Body)
	found := false
	doc.Body = body.rewriteProse(func(chunk []byte) []byte {
		chunk = displayBracketMath.ReplaceAll(chunk, []byte("$$$$${1}$$$$"))
		chunk = inlineParenMath.ReplaceAll(chunk, []byte("$$${1}$$"))
		if displayDollarMath.Match(chunk) || inlineDollarMath.Match(chunk) {
			found = true
		}
		return chunk
	})
	if found {
		doc.Meta.Math = true
		doc.Meta.Mathjax = true
	}
	return nil
}

