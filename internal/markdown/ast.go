package markdown

import (
	"bytes"
	"sort"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var (
	bodyParserOnce sync.Once
	bodyParser     parser.Parser
)

func getBodyParser() parser.Parser {
	bodyParserOnce.Do(func() {
		bodyParser = goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Footnote),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		).Parser()
	})
	return bodyParser
}

type span struct {
	start int
	stop  int
}

// parsedBody pairs Markdown source with its goldmark AST and the byte ranges
// occupied by code, which filters must leave untouched.
type parsedBody struct {
	source []byte
	root   ast.Node
	code   []span
}

func parseBody(source []byte) *parsedBody {
	body := &parsedBody{
		source: source,
		root:   getBodyParser().Parse(text.NewReader(source)),
	}
	_ = ast.Walk(body.root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				segment := lines.At(i)
				body.code = append(body.code, span{start: segment.Start, stop: segment.Stop})
			}
			return ast.WalkSkipChildren, nil
		case *ast.CodeSpan:
			// Include the backtick delimiters around the span content.
			start, stop := -1, -1
			for child := n.FirstChild(); child != nil; child = child.NextSibling() {
				if textNode, ok := child.(*ast.Text); ok {
					if start < 0 {
						start = textNode.Segment.Start
					}
					stop = textNode.Segment.Stop
				}
			}
			if start >= 0 {
				for start > 0 && source[start-1] == '`' {
					start--
				}
				for stop < len(source) && source[stop] == '`' {
					stop++
				}
				body.code = append(body.code, span{start: start, stop: stop})
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	sort.Slice(body.code, func(i, j int) bool { return body.code[i].start < body.code[j].start })
	return body
}

// walk visits every node on entry.
func (b *parsedBody) walk(fn func(node ast.Node) ast.WalkStatus) {
	_ = ast.Walk(b.root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		return fn(node), nil
	})
}

// rewriteProse applies fn to every run of source outside code and returns
// the reassembled document.
func (b *parsedBody) rewriteProse(fn func(chunk []byte) []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(b.source))
	cursor := 0
	for _, code := range b.code {
		if code.start < cursor {
			continue
		}
		out.Write(fn(b.source[cursor:code.start]))
		out.Write(b.source[code.start:code.stop])
		cursor = code.stop
	}
	out.Write(fn(b.source[cursor:]))
	return out.Bytes()
}

// edit replaces source[start:stop] with text.
type edit struct {
	start int
	stop  int
	text  []byte
}

// applyEdits splices non-overlapping edits into source. Overlapping edits
// after the first are dropped.
func applyEdits(source []byte, edits []edit) []byte {
	if len(edits) == 0 {
		return source
	}
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].start < edits[j].start })
	var out bytes.Buffer
	out.Grow(len(source))
	cursor := 0
	for _, e := range edits {
		if e.start < cursor || e.stop > len(source) || e.start > e.stop {
			continue
		}
		out.Write(source[cursor:e.start])
		out.Write(e.text)
		cursor = e.stop
	}
	out.Write(source[cursor:])
	return out.Bytes()
}

// lineStart returns the offset of the first byte of the line holding pos.
func lineStart(source []byte, pos int) int {
	if idx := bytes.LastIndexByte(source[:pos], '\n'); idx >= 0 {
		return idx + 1
	}
	return 0
}

// replaceDestinations swaps inline link and image destinations by exact
// match, outside code.
func (b *parsedBody) replaceDestinations(replacements map[string]string) []byte {
	if len(replacements) == 0 {
		return b.source
	}
	pairs := make([]string, 0, len(replacements)*6)
	for from, to := range replacements {
		pairs = append(pairs,
			"]("+from+")", "]("+to+")",
			"]("+from+" ", "]("+to+" ",
			"](<"+from+">", "](<"+to+">",
		)
	}
	replacer := strings.NewReplacer(pairs...)
	return b.rewriteProse(func(chunk []byte) []byte {
		return []byte(replacer.Replace(string(chunk)))
	})
}
