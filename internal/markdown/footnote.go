package markdown

import (
	"context"
	"regexp"
	"strconv"
)

var footnoteLabel = regexp.MustCompile(`\[\^([^\]\s]+)\]`)

// footnoteFilter renumbers footnote labels 1..n in order of first
// reference. Definitions follow their references; unreferenced definitions
// are numbered after the referenced ones in document order.
type footnoteFilter struct{}

func (footnoteFilter) Name() string { return "footnote" }

func (footnoteFilter) Apply(_ context.Context, doc *Document, _ FilterEnv) error {
	body := parseBody(doc.Body)

	var referenced, defined []string
	body.rewriteProse(func(chunk []byte) []byte {
		for _, loc := range footnoteLabel.FindAllSubmatchIndex(chunk, -1) {
			label := string(chunk[loc[2]:loc[3]])
			if isFootnoteDefinition(chunk, loc[0], loc[1]) {
				defined = append(defined, label)
			} else {
				referenced = append(referenced, label)
			}
		}
		return chunk
	})

	numbers := map[string]string{}
	for _, label := range append(referenced, defined...) {
		if _, ok := numbers[label]; !ok {
			numbers[label] = strconv.Itoa(len(numbers) + 1)
		}
	}
	if len(numbers) == 0 {
		return nil
	}

	doc.Body = body.rewriteProse(func(chunk []byte) []byte {
		return footnoteLabel.ReplaceAllFunc(chunk, func(match []byte) []byte {
			label := string(match[2 : len(match)-1])
			return []byte("[^" + numbers[label] + "]")
		})
	})
	return nil
}

// isFootnoteDefinition reports a label at the start of a line followed by
// a colon.
func isFootnoteDefinition(chunk []byte, start, stop int) bool {
	if stop >= len(chunk) || chunk[stop] != ':' {
		return false
	}
	for i := start - 1; i >= 0; i-- {
		switch chunk[i] {
		case '\n':
			return true
		case ' ', '\t':
			continue
		default:
			return false
		}
	}
	return true
}
