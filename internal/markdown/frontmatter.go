package markdown

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// ErrEmptyFrontMatter reports a document without any front matter keys.
var ErrEmptyFrontMatter = errors.New("markdown: document has no front matter")

// Metadata is the typed front matter record of a note. Keys without a
// dedicated field are preserved in Extra and written back unchanged.
type Metadata struct {
	Title    string         `yaml:"title,omitempty"`
	Date     string         `yaml:"date,omitempty"`
	Updated  string         `yaml:"updated,omitempty"`
	Abbrlink string         `yaml:"abbrlink,omitempty"`
	Hide     bool           `yaml:"hide,omitempty"`
	Hidden   bool           `yaml:"hidden,omitempty"`
	Sitemap  *bool          `yaml:"sitemap,omitempty"`
	Math     bool           `yaml:"math,omitempty"`
	Mathjax  bool           `yaml:"mathjax,omitempty"`
	Extra    map[string]any `yaml:",inline"`
}

// IsEmpty reports whether no front matter key was present.
func (m Metadata) IsEmpty() bool {
	return m.Title == "" &&
		m.Date == "" &&
		m.Updated == "" &&
		m.Abbrlink == "" &&
		!m.Hide &&
		!m.Hidden &&
		m.Sitemap == nil &&
		!m.Math &&
		!m.Mathjax &&
		len(m.Extra) == 0
}

var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// ParseFrontMatter splits source into its YAML front matter and Markdown body.
// Sources without front matter yield empty metadata and the full body.
func ParseFrontMatter(source []byte) (Metadata, []byte, error) {
	var meta Metadata
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta, yamlFormat)
	if err != nil {
		return Metadata{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, body, nil
}

// RenderDocument serialises metadata as a "---" delimited YAML block followed
// by body.
func RenderDocument(meta Metadata, body []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(meta); err != nil {
		return nil, fmt.Errorf("render frontmatter: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("render frontmatter: %w", err)
	}

	buf.WriteString("---\n")
	body = bytes.TrimLeft(body, "\r\n")
	if len(body) > 0 {
		buf.WriteString("\n")
		buf.Write(body)
		if !bytes.HasSuffix(body, []byte("\n")) {
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}
