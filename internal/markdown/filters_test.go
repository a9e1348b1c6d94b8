package markdown

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func applyFilter(t *testing.T, filter Filter, body string, env FilterEnv) *Document {
	t.Helper()
	doc := &Document{Path: filepath.Join(env.NotesDir, "post.md"), Rel: "post.md", Body: []byte(body)}
	if err := filter.Apply(context.Background(), doc, env); err != nil {
		t.Fatalf("%s.Apply: %v", filter.Name(), err)
	}
	return doc
}

func TestBuildFilters(t *testing.T) {
	chain, err := BuildFilters([]string{"footnote", " Alert ", "footnote", ""})
	if err != nil {
		t.Fatalf("BuildFilters: %v", err)
	}
	if len(chain) != 2 || chain[0].Name() != "footnote" || chain[1].Name() != "alert" {
		t.Fatalf("unexpected chain %v", chain)
	}
	if _, err := BuildFilters([]string{"upload"}); !errors.Is(err, ErrUnknownFilter) {
		t.Fatalf("expected ErrUnknownFilter, got %v", err)
	}
}

func TestAlertFilter(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"titled", "> [!tip] Read this\n> body text\n", "> [!TIP]\n> **Read this**\n> body text\n"},
		{"untitled", "> [!note]\n> body\n", "> [!NOTE]\n> body\n"},
		{"unknown kind", "> [!custom]\n> body\n", "> [!NOTE]\n> body\n"},
		{"plain quote", "> just a quote\n", "> just a quote\n"},
		{"code block", "```\n> [!tip] x\n```\n", "```\n> [!tip] x\n```\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := applyFilter(t, alertFilter{}, tc.in, FilterEnv{})
			if string(doc.Body) != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, doc.Body)
			}
		})
	}
}

func TestEquationFilterRewritesDelimiters(t *testing.T) {
	doc := applyFilter(t, equationFilter{}, "Euler: \\(e^{i\\pi}+1=0\\)\n\n\\[\nx^2\n\\]\n", FilterEnv{})
	want := "Euler: $e^{i\\pi}+1=0$\n\n$$\nx^2\n$$\n"
	if string(doc.Body) != want {
		t.Fatalf("expected %q, got %q", want, doc.Body)
	}
	if !doc.Meta.Math || !doc.Meta.Mathjax {
		t.Fatalf("expected math flags, got %+v", doc.Meta)
	}
}

func TestEquationFilterRewritesMidLineBrackets(t *testing.T) {
	doc := applyFilter(t, equationFilter{}, "Sum is \\[a+b\\] here\n", FilterEnv{})
	if string(doc.Body) != "Sum is $$a+b$$ here\n" {
		t.Fatalf("unexpected body %q", doc.Body)
	}
	if !doc.Meta.Math || !doc.Meta.Mathjax {
		t.Fatalf("expected math flags, got %+v", doc.Meta)
	}
}

func TestEquationFilterIgnoresCodeAndPrices(t *testing.T) {
	doc := applyFilter(t, equationFilter{}, "`$x$` costs $5 and $10\n\n```\n$$y$$\n```\n", FilterEnv{})
	if doc.Meta.Math {
		t.Fatalf("expected no math, body %q", doc.Body)
	}
}

func TestFootnoteFilterRenumbersByFirstReference(t *testing.T) {
	in := "A[^b] and B[^a] and again[^b].\n\n[^a]: second\n[^b]: first\n[^z]: unused\n"
	want := "A[^1] and B[^2] and again[^1].\n\n[^2]: second\n[^1]: first\n[^3]: unused\n"
	doc := applyFilter(t, footnoteFilter{}, in, FilterEnv{})
	if string(doc.Body) != want {
		t.Fatalf("expected %q, got %q", want, doc.Body)
	}
}

func TestLinkFilterRewritesNoteLinks(t *testing.T) {
	links := NewLinkIndex([]*Document{{Rel: "sub/other.md", Meta: Metadata{Title: "Other"}}})
	abbrlink := Abbrlink("Other")
	in := "See [it](other.md#Some-Heading), [[Other#Intro|intro]], [[Missing]] and [ext](https://x.com/a.md).\n"
	want := "See [it](/posts/" + abbrlink + ".html#some-heading), [intro](/posts/" + abbrlink + ".html#intro), [[Missing]] and [ext](https://x.com/a.md).\n"

	doc := applyFilter(t, linkFilter{}, in, FilterEnv{Links: links})
	if string(doc.Body) != want {
		t.Fatalf("expected %q, got %q", want, doc.Body)
	}
}

func TestFigureFilterCopiesLocalImages(t *testing.T) {
	notes := t.TempDir()
	target := t.TempDir()
	if err := os.MkdirAll(filepath.Join(notes, "img"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(notes, "img", "pic.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	in := "![alt](img/pic.png)\n![remote](https://x.com/r.png)\n![gone](img/missing.png)\n"
	doc := applyFilter(t, figureFilter{}, in, FilterEnv{NotesDir: notes, TargetDir: target, FigureDir: "images"})
	want := "![alt](/images/pic.png)\n![remote](https://x.com/r.png)\n![gone](img/missing.png)\n"
	if string(doc.Body) != want {
		t.Fatalf("expected %q, got %q", want, doc.Body)
	}
	if data, err := os.ReadFile(filepath.Join(target, "images", "pic.png")); err != nil || string(data) != "png" {
		t.Fatalf("expected copied figure, got %q %v", data, err)
	}

	doc = applyFilter(t, figureFilter{}, "![alt](img/pic.png)\n", FilterEnv{
		NotesDir:      notes,
		TargetDir:     target,
		FigureDir:     "images",
		FigureBaseURL: "https://cdn.example.com/img/",
	})
	if string(doc.Body) != "![alt](https://cdn.example.com/img/pic.png)\n" {
		t.Fatalf("unexpected body %q", doc.Body)
	}
}

func TestFigureFilterKeepsSameNamedImagesApart(t *testing.T) {
	notes := t.TempDir()
	target := t.TempDir()
	for dir, content := range map[string]string{"x": "IMAGE-X", "y": "IMAGE-Y"} {
		if err := os.MkdirAll(filepath.Join(notes, dir), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(notes, dir, "img.png"), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	env := FilterEnv{NotesDir: notes, TargetDir: target, FigureDir: "images", Figures: NewFigureNames()}
	docA := &Document{Path: filepath.Join(notes, "x", "a.md"), Rel: "x/a.md", Body: []byte("![a](img.png)\n")}
	docB := &Document{Path: filepath.Join(notes, "y", "b.md"), Rel: "y/b.md", Body: []byte("![b](img.png)\n")}
	for _, doc := range []*Document{docA, docB} {
		if err := (figureFilter{}).Apply(context.Background(), doc, env); err != nil {
			t.Fatalf("figure.Apply %s: %v", doc.Rel, err)
		}
	}

	if string(docA.Body) != "![a](/images/img.png)\n" {
		t.Fatalf("unexpected first body %q", docA.Body)
	}
	if string(docB.Body) == string(docA.Body) {
		t.Fatalf("expected distinct figure names, both got %q", docB.Body)
	}

	published := func(body []byte) string {
		s := string(body)
		start := len("![b](/images/")
		return s[start : len(s)-len(")\n")]
	}
	if data, err := os.ReadFile(filepath.Join(target, "images", "img.png")); err != nil || string(data) != "IMAGE-X" {
		t.Fatalf("expected first figure kept, got %q %v", data, err)
	}
	name := published(docB.Body)
	if data, err := os.ReadFile(filepath.Join(target, "images", name)); err != nil || string(data) != "IMAGE-Y" {
		t.Fatalf("expected second figure at %s, got %q %v", name, data, err)
	}

	// Reusing the same source maps to the same name.
	again := &Document{Path: filepath.Join(notes, "y", "c.md"), Rel: "y/c.md", Body: []byte("![c](img.png)\n")}
	if err := (figureFilter{}).Apply(context.Background(), again, env); err != nil {
		t.Fatalf("figure.Apply: %v", err)
	}
	if published(again.Body) != name {
		t.Fatalf("expected %s reused, got %q", name, again.Body)
	}
}
