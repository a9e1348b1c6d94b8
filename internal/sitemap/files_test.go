package sitemap

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestParseURLListTrimsAndSkipsBlankLines(t *testing.T) {
	set, err := ParseURLList(strings.NewReader("https://a.com/2 \r\n\n  https://a.com/1\nhttps://a.com/2\n"))
	if err != nil {
		t.Fatalf("ParseURLList: %v", err)
	}
	got := set.Sorted()
	if len(got) != 2 || got[0] != "https://a.com/1" || got[1] != "https://a.com/2" {
		t.Fatalf("unexpected set %v", got)
	}
}

func TestFormatURLListSortedWithTrailingNewline(t *testing.T) {
	out := FormatURLList(NewURLSet("https://b.com", "https://a.com"))
	if string(out) != "https://a.com\nhttps://b.com\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if len(FormatURLList(URLSet{})) != 0 {
		t.Fatal("expected empty output for empty set")
	}
}

func TestReadOptionalURLListMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	set, err := ReadOptionalURLList(path)
	if err != nil || set.Len() != 0 {
		t.Fatalf("expected empty set, got %v %v", set, err)
	}
	if _, err := ReadURLList(path); err == nil {
		t.Fatal("expected ReadURLList to fail for a missing file")
	}
}
