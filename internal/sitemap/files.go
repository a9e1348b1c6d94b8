package sitemap

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

const maxURLLineBytes = 1 << 20

// ParseURLList reads one URL per line. Surrounding spaces, CR and LF are
// trimmed and blank lines ignored.
func ParseURLList(r io.Reader) (URLSet, error) {
	set := URLSet{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxURLLineBytes)
	for scanner.Scan() {
		if line := strings.Trim(scanner.Text(), " \r\n"); line != "" {
			set.Add(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return set, nil
}

// ReadURLList loads a newline separated URL list from path.
func ReadURLList(path string) (URLSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sitemap: open url list %s: %w", path, err)
	}
	defer file.Close()

	set, err := ParseURLList(file)
	if err != nil {
		return nil, fmt.Errorf("sitemap: read url list %s: %w", path, err)
	}
	return set, nil
}

// ReadOptionalURLList behaves like ReadURLList but treats a missing file as
// an empty set.
func ReadOptionalURLList(path string) (URLSet, error) {
	set, err := ReadURLList(path)
	if errors.Is(err, fs.ErrNotExist) {
		return URLSet{}, nil
	}
	return set, err
}

// FormatURLList renders the set sorted, one URL per line, each followed by a
// newline.
func FormatURLList(set URLSet) []byte {
	var buf bytes.Buffer
	for _, u := range set.Sorted() {
		buf.WriteString(u)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
