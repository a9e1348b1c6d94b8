package markdown

import (
	"io/fs"
	"path"
	"path/filepath"
	"time"
)

// Document is a note moving through the pipeline.
type Document struct {
	// Path is the source location on disk.
	Path string
	// Rel is Path relative to the notes directory, slash separated.
	Rel     string
	ModTime time.Time
	Meta    Metadata
	Body    []byte
}

// Name returns the file name used for the converted output.
func (d *Document) Name() string {
	return baseName(d.Rel)
}

// SourceFile is a discovered note before front matter checks. Err holds a
// read or parse failure for this file only.
type SourceFile struct {
	Document
	Err error
}

func newSourceFile(path, rel string, info fs.FileInfo, data []byte) *SourceFile {
	file := &SourceFile{Document: Document{Path: path, Rel: rel}}
	if info != nil {
		file.ModTime = info.ModTime()
	}
	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		file.Err = err
		return file
	}
	file.Meta = meta
	file.Body = body
	return file
}

func baseName(rel string) string {
	return path.Base(filepath.ToSlash(rel))
}
