/*
Package templatetest exposes a mock fs.FS that implements basic file operations.
Used in unit tests for the purposes of avoiding the use of testdata/ directories when unit testing template rendering.

Cribbed from Mark Bates: https://www.gopherguides.com/articles/golang-1.16-io-fs-improve-test-performance
*/
package templatetest

import (
	"bytes"
	"io/fs"
	"os"
	"time"

	"github.com/xy-planning-network/onerror/http/template"
)

// NewParser constructs a *template.Parse searching the mocked files
// before the embedded templates.
func NewParser(files ...*MockFile) *template.Parse {
	return template.NewParser(template.WithFS(NewMockFS(files...)))
}

// MockFS is an fs.FS holding MockFiles by name.
type MockFS []*MockFile

func NewMockFS(files ...*MockFile) fs.FS { return append(MockFS{}, files...) }

// Open returns a fresh reader over the named MockFile's data.
func (mfs MockFS) Open(name string) (fs.File, error) {
	for _, f := range mfs {
		if f.name == name {
			return &openFile{MockFile: f, r: bytes.NewReader(f.data)}, nil
		}
	}

	return nil, &fs.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
}

// A MockFile is an in-memory file implementing fs.FileInfo.
type MockFile struct {
	data    []byte
	modTime time.Time
	name    string
}

func NewMockFile(name string, data []byte) *MockFile {
	return &MockFile{data: data, name: name}
}

func (m *MockFile) Name() string       { return m.name }
func (m *MockFile) IsDir() bool        { return false }
func (m *MockFile) Mode() fs.FileMode  { return 0o444 }
func (m *MockFile) ModTime() time.Time { return m.modTime }
func (m *MockFile) Size() int64        { return int64(len(m.data)) }
func (m *MockFile) Sys() any           { return nil }

type openFile struct {
	*MockFile
	r *bytes.Reader
}

func (f *openFile) Close() error               { return nil }
func (f *openFile) Read(p []byte) (int, error) { return f.r.Read(p) }
func (f *openFile) Stat() (fs.FileInfo, error) { return f.MockFile, nil }
