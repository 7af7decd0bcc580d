package template

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

// DefaultErrTmpl names the embedded error page.
const DefaultErrTmpl = "tmpl/error.tmpl"

//go:embed tmpl/*
var pkgFS embed.FS

// mergeFS implements fs.FS by searching layers in order.
type mergeFS struct {
	// A cache for minimizing ascertaining which layer holds the template.
	cache map[string]fs.FS
	mu    sync.RWMutex

	layers []fs.FS
}

func newMergeFS(layers ...fs.FS) *mergeFS {
	return &mergeFS{cache: make(map[string]fs.FS), layers: layers}
}

// Open opens the file matching the name from the first layer holding it.
//
// Whenever a file is found and is not present in the cache, it is added.
// Nothing removes references from the cache.
// If a file is removed from a layer during runtime,
// a reference to it from the cache returns the same error
// as if the cache did not have that reference.
func (mfs *mergeFS) Open(name string) (fs.File, error) {
	mfs.mu.RLock()
	layer, ok := mfs.cache[name]
	mfs.mu.RUnlock()
	if ok {
		return layer.Open(name)
	}

	var err error
	for _, layer := range mfs.layers {
		var file fs.File
		file, err = layer.Open(name)
		if err == nil {
			mfs.mu.Lock()
			mfs.cache[name] = layer
			mfs.mu.Unlock()

			return file, nil
		}

		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrInvalid) {
			return nil, fmt.Errorf("unable to open template: %w", err)
		}
	}

	return nil, fmt.Errorf("could not open template %s: %w", name, fs.ErrNotExist)
}
