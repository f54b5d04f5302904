// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package bundle

import (
	"io"
	"io/fs"
	"os"

	"github.com/absfs/absfs"
)

// FileSystem abstracts the read operations ReadWrinklesD needs, so it
// can run against a real directory or an in-memory memfs in tests.
// Trimmed from the teacher's FileSystem (which also covered
// Create/Mkdir/MkdirAll/WriteFile/Remove for bundle writing) to just
// what a read-only loader uses: wrinkles' bundle package never writes
// a bundle (see bundle/types.go's doc comment), so that surface has
// no caller.
type FileSystem interface {
	// Open opens a file for reading.
	Open(name string) (absfs.File, error)
	// Stat returns file info.
	Stat(name string) (fs.FileInfo, error)
	// ReadFile reads a file's entire contents.
	ReadFile(name string) ([]byte, error)
}

// osFS wraps the os package to implement FileSystem.
type osFS struct{}

// DefaultFS is the default filesystem using os package.
var DefaultFS FileSystem = &osFS{}

func (osFS) Open(name string) (absfs.File, error) {
	return os.Open(name)
}

func (osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// memFSAdapter adapts absfs.FileSystem to our FileSystem interface.
type memFSAdapter struct {
	fs absfs.FileSystem
}

// NewMemFSAdapter creates a FileSystem from an absfs.FileSystem (like memfs).
func NewMemFSAdapter(fs absfs.FileSystem) FileSystem {
	return &memFSAdapter{fs: fs}
}

func (m *memFSAdapter) Open(name string) (absfs.File, error) {
	return m.fs.Open(name)
}

func (m *memFSAdapter) Stat(name string) (fs.FileInfo, error) {
	return m.fs.Stat(name)
}

func (m *memFSAdapter) ReadFile(name string) ([]byte, error) {
	f, err := m.fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
