// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"path/filepath"
	"strings"

	"github.com/wrinkles-go/wrinkles/composition"
	"github.com/wrinkles-go/wrinkles/docloader"
)

// ReadWrinklesD reads a .wrinklesd bundle directory through fsys and
// decodes its content.json, mirroring gotio's ReadOTIOD. Going through
// the FileSystem abstraction (rather than os directly, as the zip
// reader does) is what lets tests exercise this against an in-memory
// memfs instead of real disk.
func ReadWrinklesD(fsys FileSystem, path string) (composition.Node, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, &BundleError{Operation: "read", Path: path, Message: "bundle directory not found", Cause: err}
	}
	if !info.IsDir() {
		return nil, &BundleError{Operation: "read", Path: path, Message: "path is not a directory"}
	}

	contentPath := filepath.Join(path, "content.json")
	data, err := fsys.ReadFile(contentPath)
	if err != nil {
		return nil, &BundleError{Operation: "read", Path: contentPath, Message: "failed to read content.json", Cause: err}
	}

	node, err := docloader.LoadBytes(data)
	if err != nil {
		return nil, &BundleError{Operation: "read", Path: contentPath, Message: "failed to parse content.json", Cause: err}
	}
	return node, nil
}

// IsWrinklesD reports whether path is a .wrinklesd bundle directory
// containing a content.json, using fsys so callers can probe either a
// real or in-memory filesystem.
func IsWrinklesD(fsys FileSystem, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	if !strings.HasSuffix(path, ".wrinklesd") {
		return false
	}
	contentPath := filepath.Join(path, "content.json")
	if _, err := fsys.Stat(contentPath); err != nil {
		return false
	}
	return true
}
