// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"archive/zip"
	"io"
	"os"
	"strings"

	"github.com/wrinkles-go/wrinkles/composition"
	"github.com/wrinkles-go/wrinkles/docloader"
)

// ReadWrinklesZ reads a .wrinklesz bundle and decodes its content.json
// into a composition tree, mirroring gotio's ReadOTIOZ. Zip archives
// are read directly off disk, as archive/zip requires random access
// that the absfs.File abstraction used elsewhere in this package does
// not guarantee.
func ReadWrinklesZ(path string) (composition.Node, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, &BundleError{Operation: "read", Path: path, Message: "failed to open zip", Cause: err}
	}
	defer r.Close()

	var contentFile *zip.File
	for _, f := range r.File {
		if f.Name == "content.json" {
			contentFile = f
			break
		}
	}
	if contentFile == nil {
		return nil, &BundleError{Operation: "read", Path: path, Message: "missing content.json"}
	}

	rc, err := contentFile.Open()
	if err != nil {
		return nil, &BundleError{Operation: "read", Path: path, Message: "failed to open content.json", Cause: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &BundleError{Operation: "read", Path: path, Message: "failed to read content.json", Cause: err}
	}

	node, err := docloader.LoadBytes(data)
	if err != nil {
		return nil, &BundleError{Operation: "read", Path: path, Message: "failed to parse content.json", Cause: err}
	}
	return node, nil
}

// IsWrinklesZ reports whether path looks like a .wrinklesz bundle file.
func IsWrinklesZ(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return strings.HasSuffix(path, ".wrinklesz")
}
