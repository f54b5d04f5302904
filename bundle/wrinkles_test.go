// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/absfs/absfs"
	"github.com/absfs/memfs"
	"github.com/stretchr/testify/require"

	"github.com/wrinkles-go/wrinkles/composition"
)

// writeMemFile writes data to name on mfs, via the full read-write
// absfs.FileSystem directly — the product-facing FileSystem wrapper
// in this package is read-only, so fixture setup bypasses it.
func writeMemFile(t *testing.T, mfs absfs.FileSystem, name string, data []byte) {
	t.Helper()
	f, err := mfs.Create(name)
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

const sampleDoc = `{
	"OTIO_SCHEMA": "Timeline.1",
	"name": "tl",
	"tracks": {
		"OTIO_SCHEMA": "Stack.1",
		"name": "tracks",
		"children": [
			{
				"OTIO_SCHEMA": "Track.1",
				"name": "V1",
				"children": [
					{"OTIO_SCHEMA": "Clip.1", "name": "a", "media_bounds": {"start": 0, "end": 10}}
				]
			}
		]
	}
}`

func TestReadWrinklesDFromMemFS(t *testing.T) {
	mfs, err := memfs.NewFS()
	require.NoError(t, err)

	require.NoError(t, mfs.MkdirAll("/bundle.wrinklesd", 0755))
	writeMemFile(t, mfs, "/bundle.wrinklesd/content.json", []byte(sampleDoc))
	writeMemFile(t, mfs, "/bundle.wrinklesd/version.txt", []byte(BundleVersion))

	fsys := NewMemFSAdapter(mfs)
	require.True(t, IsWrinklesD(fsys, "/bundle.wrinklesd"))

	node, err := ReadWrinklesD(fsys, "/bundle.wrinklesd")
	require.NoError(t, err)
	tl, ok := node.(*composition.Timeline)
	require.True(t, ok)
	require.Equal(t, "tl", tl.Name())
}

func TestReadWrinklesDMissingContent(t *testing.T) {
	mfs, err := memfs.NewFS()
	require.NoError(t, err)
	require.NoError(t, mfs.MkdirAll("/empty.wrinklesd", 0755))
	fsys := NewMemFSAdapter(mfs)

	_, err = ReadWrinklesD(fsys, "/empty.wrinklesd")
	require.Error(t, err)
	var bundleErr *BundleError
	require.ErrorAs(t, err, &bundleErr)
}

func TestReadWrinklesZRoundTrip(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "bundle.wrinklesz")

	f, err := os.Create(zipPath)
	require.NoError(t, err)
	w := zip.NewWriter(f)

	versionWriter, err := w.Create("version.txt")
	require.NoError(t, err)
	_, err = versionWriter.Write([]byte(BundleVersion))
	require.NoError(t, err)

	contentWriter, err := w.Create("content.json")
	require.NoError(t, err)
	_, err = contentWriter.Write([]byte(sampleDoc))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	require.True(t, IsWrinklesZ(zipPath))

	node, err := ReadWrinklesZ(zipPath)
	require.NoError(t, err)
	tl, ok := node.(*composition.Timeline)
	require.True(t, ok)
	require.Equal(t, "tl", tl.Name())
}

func TestReadWrinklesZMissingContent(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "empty.wrinklesz")

	f, err := os.Create(zipPath)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	_, err = ReadWrinklesZ(zipPath)
	require.Error(t, err)
}
