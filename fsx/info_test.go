package fsx_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Abraxas-365/filex/fsx"
	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfo_ExistingFile(t *testing.T) {
	dir := filepath.ToSlash(t.TempDir())
	p := writeFixture(t, dir, "page.html", "<html><body>hi</body></html>")
	mtime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(p, mtime, mtime))

	content := []byte("<html><body>hi</body></html>")
	info := fsx.NewInfo(p, content)

	assert.True(t, info.Exists())
	assert.Equal(t, dir, info.Dir())
	assert.Equal(t, "page.html", info.Name())
	assert.Equal(t, p, info.FullPath())

	mod, ok := info.LastModified()
	require.True(t, ok)
	assert.True(t, mod.Equal(mtime))

	typ, ok := info.FileType()
	require.True(t, ok)
	assert.Equal(t, "file", typ)

	size, ok := info.Size()
	require.True(t, ok)
	assert.Equal(t, int64(len(content)), size)

	ct, ok := info.ContentType()
	require.True(t, ok)
	assert.Contains(t, ct, "text/html")

	sum, ok := info.Checksum()
	require.True(t, ok)
	assert.Equal(t, xxhash.Sum64(content), sum)
}

func TestInfo_Directory(t *testing.T) {
	dir := filepath.ToSlash(t.TempDir())
	typ, ok := fsx.NewInfo(dir, nil).FileType()
	require.True(t, ok)
	assert.Equal(t, "dir", typ)
}

func TestInfo_Symlink(t *testing.T) {
	dir := t.TempDir()
	target := writeFixture(t, dir, "target.txt", "x")
	link := filepath.ToSlash(filepath.Join(dir, "link.txt"))
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	typ, ok := fsx.NewInfo(link, nil).FileType()
	require.True(t, ok)
	assert.Equal(t, "link", typ)
}

func TestInfo_MissingPath(t *testing.T) {
	info := fsx.NewInfo(`some\dir\missing.txt`, nil)

	assert.False(t, info.Exists())
	assert.Equal(t, "some/dir", info.Dir())
	assert.Equal(t, "missing.txt", info.Name())
	assert.Equal(t, "some/dir/missing.txt", info.FullPath())

	_, ok := info.LastModified()
	assert.False(t, ok)
	_, ok = info.FileType()
	assert.False(t, ok)
	_, ok = info.Size()
	assert.False(t, ok)
	_, ok = info.ContentType()
	assert.False(t, ok)
	_, ok = info.Checksum()
	assert.False(t, ok)
}

func TestInfo_BareName(t *testing.T) {
	info := fsx.NewInfo("file.txt", nil)
	assert.Equal(t, ".", info.Dir())
}
