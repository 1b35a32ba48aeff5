package fsx_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/Abraxas-365/filex/errx"
	"github.com/Abraxas-365/filex/fsx"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.ToSlash(filepath.Join(dir, name))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestPath(t *testing.T) {
	t.Run("existing path opens in read mode", func(t *testing.T) {
		dir := t.TempDir()
		p := writeFixture(t, dir, "a.txt", "hi")

		f, err := fsx.Path("%s", p)
		require.NoError(t, err)
		assert.True(t, f.Exists())
		assert.Equal(t, fsx.ModeRead, f.Mode())
		assert.Equal(t, p, f.Path())
	})

	t.Run("missing path fails with not found", func(t *testing.T) {
		_, err := fsx.Path("%s/missing.txt", t.TempDir())
		require.Error(t, err)
		assert.True(t, errx.IsCode(err, fsx.ErrFileNotFound))
	})

	t.Run("format arguments are substituted", func(t *testing.T) {
		dir := t.TempDir()
		writeFixture(t, dir, "report-7.txt", "x")

		f, err := fsx.Path("%s/report-%d.txt", filepath.ToSlash(dir), 7)
		require.NoError(t, err)
		assert.Equal(t, filepath.ToSlash(dir)+"/report-7.txt", f.Path())
	})
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "a/b/c.txt", fsx.ResolvePath(`a\b\c.txt`))
	assert.Equal(t, "dir/7/x", fsx.ResolvePath(`%s\%d\x`, "dir", 7))
	assert.Equal(t, "100%/file", fsx.ResolvePath("%s", `100%\file`))
}

func TestOpen(t *testing.T) {
	mem := afero.NewMemMapFs()
	s := fsx.New(fsx.WithFs(mem))
	require.NoError(t, afero.WriteFile(mem, "/dir/100%.txt", []byte("full"), 0o644))

	t.Run("literal path is not formatted", func(t *testing.T) {
		f, err := s.Open(`\dir\100%.txt`)
		require.NoError(t, err)
		assert.Equal(t, "/dir/100%.txt", f.Path())
		assert.Equal(t, fsx.ModeRead, f.Mode())

		got, err := f.Content()
		require.NoError(t, err)
		assert.Equal(t, "full", got)
	})

	t.Run("missing path fails with not found", func(t *testing.T) {
		_, err := s.Open("/dir/none.txt")
		require.Error(t, err)
		assert.True(t, errx.IsCode(err, fsx.ErrFileNotFound))
		assert.Contains(t, err.Error(), "/dir/none.txt")
	})

	t.Run("open or create", func(t *testing.T) {
		f, err := s.OpenOrCreate(`\dir\100%.txt`)
		require.NoError(t, err)
		assert.Equal(t, fsx.ModeRead, f.Mode())

		f, err = s.OpenOrCreate("/dir/50%.txt")
		require.NoError(t, err)
		assert.Equal(t, fsx.ModeWrite, f.Mode())
		assert.Equal(t, "/dir/50%.txt", f.Path())
	})
}

func TestCreate(t *testing.T) {
	t.Run("missing path opens in write mode", func(t *testing.T) {
		f, err := fsx.Create("%s/new.txt", filepath.ToSlash(t.TempDir()))
		require.NoError(t, err)
		assert.Equal(t, fsx.ModeWrite, f.Mode())
		assert.False(t, f.Exists())
	})

	t.Run("existing path behaves like Path", func(t *testing.T) {
		p := writeFixture(t, t.TempDir(), "a.txt", "data")

		created, err := fsx.Create("%s", p)
		require.NoError(t, err)
		opened, err := fsx.Path("%s", p)
		require.NoError(t, err)

		assert.Equal(t, fsx.ModeRead, created.Mode())
		assert.Equal(t, opened.Path(), created.Path())

		got, err := created.Content()
		require.NoError(t, err)
		assert.Equal(t, "data", got)
	})
}

func TestExists_RechecksDisk(t *testing.T) {
	p := writeFixture(t, t.TempDir(), "a.txt", "x")
	f, err := fsx.Path("%s", p)
	require.NoError(t, err)

	require.NoError(t, os.Remove(p))
	assert.False(t, f.Exists())
}

func TestContent_LoadedOnce(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/data.txt", []byte("first"), 0o644))
	s := fsx.New(fsx.WithFs(mem))

	f, err := s.Path("/data.txt")
	require.NoError(t, err)

	got, err := f.Content()
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	require.NoError(t, afero.WriteFile(mem, "/data.txt", []byte("second"), 0o644))

	got, err = f.Content()
	require.NoError(t, err)
	assert.Equal(t, "first", got, "content must not be re-read")
}

func TestContent_ReadFailure(t *testing.T) {
	p := writeFixture(t, t.TempDir(), "gone.txt", "x")
	f, err := fsx.Path("%s", p)
	require.NoError(t, err)
	require.NoError(t, os.Remove(p))

	_, err = f.Content()
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, fsx.ErrFileNotFound))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestSetContent(t *testing.T) {
	mem := afero.NewMemMapFs()
	s := fsx.New(fsx.WithFs(mem))
	require.NoError(t, afero.WriteFile(mem, "/a.txt", []byte("disk"), 0o644))

	f, err := s.Path("/a.txt")
	require.NoError(t, err)

	got, err := f.SetContent("x").Content()
	require.NoError(t, err)
	assert.Equal(t, "x", got)
	assert.Equal(t, fsx.ModeWrite, f.Mode())

	onDisk, err := afero.ReadFile(mem, "/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "disk", string(onDisk), "SetContent must not write")
}

func TestSetMode(t *testing.T) {
	f, err := fsx.Create("%s/a.txt", filepath.ToSlash(t.TempDir()))
	require.NoError(t, err)

	require.NoError(t, f.SetMode(fsx.ModeRead))
	assert.Equal(t, fsx.ModeRead, f.Mode())

	require.NoError(t, f.SetMode(fsx.ModeWrite))
	assert.Equal(t, fsx.ModeWrite, f.Mode())

	err = f.SetMode(fsx.Mode(42))
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, fsx.ErrInvalidMode))
	assert.Equal(t, fsx.ModeWrite, f.Mode())
}

func TestSave(t *testing.T) {
	t.Run("write then reopen", func(t *testing.T) {
		dir := filepath.ToSlash(t.TempDir())
		f, err := fsx.Create("%s/out.txt", dir)
		require.NoError(t, err)

		require.NoError(t, f.SetContent("hello").Save("w"))

		fresh, err := fsx.Path("%s/out.txt", dir)
		require.NoError(t, err)
		got, err := fresh.Content()
		require.NoError(t, err)
		assert.Equal(t, "hello", got)
	})

	t.Run("truncates existing content", func(t *testing.T) {
		p := writeFixture(t, t.TempDir(), "a.txt", "a much longer body")
		f, err := fsx.Path("%s", p)
		require.NoError(t, err)

		require.NoError(t, f.SetContent("short").Save("w"))

		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, "short", string(data))
	})

	t.Run("append", func(t *testing.T) {
		p := writeFixture(t, t.TempDir(), "log.txt", "one\n")
		f, err := fsx.Path("%s", p)
		require.NoError(t, err)

		require.NoError(t, f.SetContent("two\n").Save("ab"))

		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, "one\ntwo\n", string(data))
	})

	t.Run("exclusive create on existing file", func(t *testing.T) {
		p := writeFixture(t, t.TempDir(), "a.txt", "keep")
		f, err := fsx.Path("%s", p)
		require.NoError(t, err)

		err = f.SetContent("replace").Save("x")
		require.Error(t, err)
		assert.True(t, errx.IsCode(err, fsx.ErrAlreadyExists))

		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, "keep", string(data))
	})

	t.Run("invalid flags", func(t *testing.T) {
		f, err := fsx.Create("%s/a.txt", filepath.ToSlash(t.TempDir()))
		require.NoError(t, err)

		err = f.SetContent("x").Save("r")
		require.Error(t, err)
		assert.True(t, errx.IsCode(err, fsx.ErrInvalidFlags))
		assert.False(t, f.Exists())
	})

	t.Run("saves in read mode too", func(t *testing.T) {
		p := writeFixture(t, t.TempDir(), "a.txt", "same")
		f, err := fsx.Path("%s", p)
		require.NoError(t, err)
		_, err = f.Content()
		require.NoError(t, err)

		require.NoError(t, f.Save("w"))
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, "same", string(data))
	})

	t.Run("missing directory", func(t *testing.T) {
		f, err := fsx.Create("%s/no/such/dir/a.txt", filepath.ToSlash(t.TempDir()))
		require.NoError(t, err)

		err = f.SetContent("x").Save("w")
		require.Error(t, err)
		assert.True(t, errx.IsType(err, errx.TypeNotFound) || errx.IsType(err, errx.TypeSystem))
	})
}

func TestSaveAtomic(t *testing.T) {
	dir := t.TempDir()
	p := writeFixture(t, dir, "a.txt", "old")
	f, err := fsx.Path("%s", p)
	require.NoError(t, err)

	require.NoError(t, f.SetContent("new").SaveAtomic())

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestDelete(t *testing.T) {
	t.Run("just created file", func(t *testing.T) {
		dir := filepath.ToSlash(t.TempDir())
		f, err := fsx.Create("%s/a.txt", dir)
		require.NoError(t, err)
		require.NoError(t, f.SetContent("x").Save("w"))
		require.True(t, f.Exists())

		require.NoError(t, f.Delete())
		assert.False(t, f.Exists())
	})

	t.Run("missing path fails", func(t *testing.T) {
		err := fsx.Default().Delete(filepath.ToSlash(t.TempDir()) + "/missing.txt")
		require.Error(t, err)
		assert.True(t, errx.IsCode(err, fsx.ErrFileNotFound))
	})

	t.Run("other path", func(t *testing.T) {
		dir := t.TempDir()
		other := writeFixture(t, dir, "other.txt", "x")
		p := writeFixture(t, dir, "self.txt", "x")
		f, err := fsx.Path("%s", p)
		require.NoError(t, err)

		require.NoError(t, fsx.Default().Delete(other))
		assert.True(t, f.Exists())
		_, err = os.Stat(other)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})
}

func TestMove(t *testing.T) {
	t.Run("moves content and removes source", func(t *testing.T) {
		dir := t.TempDir()
		src := writeFixture(t, dir, "src.txt", "payload")
		dst := filepath.ToSlash(filepath.Join(dir, "dst.txt"))

		f, err := fsx.Path("%s", src)
		require.NoError(t, err)

		moved, err := f.Move(dst)
		require.NoError(t, err)
		assert.Equal(t, dst, moved.Path())
		assert.Equal(t, fsx.ModeRead, moved.Mode())
		assert.False(t, f.Exists())

		got, err := moved.Content()
		require.NoError(t, err)
		assert.Equal(t, "payload", got)
	})

	t.Run("existing destination leaves source untouched", func(t *testing.T) {
		dir := t.TempDir()
		src := writeFixture(t, dir, "src.txt", "payload")
		dst := writeFixture(t, dir, "dst.txt", "occupied")

		f, err := fsx.Path("%s", src)
		require.NoError(t, err)

		moved, err := f.Move(dst)
		require.Error(t, err)
		assert.Nil(t, moved)
		assert.True(t, errx.IsCode(err, fsx.ErrAlreadyExists))

		data, err := os.ReadFile(src)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
		data, err = os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "occupied", string(data))
	})

	t.Run("moves pending content", func(t *testing.T) {
		mem := afero.NewMemMapFs()
		s := fsx.New(fsx.WithFs(mem))
		require.NoError(t, afero.WriteFile(mem, "/a.txt", []byte("disk"), 0o644))

		f, err := s.Path("/a.txt")
		require.NoError(t, err)

		moved, err := f.SetContent("memory").Move(`\b.txt`)
		require.NoError(t, err)
		assert.Equal(t, "/b.txt", moved.Path())

		data, err := afero.ReadFile(mem, "/b.txt")
		require.NoError(t, err)
		assert.Equal(t, "memory", string(data))
		exists, err := afero.Exists(mem, "/a.txt")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("unsaved handle only writes destination", func(t *testing.T) {
		mem := afero.NewMemMapFs()
		s := fsx.New(fsx.WithFs(mem))

		f, err := s.Create("/draft.txt")
		require.NoError(t, err)
		require.Equal(t, fsx.ModeWrite, f.Mode())

		moved, err := f.SetContent("draft").Move("/final.txt")
		require.NoError(t, err)
		assert.Equal(t, "/final.txt", moved.Path())

		data, err := afero.ReadFile(mem, "/final.txt")
		require.NoError(t, err)
		assert.Equal(t, "draft", string(data))
		exists, err := afero.Exists(mem, "/draft.txt")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestMetadata(t *testing.T) {
	p := writeFixture(t, t.TempDir(), "doc.json", `{"a":1}`)
	f, err := fsx.Path("%s", p)
	require.NoError(t, err)

	info, err := f.Metadata()
	require.NoError(t, err)

	assert.Equal(t, "doc.json", info.Name())
	assert.Equal(t, p, info.FullPath())

	size, ok := info.Size()
	require.True(t, ok)
	assert.Equal(t, int64(7), size)

	_, ok = info.Checksum()
	assert.True(t, ok, "metadata forces content to load")
}

func TestMetadata_MissingFile(t *testing.T) {
	f, err := fsx.Create("%s/none.txt", filepath.ToSlash(t.TempDir()))
	require.NoError(t, err)

	_, err = f.Metadata()
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, fsx.ErrFileNotFound))
}
