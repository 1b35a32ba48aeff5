package fsx

import (
	"path"

	"github.com/Abraxas-365/filex/errx"
	"github.com/google/uuid"
)

// content is the in-memory state of a File.
type content interface {
	isContent()
}

// unloaded: nothing has been read or set yet.
type unloaded struct{}

// loaded: read lazily from disk; never refreshed.
type loaded struct{ data []byte }

// pending: set by the caller and not necessarily on disk.
type pending struct{ data []byte }

func (unloaded) isContent() {}
func (loaded) isContent()   {}
func (pending) isContent()  {}

// File is a handle on one path. Content is read from disk on first access
// and reused afterwards. A File is not safe for concurrent use.
type File struct {
	fs    *FS
	path  string
	mode  Mode
	state content
}

// Path returns the normalized path of the handle.
func (f *File) Path() string {
	return f.path
}

// Mode returns the current mode.
func (f *File) Mode() Mode {
	return f.mode
}

// Exists checks the path on disk every time it is called.
func (f *File) Exists() bool {
	return f.fs.Exists(f.path)
}

// Bytes returns the content, reading the file on first use.
func (f *File) Bytes() ([]byte, error) {
	switch st := f.state.(type) {
	case loaded:
		return st.data, nil
	case pending:
		return st.data, nil
	}

	data, err := f.fs.readFile(f.path)
	if err != nil {
		return nil, err
	}
	f.state = loaded{data: data}
	return data, nil
}

// Content returns the content as a string, reading the file on first use.
func (f *File) Content() (string, error) {
	data, err := f.Bytes()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SetContent replaces the in-memory content and switches to write mode.
// Nothing is written until Save.
func (f *File) SetContent(s string) *File {
	f.state = pending{data: []byte(s)}
	f.mode = ModeWrite
	return f
}

// SetMode sets the mode, rejecting values outside the declared set.
func (f *File) SetMode(m Mode) error {
	if !m.Valid() {
		return registry.New(ErrInvalidMode).
			WithDetail("mode", m.String()).
			WithDetail("path", f.path)
	}
	f.mode = m
	return nil
}

// buffered returns whatever is in memory without touching the disk.
func (f *File) buffered() []byte {
	switch st := f.state.(type) {
	case loaded:
		return st.data
	case pending:
		return st.data
	}
	return nil
}

// Save writes the in-memory content using fopen-style flags ("w", "a",
// "x", ...). It does not check the mode; an unloaded handle writes nothing
// but still opens the file, so "w" truncates and "x" creates.
func (f *File) Save(flags string) error {
	flag, err := ParseFlags(flags)
	if err != nil {
		return err
	}
	return f.fs.writeFile(f.path, flag, f.buffered())
}

// SaveAtomic writes the in-memory content to a sibling temp file and
// renames it over the path, so readers never see a partial file.
func (f *File) SaveAtomic() error {
	tmp := path.Join(path.Dir(f.path), "."+path.Base(f.path)+"."+uuid.NewString()+".tmp")

	if err := f.fs.writeExclusive(tmp, f.buffered()); err != nil {
		return err
	}
	if err := f.fs.fs.Rename(tmp, f.path); err != nil {
		_ = f.fs.fs.Remove(tmp)
		return ioError(err, f.path)
	}
	f.fs.logger.Debug("fsx: atomically replaced %s", f.path)
	return nil
}

// Move copies the content to newPath, which must not exist, then deletes
// the original and returns a handle on newPath. If newPath exists the
// original is left untouched. A handle whose file was never saved has no
// original to delete, so Move only writes newPath. A failure after the
// destination was created is not rolled back.
func (f *File) Move(newPath string) (*File, error) {
	dst := normalize(newPath)

	data, err := f.Bytes()
	if err != nil {
		return nil, err
	}
	if err := f.fs.writeExclusive(dst, data); err != nil {
		return nil, err
	}
	if err := f.fs.Delete(f.path); err != nil && !errx.IsCode(err, ErrFileNotFound) {
		return nil, err
	}

	f.fs.logger.Debug("fsx: moved %s to %s", f.path, dst)
	return f.fs.open(dst, ModeRead), nil
}

// Delete removes the file at the handle's path.
func (f *File) Delete() error {
	return f.fs.Delete(f.path)
}

// Metadata loads the content if needed and returns a snapshot of the
// file's attributes.
func (f *File) Metadata() (*Info, error) {
	data, err := f.Bytes()
	if err != nil {
		return nil, err
	}
	return f.fs.Info(f.path, data), nil
}
