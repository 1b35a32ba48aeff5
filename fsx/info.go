package fsx

import (
	"io/fs"
	"path"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

// Info is an immutable snapshot of a path's attributes taken when it was
// built. Fields backed by the filesystem are absent when the path did not
// exist; content-backed fields are absent when no content was supplied.
type Info struct {
	dir      string
	name     string
	fullPath string

	exists   bool
	modTime  time.Time
	fileType string
	size     int64

	hasContent  bool
	contentType string
	checksum    uint64
}

// Info stats p once and builds a snapshot. content may be nil.
func (s *FS) Info(p string, content []byte) *Info {
	p = normalize(p)
	info := &Info{
		dir:      path.Dir(p),
		name:     path.Base(p),
		fullPath: p,
	}

	if fi, err := s.lstat(p); err == nil {
		info.exists = true
		info.modTime = fi.ModTime()
		info.fileType = fileType(fi.Mode())
		info.size = fi.Size()
	}

	if content != nil {
		info.hasContent = true
		info.contentType = mimetype.Detect(content).String()
		info.checksum = xxhash.Sum64(content)
	}
	return info
}

func (s *FS) lstat(p string) (fs.FileInfo, error) {
	if l, ok := s.fs.(afero.Lstater); ok {
		fi, _, err := l.LstatIfPossible(p)
		return fi, err
	}
	return s.fs.Stat(p)
}

func fileType(m fs.FileMode) string {
	switch {
	case m.IsRegular():
		return "file"
	case m.IsDir():
		return "dir"
	case m&fs.ModeSymlink != 0:
		return "link"
	case m&fs.ModeNamedPipe != 0:
		return "fifo"
	case m&fs.ModeCharDevice != 0:
		return "char"
	case m&fs.ModeDevice != 0:
		return "block"
	case m&fs.ModeSocket != 0:
		return "socket"
	default:
		return "unknown"
	}
}

// Dir returns the parent directory ("." for a bare name).
func (i *Info) Dir() string { return i.dir }

// Name returns the last path element.
func (i *Info) Name() string { return i.name }

// FullPath returns the normalized path the snapshot was taken for.
func (i *Info) FullPath() string { return i.fullPath }

// Exists reports whether the path existed at snapshot time.
func (i *Info) Exists() bool { return i.exists }

func (i *Info) LastModified() (time.Time, bool) { return i.modTime, i.exists }

// FileType is one of file, dir, link, fifo, char, block, socket or unknown.
func (i *Info) FileType() (string, bool) { return i.fileType, i.exists }

func (i *Info) Size() (int64, bool) { return i.size, i.exists }

// ContentType is the MIME type sniffed from the content.
func (i *Info) ContentType() (string, bool) { return i.contentType, i.hasContent }

// Checksum is the xxhash64 of the content.
func (i *Info) Checksum() (uint64, bool) { return i.checksum, i.hasContent }
