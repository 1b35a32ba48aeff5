package fsx

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/Abraxas-365/filex/logx"
	"github.com/spf13/afero"
)

// DefaultPerm is used when a save creates a new file.
const DefaultPerm fs.FileMode = 0o644

// FS resolves paths into File handles on top of an afero filesystem.
type FS struct {
	fs     afero.Fs
	logger *logx.Logger
	perm   fs.FileMode
}

// Option configures an FS
type Option func(*FS)

// WithFs sets the backing filesystem (default: the OS filesystem)
func WithFs(backend afero.Fs) Option {
	return func(s *FS) {
		s.fs = backend
	}
}

// WithLogger sets the logger (default: logx.GetLogger())
func WithLogger(l *logx.Logger) Option {
	return func(s *FS) {
		s.logger = l
	}
}

// WithPerm sets the permission bits for files created by Save and Move
func WithPerm(perm fs.FileMode) Option {
	return func(s *FS) {
		s.perm = perm
	}
}

// New creates an FS
func New(opts ...Option) *FS {
	s := &FS{
		fs:     afero.NewOsFs(),
		logger: logx.GetLogger(),
		perm:   DefaultPerm,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultFS = New()

// Default returns the FS used by the package-level helpers.
func Default() *FS {
	return defaultFS
}

// Path resolves the path on the OS filesystem and requires it to exist.
func Path(format string, args ...any) (*File, error) {
	return defaultFS.Path(format, args...)
}

// Create resolves the path on the OS filesystem. It does not require it to exist.
func Create(format string, args ...any) (*File, error) {
	return defaultFS.Create(format, args...)
}

// NewInfo takes a metadata snapshot of p on the OS filesystem.
func NewInfo(p string, content []byte) *Info {
	return defaultFS.Info(p, content)
}

// ResolvePath substitutes args into format and rewrites backslashes to
// forward slashes. Without args the format is used verbatim.
func ResolvePath(format string, args ...any) string {
	if len(args) == 0 {
		return normalize(format)
	}
	return normalize(fmt.Sprintf(format, args...))
}

func normalize(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// Path returns a read mode handle, failing with ErrFileNotFound when the
// resolved path does not exist.
func (s *FS) Path(format string, args ...any) (*File, error) {
	return s.Open(ResolvePath(format, args...))
}

// Create returns a read mode handle when the resolved path exists and a
// write mode handle otherwise.
func (s *FS) Create(format string, args ...any) (*File, error) {
	return s.OpenOrCreate(ResolvePath(format, args...))
}

// Open is Path for a literal path: no formatting, backslashes still rewritten.
func (s *FS) Open(p string) (*File, error) {
	p = normalize(p)

	ok, err := afero.Exists(s.fs, p)
	if err != nil {
		return nil, ioError(err, p)
	}
	if !ok {
		return nil, registry.NewWithMessage(ErrFileNotFound, fmt.Sprintf("file not found: %s", p)).
			WithDetail("path", p)
	}
	return s.open(p, ModeRead), nil
}

// OpenOrCreate is Create for a literal path.
func (s *FS) OpenOrCreate(p string) (*File, error) {
	p = normalize(p)

	ok, err := afero.Exists(s.fs, p)
	if err != nil {
		return nil, ioError(err, p)
	}
	if ok {
		return s.open(p, ModeRead), nil
	}
	return s.open(p, ModeWrite), nil
}

func (s *FS) open(p string, mode Mode) *File {
	return &File{
		fs:    s,
		path:  p,
		mode:  mode,
		state: unloaded{},
	}
}

// Exists checks p on disk. Stat failures count as absent.
func (s *FS) Exists(p string) bool {
	ok, err := afero.Exists(s.fs, p)
	return err == nil && ok
}

// Delete removes p. A missing path fails with ErrFileNotFound.
func (s *FS) Delete(p string) error {
	p = normalize(p)

	if err := s.fs.Remove(p); err != nil {
		return ioError(err, p)
	}
	s.logger.Debug("fsx: deleted %s", p)
	return nil
}

func (s *FS) readFile(p string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		return nil, ioError(err, p)
	}
	s.logger.Debug("fsx: read %d bytes from %s", len(data), p)
	return data, nil
}

// writeFile opens p with flag, writes data and closes it. A failed close is
// reported as an error because buffered data may not have reached the disk.
func (s *FS) writeFile(p string, flag int, data []byte) (err error) {
	f, err := s.fs.OpenFile(p, flag, s.perm)
	if err != nil {
		return ioError(err, p)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("fsx: close %s: %v", p, cerr)
			if err == nil {
				err = ioError(cerr, p)
			}
		}
	}()

	if _, err := f.Write(data); err != nil {
		return ioError(err, p)
	}
	s.logger.Debug("fsx: wrote %d bytes to %s", len(data), p)
	return nil
}

func (s *FS) writeExclusive(p string, data []byte) error {
	return s.writeFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, data)
}
