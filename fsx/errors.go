package fsx

import (
	"errors"
	"io/fs"

	"github.com/Abraxas-365/filex/errx"
)

var registry = errx.NewRegistry("FSX")

var (
	ErrFileNotFound    = registry.Register("FILE_NOT_FOUND", errx.TypeNotFound, "file not found")
	ErrAlreadyExists   = registry.Register("ALREADY_EXISTS", errx.TypeConflict, "file already exists")
	ErrInvalidMode     = registry.Register("INVALID_MODE", errx.TypeValidation, "invalid file mode")
	ErrInvalidFlags    = registry.Register("INVALID_FLAGS", errx.TypeValidation, "invalid open flags")
	ErrParse           = registry.Register("PARSE", errx.TypeValidation, "content could not be parsed")
	ErrUnsupportedType = registry.Register("UNSUPPORTED_TYPE", errx.TypeValidation, "unsupported file type")
	ErrIO              = registry.Register("IO", errx.TypeSystem, "file operation failed")
)

// ioError classifies an OS error for path. Missing files and existing
// targets get their own codes so callers can branch on them.
func ioError(err error, path string) *errx.Error {
	code := ErrIO
	switch {
	case errors.Is(err, fs.ErrNotExist):
		code = ErrFileNotFound
	case errors.Is(err, fs.ErrExist):
		code = ErrAlreadyExists
	}
	return registry.NewWithCause(code, err).WithDetail("path", path)
}

func parseError(err error, path string, format Type) *errx.Error {
	return registry.NewWithCause(ErrParse, err).
		WithDetail("path", path).
		WithDetail("format", format.String())
}
