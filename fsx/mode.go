package fsx

import (
	"fmt"
	"os"
	"path"
	"strings"
)

// Mode is the read/write intent of a File. It is not an OS permission.
type Mode int

const (
	ModeRead Mode = iota
	ModeWrite
)

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	return m == ModeRead || m == ModeWrite
}

// ParseMode accepts "read" or "write".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "read":
		return ModeRead, nil
	case "write":
		return ModeWrite, nil
	}
	return ModeRead, registry.New(ErrInvalidMode).WithDetail("mode", s)
}

// Type is a structured content format.
type Type int

const (
	TypeUnknown Type = iota
	TypeJSON
	TypeXML
	TypeYAML
	TypeTOML
)

func (t Type) String() string {
	switch t {
	case TypeJSON:
		return "json"
	case TypeXML:
		return "xml"
	case TypeYAML:
		return "yaml"
	case TypeTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// ParseType maps a format name to a Type.
func ParseType(s string) Type {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return TypeJSON
	case "xml":
		return TypeXML
	case "yaml", "yml":
		return TypeYAML
	case "toml":
		return TypeTOML
	default:
		return TypeUnknown
	}
}

// TypeOf derives the content type from the extension of p.
func TypeOf(p string) Type {
	return ParseType(strings.TrimPrefix(path.Ext(p), "."))
}

// ParseFlags translates fopen-style mode strings into os.OpenFile flags.
// Only writable modes are accepted; "b" and "t" are ignored.
//
//	r+  read/write, file must exist
//	w   write, create, truncate        w+  same, read/write
//	a   write, create, append          a+  same, read/write
//	x   write, create, must not exist  x+  same, read/write
//	c   write, create, no truncate     c+  same, read/write
func ParseFlags(s string) (int, error) {
	clean := strings.NewReplacer("b", "", "t", "").Replace(s)

	var flag int
	switch clean {
	case "r+":
		return os.O_RDWR, nil
	case "w", "w+":
		flag = os.O_CREATE | os.O_TRUNC
	case "a", "a+":
		flag = os.O_CREATE | os.O_APPEND
	case "x", "x+":
		flag = os.O_CREATE | os.O_EXCL
	case "c", "c+":
		flag = os.O_CREATE
	default:
		return 0, registry.New(ErrInvalidFlags).WithDetail("flags", s)
	}

	if strings.HasSuffix(clean, "+") {
		return flag | os.O_RDWR, nil
	}
	return flag | os.O_WRONLY, nil
}
