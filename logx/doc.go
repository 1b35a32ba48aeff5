// Package logx provides leveled logging configured from the environment.
//
// Environment Variables:
//   - LOG_LEVEL: minimum level (TRACE, DEBUG, INFO, WARN, ERROR, OFF)
//   - LOG_FORMAT: console or json
//   - LOG_COLOR: colored level labels (true/false, default: true)
//   - LOG_CALLER: caller file:line (true/false, default: true)
//
// Basic Usage:
//
//	logx.Info("saved %s", path)
//	logx.Debug("read %d bytes from %s", n, path)
//
// Console Format:
//
//	[2025-06-08 18:57:52] [DEBUG] file.go:64: read 12 bytes from data/a.json
//
// JSON Format:
//
//	{"caller":"file.go:64","level":"DEBUG","message":"read 12 bytes from data/a.json","timestamp":"2025-06-08T18:57:52Z"}
package logx
