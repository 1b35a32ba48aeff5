// Package fsx wraps single files behind a small handle with lazy content
// loading, structured decoding and metadata snapshots.
//
// Handles are obtained from a path format and arguments, printf style.
// Backslashes in the resolved path are always rewritten to forward slashes:
//
//	f, err := fsx.Path("data/%s.json", name) // must exist
//	f, err := fsx.Create(`out\%d.txt`, id)   // may not exist yet
//
// Open and OpenOrCreate take a path as is, without formatting.
//
// Content is read on first access and reused afterwards, even if the file
// changes on disk:
//
//	raw, err := f.Content()
//	doc, err := f.ContentAsJSON()
//	root, err := f.ContentAsXML()
//
// Writing is explicit. SetContent switches the handle to write mode and Save
// flushes it with fopen-style flags:
//
//	err := f.SetContent("hello").Save("w")  // truncate
//	err := f.SetContent("more").Save("a")   // append
//	err := f.SetContent("new").Save("x")    // fail if it exists
//
// Every failure is an *errx.Error; check it with errx.IsCode against
// ErrFileNotFound, ErrAlreadyExists, ErrParse and friends.
//
// Use New with WithFs to run the same code against afero.NewMemMapFs().
package fsx
