package fsx

import (
	"bytes"
	"encoding/xml"
	"errors"

	"github.com/BurntSushi/toml"
	"github.com/antchfx/xmlquery"
	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

var (
	errEmptyDocument = errors.New("document decodes to an empty value")
	errNoRootElement = errors.New("document has no root element")
	errInvalidJSON   = errors.New("invalid json")
)

// ContentAsJSON decodes the content as JSON. Invalid JSON and documents
// that decode to an empty value (null, false, 0, "", {} or []) fail with
// ErrParse.
func (f *File) ContentAsJSON() (any, error) {
	data, err := f.Bytes()
	if err != nil {
		return nil, err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, parseError(err, f.path, TypeJSON)
	}
	if falsy(v) {
		return nil, parseError(errEmptyDocument, f.path, TypeJSON)
	}
	return v, nil
}

// DecodeJSON decodes the content into v.
func (f *File) DecodeJSON(v any) error {
	data, err := f.Bytes()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return parseError(err, f.path, TypeJSON)
	}
	return nil
}

// Query looks up a gjson path in the JSON content. A missing key is not an
// error; check Result.Exists.
func (f *File) Query(p string) (gjson.Result, error) {
	data, err := f.Bytes()
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, parseError(errInvalidJSON, f.path, TypeJSON)
	}
	return gjson.GetBytes(data, p), nil
}

// ContentAsXML parses the content into a navigable node tree. The returned
// node is the document; malformed XML or a document without a root element
// fails with ErrParse.
func (f *File) ContentAsXML() (*xmlquery.Node, error) {
	data, err := f.Bytes()
	if err != nil {
		return nil, err
	}

	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, parseError(err, f.path, TypeXML)
	}
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return doc, nil
		}
	}
	return nil, parseError(errNoRootElement, f.path, TypeXML)
}

// ContentAsYAML decodes the content as YAML.
func (f *File) ContentAsYAML() (any, error) {
	data, err := f.Bytes()
	if err != nil {
		return nil, err
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, parseError(err, f.path, TypeYAML)
	}
	return v, nil
}

// ContentAsTOML decodes the content as a TOML table.
func (f *File) ContentAsTOML() (map[string]any, error) {
	data, err := f.Bytes()
	if err != nil {
		return nil, err
	}

	v := map[string]any{}
	if err := toml.Unmarshal(data, &v); err != nil {
		return nil, parseError(err, f.path, TypeTOML)
	}
	return v, nil
}

// Decode decodes the content into v with the decoder matching the file
// extension. XML is bound with encoding/xml struct tags.
func (f *File) Decode(v any) error {
	t := TypeOf(f.path)
	if t == TypeUnknown {
		return registry.New(ErrUnsupportedType).WithDetail("path", f.path)
	}

	data, err := f.Bytes()
	if err != nil {
		return err
	}

	switch t {
	case TypeJSON:
		err = json.Unmarshal(data, v)
	case TypeXML:
		err = xml.Unmarshal(data, v)
	case TypeYAML:
		err = yaml.Unmarshal(data, v)
	case TypeTOML:
		err = toml.Unmarshal(data, v)
	}
	if err != nil {
		return parseError(err, f.path, t)
	}
	return nil
}

// falsy follows loose truthiness: the string "0" is false like "" and 0.
func falsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case float64:
		return val == 0
	case string:
		return val == "" || val == "0"
	case map[string]any:
		return len(val) == 0
	case []any:
		return len(val) == 0
	}
	return false
}
