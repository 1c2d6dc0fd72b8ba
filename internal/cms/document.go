package cms

import (
	"errors"

	"github.com/tidwall/gjson"
)

var (
	errInvalidJSON = errors.New("cms response is not valid JSON")
	errNoData      = errors.New("cms has no data for section")
	errNotObject   = errors.New("cms section document is not an object")
)

// Document is the loosely-typed content of one section. Values are read with
// gjson paths; no schema is enforced. The zero Document is empty and every
// lookup on it reports a missing value.
type Document struct {
	root gjson.Result
}

// ParseDocument unwraps a CMS response envelope into a section Document.
// Both {"data": {"attributes": {...}}} and {"data": {...}} envelopes are
// accepted, as is a bare object without an envelope. A null or empty data
// member means the section has no content.
func ParseDocument(body []byte) (Document, error) {
	if !gjson.ValidBytes(body) {
		return Document{}, errInvalidJSON
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return Document{}, errNotObject
	}

	data := root.Get("data")
	if !data.Exists() {
		if root.Get("error").Exists() {
			return Document{}, errNoData
		}
		return Document{root: root}, nil
	}

	if data.IsArray() {
		data = data.Get("0")
	}
	if data.Type == gjson.Null || !data.Exists() {
		return Document{}, errNoData
	}
	if attrs := data.Get("attributes"); attrs.IsObject() {
		data = attrs
	}
	if !data.IsObject() {
		return Document{}, errNotObject
	}

	return Document{root: data}, nil
}

// NewDocument wraps raw JSON object text as a Document without unwrapping.
// It is meant for defaults and tests.
func NewDocument(raw string) Document {
	return Document{root: gjson.Parse(raw)}
}

// Get returns the value at path. Missing values have Exists() == false.
func (d Document) Get(path string) gjson.Result {
	if d.root.Raw == "" {
		return gjson.Result{}
	}
	return d.root.Get(path)
}

// Root returns the whole document value.
func (d Document) Root() gjson.Result {
	return d.root
}

// Empty reports whether the document carries no content at all.
func (d Document) Empty() bool {
	return d.root.Raw == "" || d.root.Type == gjson.Null
}

// Raw returns the document JSON text.
func (d Document) Raw() string {
	return d.root.Raw
}
