package section

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Document wraps one decoded section payload and its origin.
type Document struct {
	name   Name
	source Source
	raw    []byte
	data   any
}

// NewDocument decodes raw as JSON. Decode failures are returned as
// *ParseError naming the source.
func NewDocument(name Name, src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("section: source is required")
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return Document{}, &ParseError{Section: name, Source: src.Location(), Err: err}
	}

	clone := append([]byte(nil), raw...)
	return Document{name: name, source: src, raw: clone, data: data}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(name Name, src Source, raw []byte) Document {
	doc, err := NewDocument(name, src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Name returns the section the document belongs to.
func (d Document) Name() Name { return d.name }

// Source returns the origin metadata for the document.
func (d Document) Source() Source { return d.source }

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Raw returns a copy of the undecoded payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Data returns the untyped decoded value.
func (d Document) Data() any { return d.data }

// IsNull reports whether the document carries no usable value: it was never
// set or decoded to null, false, 0 or "". Empty objects and arrays count as
// present.
func (d Document) IsNull() bool {
	switch v := d.data.(type) {
	case nil:
		return true
	case bool:
		return !v
	case float64:
		return v == 0
	case string:
		return v == ""
	default:
		return false
	}
}

// Decode unmarshals the payload into a typed target. Unknown fields are
// ignored so documents can carry extra keys.
func (d Document) Decode(target any) error {
	if d.IsNull() {
		return errors.New("section: document is empty")
	}
	dec := json.NewDecoder(bytes.NewReader(d.raw))
	dec.UseNumber()
	return dec.Decode(target)
}

// Aggregate is the in-memory collection of decoded section documents keyed by
// section name.
type Aggregate map[Name]Document

// Validate fails with *MissingSectionsError when any section in Order is
// absent or null (see IsNull).
func (a Aggregate) Validate() error {
	var missing []Name
	for _, name := range Order {
		doc, ok := a[name]
		if !ok || doc.IsNull() {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingSectionsError{Missing: missing}
	}
	return nil
}

// Get returns the document for name.
func (a Aggregate) Get(name Name) (Document, bool) {
	doc, ok := a[name]
	return doc, ok
}
