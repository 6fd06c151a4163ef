package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// FileName is the manifest file name inside a generated project.
const FileName = "package.json"

// Document is a decoded JSON object that keeps its keys in source order, so
// a rewritten package.json differs from the original only where it was
// changed. Values are *Document for objects, []any for arrays, json.Number
// for numbers, and string, bool or nil otherwise.
type Document struct {
	keys   []string
	values map[string]any
}

// NewDocument returns an empty object.
func NewDocument() *Document {
	return &Document{values: make(map[string]any)}
}

// Keys returns the keys in order.
func (d *Document) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Get returns the value stored under key.
func (d *Document) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Set stores v under key. A new key is appended; an existing key keeps its
// position.
func (d *Document) Set(key string, v any) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// Dependencies returns the dependencies object, or nil, false if the field
// is absent or not an object.
func (d *Document) Dependencies() (*Document, bool) {
	v, _ := d.Get("dependencies")
	deps, ok := v.(*Document)
	return deps, ok
}

// MarshalJSON writes the object compactly in key order without HTML
// escaping.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	switch v := v.(type) {
	case *Document:
		buf.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeScalar(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeValue(buf, v.values[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return writeScalar(buf, v)
	}
	return nil
}

func writeScalar(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// Decode parses package.json bytes. The top level must be an object.
// Numbers are kept as json.Number so they are written back unchanged.
func Decode(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	doc, ok := v.(*Document)
	if !ok {
		return nil, errors.New("manifest is not a JSON object")
	}
	if _, err := dec.Token(); err == nil {
		return nil, errors.New("unexpected data after manifest object")
	}
	return doc, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := NewDocument()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}

// Encode serializes doc in key order with two-space indentation, no HTML
// escaping, and a trailing newline.
func Encode(doc *Document) ([]byte, error) {
	compact, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Load reads and decodes the manifest at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return doc, nil
}
