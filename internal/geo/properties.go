package geo

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// Property is a single key/value entry of a feature's properties.
type Property struct {
	Value Value
	Key   string
}

// Properties is an ordered mapping of property keys to values.
// Document key order is preserved because validation messages follow it.
type Properties []Property

// Get returns the value stored under key.
func (p Properties) Get(key string) (Value, bool) {
	for _, prop := range p {
		if prop.Key == key {
			return prop.Value, true
		}
	}

	return Value{}, false
}

// Has reports whether key is present.
func (p Properties) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Keys returns property keys in order.
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p))
	for _, prop := range p {
		keys = append(keys, prop.Key)
	}

	return keys
}

// Set replaces the value of an existing key in place or appends a new entry.
func (p *Properties) Set(key string, v Value) {
	for i := range *p {
		if (*p)[i].Key == key {
			(*p)[i].Value = v
			return
		}
	}
	*p = append(*p, Property{Key: key, Value: v})
}

// MarshalJSON implements json.Marshaler, keeping key order.
func (p Properties) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(prop.Key)
		if err != nil {
			return nil, err
		}
		val, err := prop.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. A null object decodes as empty.
func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("properties must be an object, got %v", tok)
	}

	props := Properties{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			break
		}

		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v in properties", tok)
		}

		raw, err := readValue(dec)
		if err != nil {
			return fmt.Errorf("property %q: %w", key, err)
		}
		props.Set(key, ValueOf(raw))
	}

	*p = props
	return nil
}

// readValue consumes one complete JSON value from the token stream.
func readValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch d {
	case '{':
		obj := map[string]any{}
		for {
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			if d, ok := tok.(json.Delim); ok && d == '}' {
				return obj, nil
			}
			key, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected token %v", tok)
			}
			if obj[key], err = readValue(dec); err != nil {
				return nil, err
			}
		}

	case '[':
		arr := []any{}
		for {
			if !dec.More() {
				if _, err := dec.Token(); err != nil {
					return nil, err
				}
				return arr, nil
			}
			v, err := readValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}

	default:
		return nil, fmt.Errorf("unexpected delimiter %v", d)
	}
}
