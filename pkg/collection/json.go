package collection

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// MarshalJSON encodes lists as JSON arrays and any other collection as a JSON object whose members
// follow the collection order.
func (c *Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if c.IsList() {
		buf.WriteByte('[')
		for i, v := range c.Values() {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := json.Marshal(v)
			if err != nil {
				return nil, errors.Wrapf(err, "unable to encode value at index %d", i)
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	}

	buf.WriteByte('{')
	for i, p := range c.Pairs() {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(p.Key.String())
		if err != nil {
			return nil, errors.Wrapf(err, "unable to encode key %s", p.Key)
		}
		buf.Write(name)
		buf.WriteByte(':')
		b, err := json.Marshal(p.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to encode value of key %s", p.Key)
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON array or object into c, replacing its content.
func (c *Collection) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*c = *decoded
	return nil
}

// DecodeJSON reads one JSON array or object from r. Object member order is kept, nested arrays and
// objects become nested collections, integral numbers become int and other numbers float64.
func DecodeJSON(r io.Reader) (*Collection, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(ErrInvalidJSON, err.Error())
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '[' && delim != '{') {
		return nil, errors.Wrapf(ErrInvalidJSON, "expected array or object, got %v", tok)
	}
	return decodeComposite(dec, delim)
}

func decodeComposite(dec *json.Decoder, open json.Delim) (*Collection, error) {
	c := New()
	for dec.More() {
		var key Key
		if open == '{' {
			tok, err := dec.Token()
			if err != nil {
				return nil, errors.Wrap(ErrInvalidJSON, err.Error())
			}
			name, ok := tok.(string)
			if !ok {
				return nil, errors.Wrapf(ErrInvalidJSON, "unexpected object key %v", tok)
			}
			key = Str(name)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		if open == '{' {
			c.Set(key, v)
		} else {
			c.Append(v)
		}
	}
	// closing delimiter
	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrap(ErrInvalidJSON, err.Error())
	}
	return c, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(ErrInvalidJSON, err.Error())
	}
	switch val := tok.(type) {
	case json.Delim:
		return decodeComposite(dec, val)
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return int(n), nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidJSON, "invalid number %s", val)
		}
		return f, nil
	}
	return tok, nil
}
