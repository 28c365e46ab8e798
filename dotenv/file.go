// Copyright 2026 by Harald Albrecht
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy
// of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations
// under the License.

package dotenv

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// JSONIndent is the indentation used when writing a File as JSON.
const JSONIndent = "    "

// File is an ordered mapping of keys to (expanded) values, as parsed from a
// single dotenv file. Keys keep the position of their first assignment, while
// later assignments of the same key replace its value.
type File struct {
	keys   []string
	values map[string]string
}

// NewFile returns a new, empty File.
func NewFile() *File {
	return &File{values: map[string]string{}}
}

// Set the value of the specified key, appending the key if it is new.
func (f *File) Set(key, value string) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Get returns the value of the specified key and whether the key exists. Get
// can be directly used as an interpolate.Lookup.
func (f *File) Get(key string) (string, bool) {
	value, ok := f.values[key]
	return value, ok
}

// Keys returns the keys in order.
func (f *File) Keys() []string {
	return slices.Clone(f.keys)
}

// Len returns the number of keys.
func (f *File) Len() int { return len(f.keys) }

// Map returns the key-value pairs as an (unordered) map.
func (f *File) Map() map[string]string {
	return maps.Clone(f.values)
}

// MarshalJSON returns the compact JSON object representation, with the object
// members in key order.
func (f *File) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	b.WriteByte('{')
	for idx, key := range f.keys {
		if idx > 0 {
			b.WriteByte(',')
		}
		if err := encodeString(enc, &b, key); err != nil {
			return nil, err
		}
		b.WriteByte(':')
		if err := encodeString(enc, &b, f.values[key]); err != nil {
			return nil, err
		}
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// encodeString appends the JSON string for s to b, dropping the newline the
// encoder always adds. Line and paragraph separators are kept raw.
func encodeString(enc *json.Encoder, b *bytes.Buffer, s string) error {
	start := b.Len()
	if err := enc.Encode(s); err != nil {
		return err
	}
	quoted := rawLineSeparators(b.Bytes()[start : b.Len()-1])
	b.Truncate(start)
	b.Write(quoted)
	return nil
}

var (
	lineSeparatorEscape      = []byte(`u2028`)
	paragraphSeparatorEscape = []byte(`u2029`)
)

// rawLineSeparators returns a copy of the quoted JSON string with its \u2028
// and \u2029 escapes turned back into raw characters.
func rawLineSeparators(quoted []byte) []byte {
	out := make([]byte, 0, len(quoted))
	for idx := 0; idx < len(quoted); idx++ {
		ch := quoted[idx]
		if ch != '\\' || idx+1 >= len(quoted) {
			out = append(out, ch)
			continue
		}
		rest := quoted[idx+1:]
		switch {
		case bytes.HasPrefix(rest, lineSeparatorEscape):
			out = append(out, "\u2028"...)
			idx += len(lineSeparatorEscape)
		case bytes.HasPrefix(rest, paragraphSeparatorEscape):
			out = append(out, "\u2029"...)
			idx += len(paragraphSeparatorEscape)
		default:
			out = append(out, ch, quoted[idx+1])
			idx++
		}
	}
	return out
}

// UnmarshalJSON reads a JSON object with string values only, keeping the order
// of the object members.
func (f *File) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return errors.New("expected JSON object")
	}
	*f = *NewFile()
	for dec.More() {
		keytok, err := dec.Token()
		if err != nil {
			return err
		}
		valtok, err := dec.Token()
		if err != nil {
			return err
		}
		value, ok := valtok.(string)
		if !ok {
			return fmt.Errorf("value of %q is not a string", keytok)
		}
		f.Set(keytok.(string), value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// WriteJSON writes the File as a JSON object indented by four spaces, followed
// by a single newline.
func (f *File) WriteJSON(w io.Writer) error {
	b, err := f.MarshalJSON()
	if err != nil {
		return fmt.Errorf("cannot generate JSON, reason: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, b, "", JSONIndent); err != nil {
		return fmt.Errorf("cannot generate JSON, reason: %w", err)
	}
	out.WriteByte('\n')
	if _, err := w.Write(out.Bytes()); err != nil {
		return fmt.Errorf("cannot write JSON, reason: %w", err)
	}
	return nil
}
