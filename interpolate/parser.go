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

package interpolate

import (
	"errors"
	"fmt"
	"strings"
)

// Segment produces plain text upon request with all variables replaced by their
// values or alternate substitution values.
type Segment interface {
	Text(lookup Lookup) (string, error)
}

// Segments is a slice of Segment-implementing objects that produce plain text
// upon request while doing variable substitutions.
type Segments []Segment

// Text returns the plain text from the slice of segments, substituting variable
// values as necessary.
func (segs Segments) Text(lookup Lookup) (string, error) {
	var text strings.Builder
	for _, seg := range segs {
		segtext, err := seg.Text(lookup)
		if err != nil {
			return "", err
		}
		text.WriteString(segtext)
	}
	return text.String(), nil
}

// PlainText is just what it says on the tin: plain text, no substitutes.
type PlainText string

// Text returns plain text without any substitutions
func (pt PlainText) Text(Lookup) (string, error) {
	return string(pt), nil
}

// Substitution represents a particular variable substitution.
type Substitution struct {
	VariableName string   // Name of the variable to substitute
	Operation    string   // either "" for a simple substitution, or one of "-", ":-", etc.
	AltValue     Segments // if non-zero, the alternative value to substitute the variable name with
}

// Text returns the plain text of this segment, substituting variable values
// recursively as necessary. Unset variables without any alternative value
// substitute as empty strings.
func (subst Substitution) Text(lookup Lookup) (string, error) {
	switch subst.Operation {
	case "":
		value, _ := lookup.Get(subst.VariableName)
		return value, nil
	case "?":
		return subst.errorWhenUnset(lookup)
	case ":?":
		return subst.errorWhenUnsetOrEmpty(lookup)
	case "-":
		return subst.defaultWhenUnset(lookup)
	case ":-":
		return subst.defaultWhenUnsetOrEmpty(lookup)
	case "+":
		return subst.replaceWhenSet(lookup)
	case ":+":
		return subst.replaceWhenSetAndNotEmpty(lookup)
	}
	return "", fmt.Errorf("internal error: unknown interpolation operation '%s'", subst.Operation)
}

func (subst Substitution) errorWhenUnset(lookup Lookup) (string, error) {
	value, ok := lookup.Get(subst.VariableName)
	if !ok {
		return "", subst.requiredError(lookup)
	}
	return value, nil
}

func (subst Substitution) errorWhenUnsetOrEmpty(lookup Lookup) (string, error) {
	value, ok := lookup.Get(subst.VariableName)
	if !ok || value == "" {
		return "", subst.requiredError(lookup)
	}
	return value, nil
}

// requiredError returns the error for a required but unset variable, using the
// (interpolated) alternative value as the error message, if present.
func (subst Substitution) requiredError(lookup Lookup) error {
	errtext, err := subst.AltValue.Text(lookup)
	if err != nil {
		return err
	}
	if errtext == "" {
		return fmt.Errorf("%s: required variable is not set", subst.VariableName)
	}
	return errors.New(errtext)
}

func (subst Substitution) defaultWhenUnset(lookup Lookup) (string, error) {
	value, ok := lookup.Get(subst.VariableName)
	if !ok {
		return subst.AltValue.Text(lookup)
	}
	return value, nil
}

func (subst Substitution) defaultWhenUnsetOrEmpty(lookup Lookup) (string, error) {
	value, ok := lookup.Get(subst.VariableName)
	if !ok || value == "" {
		return subst.AltValue.Text(lookup)
	}
	return value, nil
}

func (subst Substitution) replaceWhenSet(lookup Lookup) (string, error) {
	if _, ok := lookup.Get(subst.VariableName); !ok {
		return "", nil
	}
	return subst.AltValue.Text(lookup)
}

func (subst Substitution) replaceWhenSetAndNotEmpty(lookup Lookup) (string, error) {
	value, ok := lookup.Get(subst.VariableName)
	if !ok || value == "" {
		return "", nil
	}
	return subst.AltValue.Text(lookup)
}

// Escapes maps the character following a backslash to the text replacing the
// backslash and this character. Backslashes followed by characters not in the
// map are taken literally, as is the following character.
type Escapes map[byte]string

// Parse the specified string into a list of Segment objects if possible,
// otherwise return an error. Backslash escapes are resolved as specified; a nil
// Escapes treats all backslashes literally.
func Parse(s string, escapes Escapes) (Segments, error) {
	p := parser{escapes: escapes}
	segments, _, err := p.parseRecursive(s, false)
	return segments, err
}

type parser struct {
	escapes Escapes
}

func (p parser) parseRecursive(s string, braced bool) (Segments, int, error) {
	segments := Segments{}
	var text strings.Builder
	for idx := 0; idx < len(s); idx++ {
		switch s[idx] {
		case '\\':
			if idx+1 < len(s) {
				if replacement, ok := p.escapes[s[idx+1]]; ok {
					text.WriteString(replacement)
					idx++
					continue
				}
			}
			text.WriteByte('\\')
		case '$':
			var err error
			idx, segments, err = p.parseVariable(s, idx, &text, segments)
			if err != nil {
				return nil, 0, err
			}
		case '}':
			if braced {
				if text.Len() != 0 {
					segments = append(segments, PlainText(text.String()))
				}
				return segments, idx, nil
			}
			text.WriteByte('}')
		default:
			text.WriteByte(s[idx])
		}
	}
	// Falling off the end of the string while still inside a braced
	// substitution means that the closing brace is missing.
	if braced {
		return nil, 0, errors.New("unclosed braced variable substitution")
	}
	if text.Len() != 0 {
		segments = append(segments, PlainText(text.String()))
	}
	return segments, 0, nil
}

// parseVariable handles a "$" at the specified index, returning the index of
// the last character consumed.
func (p parser) parseVariable(s string, idx int, text *strings.Builder, segments Segments) (int, Segments, error) {
	next := idx + 1
	if next < len(s) {
		switch ch := s[next]; {
		case ch == '{':
			return p.parseBraced(s, next, text, segments)
		case isNameStart(ch):
			idx, segments = parseVariableName(s, next, text, segments)
			return idx, segments, nil
		}
	}
	// A "$" at the end or not followed by a variable name is just a dollar.
	text.WriteByte('$')
	return idx, segments, nil
}

func parseVariableName(s string, idx int, text *strings.Builder, segments Segments) (int, Segments) {
	// An unbraced name of a variable follows, so get its name. Note
	// that before we can emit a variable substitution segment, we
	// need to emit any pending text segment first.
	if text.Len() > 0 {
		segments = append(segments, PlainText(text.String()))
		text.Reset()
	}
	// Note: we already know there's at least one valid character in
	// the name.
	name := parseName(s[idx:])
	idx += len(name) - 1
	return idx, append(segments, Substitution{VariableName: name})
}

func (p parser) parseBraced(s string, idx int, text *strings.Builder, segments Segments) (int, Segments, error) {
	// A braced name ${FOO} of a variable follows, so this is
	// getting a little bit more involved. First, get the name of
	// the variable.
	idx++
	name := parseName(s[idx:])
	if name == "" {
		return 0, nil, errors.New("missing variable name after ${")
	}
	idx += len(name)
	if idx >= len(s) {
		return 0, nil, errors.New("unterminated ${")
	}
	var op string
	switch ch := s[idx]; ch {
	case '}':
		if text.Len() > 0 {
			segments = append(segments, PlainText(text.String()))
			text.Reset()
		}
		return idx, append(segments, Substitution{VariableName: name}), nil
	case '?', '-', '+':
		op = string(ch)
	case ':':
		idx++
		if idx >= len(s) {
			return 0, nil, errors.New("incomplete variable substitution operation")
		}
		switch ch := s[idx]; ch {
		case '?', '-', '+':
			op = ":" + string(ch)
		default:
			return 0, nil, errors.New("invalid variable substitution operation")
		}
	default:
		return 0, nil, errors.New("invalid variable substitution operation")
	}
	// Get the substitution text, which might in turn contain more
	// substitutions...
	idx++
	segs, consumed, err := p.parseRecursive(s[idx:], true)
	if err != nil {
		return 0, nil, err
	}
	if text.Len() > 0 {
		segments = append(segments, PlainText(text.String()))
		text.Reset()
	}
	segments = append(segments, Substitution{
		VariableName: name,
		Operation:    op,
		AltValue:     segs,
	})
	idx += consumed
	return idx, segments, nil
}

func isNameStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// parseName returns the variable name; if the name is "" then no name could be
// found at the beginning of the specified string s.
func parseName(s string) string {
	for idx := 0; idx < len(s); idx++ {
		ch := s[idx]
		if isNameStart(ch) {
			continue
		}
		if idx > 0 && ch >= '0' && ch <= '9' {
			continue
		}
		return s[:idx]
	}
	return s
}
