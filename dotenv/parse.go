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
	"fmt"
	"io"

	"github.com/thediveo/env2json/interpolate"

	log "github.com/sirupsen/logrus"
)

// Escapes in effect inside double-quoted values.
var doubleQuotedEscapes = interpolate.Escapes{
	'n':  "\n",
	'r':  "\r",
	't':  "\t",
	'"':  "\"",
	'\\': "\\",
	'$':  "$",
}

// Escapes in effect in unquoted values; a "\n" stays as it is.
var unquotedEscapes = interpolate.Escapes{
	'\\': "\\",
	'$':  "$",
}

// Parse reads the dotenv source from the specified reader and returns the
// ordered mapping of keys to their fully expanded values. Variables in values
// resolve to the values of keys assigned earlier in the same source, otherwise
// to the values from the fallback lookup, if any.
func Parse(r io.Reader, fallback interpolate.Lookup) (*File, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read dotenv source, reason: %w", err)
	}
	assignments, ignored := Lex(string(src))
	for _, line := range ignored {
		log.Debug(fmt.Sprintf("   ignoring line %d, not an assignment", line))
	}
	f := NewFile()
	lookup := interpolate.Chain(f.Get, fallback)
	for _, assignment := range assignments {
		value, err := assignment.Expand(lookup)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %q in line %d, reason: %w",
				assignment.Key, assignment.Line, err)
		}
		f.Set(assignment.Key, value)
	}
	return f, nil
}

// Expand returns the value of this assignment with escapes and variables
// resolved according to its quoting: single-quoted and backtick-quoted values
// are taken literally.
func (a Assignment) Expand(lookup interpolate.Lookup) (string, error) {
	switch a.Quote {
	case SingleQuoted, BacktickQuoted:
		return a.Raw, nil
	case DoubleQuoted:
		return interpolate.String(a.Raw, doubleQuotedEscapes, lookup)
	default:
		return interpolate.String(a.Raw, unquotedEscapes, lookup)
	}
}
