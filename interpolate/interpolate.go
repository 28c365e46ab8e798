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
	"fmt"
	"os"
)

// Lookup returns the value of the named variable and whether the variable is
// set at all, in the manner of os.LookupEnv.
type Lookup func(name string) (value string, ok bool)

// Get looks up the named variable. A nil Lookup knows no variables at all.
func (l Lookup) Get(name string) (string, bool) {
	if l == nil {
		return "", false
	}
	return l(name)
}

// Environ looks up variables in the process environment.
var Environ Lookup = os.LookupEnv

// Map returns a Lookup for the variables in the passed map.
func Map(vars map[string]string) Lookup {
	return func(name string) (string, bool) {
		value, ok := vars[name]
		return value, ok
	}
}

// Chain returns a Lookup that tries the passed lookups in order; the first
// lookup knowing a variable wins. Nil lookups are skipped.
func Chain(lookups ...Lookup) Lookup {
	return func(name string) (string, bool) {
		for _, lookup := range lookups {
			if value, ok := lookup.Get(name); ok {
				return value, true
			}
		}
		return "", false
	}
}

// String interpolates the specified string value, resolving backslash escapes
// as specified and substituting variables from the passed lookup. Errors never
// include the value itself, as it might be a secret.
func String(value string, escapes Escapes, lookup Lookup) (string, error) {
	segments, err := Parse(value, escapes)
	if err != nil {
		return "", fmt.Errorf("invalid variable substitution, reason: %w", err)
	}
	return segments.Text(lookup)
}
