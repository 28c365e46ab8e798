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

package env2json

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"
	"github.com/thediveo/env2json/dotenv"
	"github.com/thediveo/env2json/interpolate"
	"golang.org/x/sync/errgroup"

	log "github.com/sirupsen/logrus"
)

// FixturesDir is the directory, relative to the working directory, that is
// scanned for dotenv files.
const FixturesDir = "testdata/fixtures"

const (
	dotenvSuffix = ".env"
	jsonSuffix   = ".json"
)

// Converter converts the dotenv files found in a single directory into JSON
// files next to them.
type Converter struct {
	fs       afero.Fs
	dir      string
	fallback interpolate.Lookup
}

// NewConverter returns a Converter for the dotenv files in the specified
// directory of the passed filesystem. The optional fallback lookup resolves
// variables that aren't defined in the dotenv file itself.
func NewConverter(fsys afero.Fs, dir string, fallback interpolate.Lookup) *Converter {
	return &Converter{
		fs:       fsys,
		dir:      dir,
		fallback: fallback,
	}
}

// OutputPath returns the path of the JSON file for the specified dotenv file
// path, replacing its trailing ".env" with ".json".
func OutputPath(path string) string {
	return strings.TrimSuffix(path, dotenvSuffix) + jsonSuffix
}

// Discover returns the paths of the dotenv files in the converter's directory,
// sorted by name. Only files directly inside the directory whose names end in
// ".env" are considered.
func (c *Converter) Discover() ([]string, error) {
	infos, err := afero.ReadDir(c.fs, c.dir)
	if err != nil {
		return nil, fmt.Errorf("cannot scan for dotenv files, reason: %w", err)
	}
	paths := []string{}
	for _, info := range infos {
		if !strings.HasSuffix(info.Name(), dotenvSuffix) {
			continue
		}
		if info.IsDir() {
			log.Debug(fmt.Sprintf("   skipping directory %q", info.Name()))
			continue
		}
		paths = append(paths, filepath.Join(c.dir, info.Name()))
	}
	return paths, nil
}

// Load reads and parses the specified dotenv file, returning its ordered and
// expanded key-value mapping.
func (c *Converter) Load(path string) (*dotenv.File, error) {
	src, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read dotenv file %q, reason: %w", path, err)
	}
	f, err := dotenv.Parse(bytes.NewReader(src), c.fallback)
	if err != nil {
		return nil, fmt.Errorf("cannot parse dotenv file %q, reason: %w", path, err)
	}
	return f, nil
}

// ConvertFile converts the specified dotenv file into a JSON file next to it,
// creating or overwriting the JSON file. It returns the path of the JSON file.
func (c *Converter) ConvertFile(path string) (string, error) {
	out := OutputPath(path)
	log.Info(fmt.Sprintf("- convert %s ...", out))
	f, err := c.Load(path)
	if err != nil {
		return "", err
	}
	var buff bytes.Buffer
	if err := f.WriteJSON(&buff); err != nil {
		return "", fmt.Errorf("cannot convert %q, reason: %w", path, err)
	}
	if err := afero.WriteFile(c.fs, out, buff.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("cannot write JSON file %q, reason: %w", out, err)
	}
	log.Debug(fmt.Sprintf("   %d keys written to %s", f.Len(), out))
	return out, nil
}

// Run discovers the dotenv files and converts them concurrently. Failing
// conversions don't affect other conversions. Run returns the number of dotenv
// files discovered, together with the errors of all failed conversions. If
// discovering dotenv files fails, Run returns immediately.
func (c *Converter) Run() (int, error) {
	paths, err := c.Discover()
	if err != nil {
		return 0, err
	}
	// Each conversion gets its own error slot, so no locking required.
	errs := make([]error, len(paths))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for idx, path := range paths {
		idx, path := idx, path
		g.Go(func() error {
			if _, err := c.ConvertFile(path); err != nil {
				log.Errorf("%s", err)
				errs[idx] = err
			}
			return nil
		})
	}
	_ = g.Wait()
	log.Info(fmt.Sprintf("done with %d files!", len(paths)))
	return len(paths), errors.Join(errs...)
}
