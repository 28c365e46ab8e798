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

package main

import (
	"fmt"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/thediveo/env2json"
	"github.com/thediveo/env2json/interpolate"
	"golang.org/x/exp/slices"
)

const (
	debugFlag = "debug"
)

func buildInfo(info *debug.BuildInfo, key string) string {
	idx := slices.IndexFunc(info.Settings,
		func(setting debug.BuildSetting) bool {
			return setting.Key == key
		})
	if idx < 0 {
		return ""
	}
	return info.Settings[idx].Value
}

func newRootCmd() (rootCmd *cobra.Command) {
	rootCmd = &cobra.Command{
		Use:          "env2json [flags]",
		Short:        "env2json converts the dotenv files in " + env2json.FixturesDir + " into JSON files",
		Version:      "(devel)",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if enabled, _ := cmd.Flags().GetBool(debugFlag); enabled {
				log.SetLevel(log.DebugLevel)
			}
			log.Debug(fmt.Sprintf("env2json %s", rootCmd.Version))

			_, err := env2json.NewConverter(
				afero.NewOsFs(), env2json.FixturesDir, interpolate.Environ).Run()
			return err
		},
	}
	rootCmd.Flags().Bool(debugFlag, false,
		"enable debug logging")

	if info, biok := debug.ReadBuildInfo(); biok {
		commit := buildInfo(info, "vcs.revision")
		if commit != "" {
			modified := ""
			if buildInfo(info, "vcs.modified") == "true" {
				modified = " (modified)"
			}
			rootCmd.Version = fmt.Sprintf("commit %s%s", commit[:8], modified)
		} else if modver := info.Main.Version; modver != "" {
			rootCmd.Version = modver
		}
	}

	return rootCmd
}
