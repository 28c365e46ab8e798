/*
env2json converts the dotenv files in testdata/fixtures into JSON files.

Each “NAME.env” file directly inside testdata/fixtures gets converted into a
“NAME.json” file next to it. The testdata/fixtures directory is resolved
relative to the current working directory, not to the location of the env2json
binary, so run env2json from the module root, for instance:

	go run ./cmd/env2json

Files that fail to convert are logged and skipped; env2json then exits with
status code 1 after all other files have been converted.

# Usage

	env2json [flags]

# Flags

	    --debug     enable debug logging
	-h, --help      help for env2json
	-v, --version   version for env2json
*/
package main
