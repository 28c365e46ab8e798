/*
Package env2json converts dotenv files into JSON files.

A [Converter] scans a single directory (without recursing into
subdirectories) for files ending in “.env”. It parses each such dotenv file,
expanding variables in values, and then writes the resulting keys and values as
a JSON object into a file next to it, with the “.env” suffix replaced by
“.json”. For instance:

	# sample.env
	FOO=bar
	BAZ=${FOO}_baz

becomes

	{
	    "FOO": "bar",
	    "BAZ": "bar_baz"
	}

The JSON objects keep the order of the keys in their dotenv files and are
indented by four spaces, followed by a single newline.

The dotenv files are converted concurrently and independently of each other: a
failing conversion doesn't stop any other conversion.

The env2json command converts the dotenv files in [FixturesDir].
*/
package env2json
