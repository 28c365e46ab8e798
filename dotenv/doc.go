/*
Package dotenv parses dotenv files into ordered key-value mappings.

A dotenv file consists of assignments, one per line:

	# comments start with a hash
	KEY=value
	export EXPORTED=value
	SPACED = value
	YAML_STYLE: value

Lines that are neither blank, nor comments, nor assignments are ignored.

# Values

Unquoted values end at the end of the line or at the first “#”, whatever comes
first, and have surrounding whitespace trimmed. Only the escapes “\\” and “\$”
are recognized.

Single-quoted and backtick-quoted values are taken literally and can span
multiple lines.

Double-quoted values can span multiple lines, too, and additionally recognize
the escapes “\n”, “\r”, “\t”, “\"”, “\\”, and “\$”.

A quoted value followed by anything other than blanks and a comment, as well as
a quoted value missing its closing quote, is instead taken as an unquoted value
up to the end of its line, including the quotes.

# Expansion

Unquoted and double-quoted values are expanded using the
[github.com/thediveo/env2json/interpolate] package. Variables resolve to the
values of keys assigned earlier in the same file first, then to an optional
fallback, such as the process environment.
*/
package dotenv
