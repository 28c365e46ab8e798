/*
Package interpolate provides shell-like string interpolation of variables, as
found in the values of dotenv files.

This interpolation uses a Bash-like syntax, both in so-called “unbraced” and
“braced” syntax:

	$FOO
	${FOO}

Unbraced names are as long as possible, so $FOO_BAR references “FOO_BAR”, not
“FOO”. But unlike Bash, interpolation can be nested:

	${FOO:-${BAR}}

Unset variables without any default substitute as empty strings. A “$” that is
neither followed by a brace nor by a variable name stays a literal “$”.

# Default

The following substitution

	${VARIABLE:-default}

evaluates to “default” if VARIABLE is unset or empty. In contrast,

	${VARIABLE-default}

evaluates to default only if VARIABLE is unset, but not if it is empty.

# Error

The following substitution

	${VARIABLE:?err}

fails with an error message containing err if VARIABLE is unset or empty. In
constrast,

	${VARIABLE?err}

fails with an error message containing err only if VARIABLE is unset, but not
if it is empty.

# Replacement

	${VARIABLE:+replacement}

replaces with replacement if VARIABLE is set and non-empty, otherwise empty. In
contrast,

	${VARIABLE+replacement}

replaces with replacement if VARIABLE is set, otherwise empty.

# Escapes

Callers decide which backslash escapes are in effect, as dotenv double-quoted
values know more escapes than unquoted values. Escapes are resolved in the same
pass as the substitutions, so an escaped “\$” never starts a substitution.

# Variable Lookup

Variable values are looked up using a [Lookup] function, with [Chain] combining
multiple lookups in order of priority, such as the variables defined so far in
a dotenv file, falling back to the process environment via [Environ].
*/
package interpolate
