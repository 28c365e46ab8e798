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
	"strings"
)

// QuoteStyle describes how a value was quoted in its dotenv source.
type QuoteStyle int

const (
	Unquoted QuoteStyle = iota
	SingleQuoted
	DoubleQuoted
	BacktickQuoted
)

// Assignment is a single key-value assignment from a dotenv source, with its
// value still in raw form: quotes removed, but escapes and variables not yet
// resolved.
type Assignment struct {
	Key   string
	Raw   string
	Quote QuoteStyle
	Line  int // line number where the assignment starts, counting from 1.
}

const exportPrefix = "export"

const byteOrderMark = "\ufeff"

// Lex splits dotenv source text into its assignments, in source order. It
// additionally returns the numbers of the lines that are neither blank, nor
// comments, nor assignments; these lines are otherwise ignored. A leading UTF-8
// byte order mark is skipped.
func Lex(src string) (assignments []Assignment, ignored []int) {
	l := lexer{
		src:  strings.ReplaceAll(strings.TrimPrefix(src, byteOrderMark), "\r\n", "\n"),
		line: 1,
	}
	for !l.eof() {
		l.skipBlanks()
		switch {
		case l.eof():
			return
		case l.peek() == '\n':
			l.nextLine()
			continue
		case l.peek() == '#':
			l.restOfLine()
			continue
		}
		line := l.line
		assignment, ok := l.assignment()
		if !ok {
			ignored = append(ignored, line)
			l.restOfLine()
			continue
		}
		assignment.Line = line
		assignments = append(assignments, assignment)
	}
	return
}

type lexer struct {
	src  string
	pos  int
	line int
}

func (l *lexer) eof() bool { return l.pos >= len(l.src) }

func (l *lexer) peek() byte { return l.src[l.pos] }

func (l *lexer) skipBlanks() {
	for !l.eof() && isBlank(l.peek()) {
		l.pos++
	}
}

// nextLine consumes the newline at the current position.
func (l *lexer) nextLine() {
	l.pos++
	l.line++
}

// restOfLine returns the text from the current position up to, but excluding,
// the end of the line, and then consumes the end of the line too.
func (l *lexer) restOfLine() string {
	start := l.pos
	end := strings.IndexByte(l.src[start:], '\n')
	if end < 0 {
		l.pos = len(l.src)
		return l.src[start:]
	}
	l.pos = start + end
	l.nextLine()
	return l.src[start : start+end]
}

// assignment lexes "[export] KEY = VALUE" or "[export] KEY: VALUE", starting at
// a non-blank character. It returns false if there is no valid assignment at
// the current position.
func (l *lexer) assignment() (Assignment, bool) {
	if strings.HasPrefix(l.src[l.pos:], exportPrefix) &&
		l.pos+len(exportPrefix) < len(l.src) &&
		isBlank(l.src[l.pos+len(exportPrefix)]) {
		l.pos += len(exportPrefix)
		l.skipBlanks()
	}
	key := l.key()
	if key == "" {
		return Assignment{}, false
	}
	l.skipBlanks()
	if l.eof() {
		return Assignment{}, false
	}
	switch l.peek() {
	case '=':
		l.pos++
	case ':':
		if l.pos+1 >= len(l.src) || !isBlank(l.src[l.pos+1]) {
			return Assignment{}, false
		}
		l.pos++
	default:
		return Assignment{}, false
	}
	l.skipBlanks()
	raw, quote := l.value()
	return Assignment{Key: key, Raw: raw, Quote: quote}, true
}

func (l *lexer) key() string {
	start := l.pos
	for !l.eof() && isKeyChar(l.peek()) {
		l.pos++
	}
	return l.src[start:l.pos]
}

// value lexes a quoted or unquoted value, consuming the remaining line(s) of
// the assignment.
func (l *lexer) value() (string, QuoteStyle) {
	if !l.eof() {
		if quote, ok := quoteStyles[l.peek()]; ok {
			if raw, ok := l.quoted(quote); ok {
				return raw, quote
			}
		}
	}
	// Unquoted values as well as broken quoted values span only the remaining
	// line and end at the first comment marker.
	raw := l.restOfLine()
	if idx := strings.IndexByte(raw, '#'); idx >= 0 {
		raw = raw[:idx]
	}
	return strings.TrimSpace(raw), Unquoted
}

var quoteStyles = map[byte]QuoteStyle{
	'\'': SingleQuoted,
	'"':  DoubleQuoted,
	'`':  BacktickQuoted,
}

// quoted lexes a quoted value that might span multiple lines, starting at the
// opening quote. The closing quote must only be followed by blanks or a
// comment on the same line, otherwise the position is left unchanged and
// false returned.
func (l *lexer) quoted(quote QuoteStyle) (string, bool) {
	mark := l.peek()
	start := l.pos + 1
	end := -1
	for idx := start; idx < len(l.src); idx++ {
		ch := l.src[idx]
		if ch == '\\' && quote == DoubleQuoted {
			idx++
			continue
		}
		if ch == mark {
			end = idx
			break
		}
	}
	if end < 0 {
		return "", false
	}
	trailer := l.src[end+1:]
	if nl := strings.IndexByte(trailer, '\n'); nl >= 0 {
		trailer = trailer[:nl]
	}
	if trailer = strings.TrimLeft(trailer, " \t"); trailer != "" && trailer[0] != '#' {
		return "", false
	}
	raw := l.src[start:end]
	l.line += strings.Count(raw, "\n")
	l.pos = end + 1
	l.restOfLine()
	return raw, true
}

func isBlank(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

func isKeyChar(ch byte) bool {
	return ch == '_' || ch == '.' || ch == '-' ||
		(ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9')
}
