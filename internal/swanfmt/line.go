// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package swanfmt

import "strings"

// Break marks a position inside a command where the text continues on the
// next line. Render expands it into the continuation marker.
const Break = "\n"

// Continuation is the text that replaces Break in rendered output.
const Continuation = " &\n    "

// CommandSeparator separates commands emitted by one component.
const CommandSeparator = "\n"

// BlockSeparator separates top-level components in a control file.
const BlockSeparator = "\n\n"

// Line accumulates space separated tokens of a single command.
type Line struct {
	b strings.Builder
}

// NewLine starts a line with the given leading tokens.
func NewLine(tokens ...string) *Line {
	l := &Line{}
	l.Add(tokens...)
	return l
}

// Add appends tokens, skipping empty ones.
func (l *Line) Add(tokens ...string) *Line {
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if l.b.Len() > 0 && !strings.HasSuffix(l.b.String(), Break) {
			l.b.WriteByte(' ')
		}
		l.b.WriteString(t)
	}
	return l
}

// Float appends key=value when v is set.
func (l *Line) Float(key string, v *float64) *Line {
	if v != nil {
		l.Add(FloatKV(key, *v))
	}
	return l
}

// Int appends key=value when v is set.
func (l *Line) Int(key string, v *int) *Line {
	if v != nil {
		l.Add(IntKV(key, *v))
	}
	return l
}

// Quoted appends key='value' when v is non-empty.
func (l *Line) Quoted(key, v string) *Line {
	if v != "" {
		l.Add(StringKV(key, v))
	}
	return l
}

// Break starts a continuation line.
func (l *Line) Break() *Line {
	if l.b.Len() > 0 {
		l.b.WriteString(Break)
	}
	return l
}

// Text returns the accumulated command text with Break markers intact.
func (l *Line) Text() string {
	return l.b.String()
}

// Render expands Break markers of a single command into continuation lines.
func Render(cmd string) string {
	return strings.ReplaceAll(cmd, Break, Continuation)
}

// RenderAll renders each command and joins them one per line. Empty commands
// are dropped.
func RenderAll(cmds []string) string {
	out := make([]string, 0, len(cmds))
	for _, c := range cmds {
		if c == "" {
			continue
		}
		out = append(out, Render(c))
	}
	return strings.Join(out, CommandSeparator)
}

// JoinBlocks joins already rendered blocks with a blank line, skipping empty
// ones. There is no trailing separator.
func JoinBlocks(blocks ...string) string {
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b == "" {
			continue
		}
		out = append(out, b)
	}
	return strings.Join(out, BlockSeparator)
}
