package parsers

import "strings"

// lineCursor is a forward-only cursor over source lines.
type lineCursor struct {
	lines []string
	pos   int
}

func newLineCursor(source string) *lineCursor {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	return &lineCursor{lines: strings.Split(source, "\n")}
}

// next returns the current line and advances.
func (c *lineCursor) next() (string, bool) {
	if c.pos >= len(c.lines) {
		return "", false
	}
	line := c.lines[c.pos]
	c.pos++
	return line, true
}

// peekNonBlank returns the next non-blank line without consuming anything,
// along with the number of lines up to and including it.
func (c *lineCursor) peekNonBlank() (string, int, bool) {
	for i := c.pos; i < len(c.lines); i++ {
		if strings.TrimSpace(c.lines[i]) != "" {
			return c.lines[i], i - c.pos + 1, true
		}
	}
	return "", 0, false
}

// advance skips n lines.
func (c *lineCursor) advance(n int) {
	c.pos += n
	if c.pos > len(c.lines) {
		c.pos = len(c.lines)
	}
}

// indentation returns the column of the first non-whitespace character.
// Tabs count as a single column, matching the position-of-first-char rule.
func indentation(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// depthScanner walks s while tracking bracket depth and string literals, calling
// fn for every byte outside a string. Returning false stops the scan.
func depthScanner(s string, angles bool, fn func(i int, c byte, depth int) bool) {
	depth := 0
	var quote byte

	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'':
			quote = c
			continue
		case '(', '[', '{':
			depth++
			continue
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
			continue
		case '<':
			if angles {
				depth++
				continue
			}
		case '>':
			if angles && depth > 0 {
				depth--
				continue
			}
		}

		if !fn(i, c, depth) {
			return
		}
	}
}

// splitTopLevel splits s on sep at bracket depth zero, ignoring separators
// inside string literals. Parts are trimmed; empty parts are kept.
func splitTopLevel(s string, sep byte, angles bool) []string {
	var parts []string
	start := 0
	depthScanner(s, angles, func(i int, c byte, depth int) bool {
		if c == sep && depth == 0 {
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
		return true
	})
	return append(parts, strings.TrimSpace(s[start:]))
}

// indexTopLevel returns the index of the first sep at depth zero, or -1.
func indexTopLevel(s string, sep byte) int {
	idx := -1
	depthScanner(s, false, func(i int, c byte, depth int) bool {
		if c == sep && depth == 0 {
			idx = i
			return false
		}
		return true
	})
	return idx
}

// scanLogicalLine scans one physical Python line. delim is the triple quote
// left open by earlier lines, or "". It returns the triple quote still open at
// the end of the line, the net number of brackets opened outside strings and
// whether the line ends in a backslash continuation.
func scanLogicalLine(line, delim string) (string, int, bool) {
	balance := 0
	var quote byte

	for i := 0; i < len(line); i++ {
		c := line[i]
		if delim != "" {
			switch {
			case c == '\\':
				i++
			case strings.HasPrefix(line[i:], delim):
				i += len(delim) - 1
				delim = ""
			}
			continue
		}
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '#':
			return "", balance, false
		case '"', '\'':
			if triple := strings.Repeat(string(c), 3); strings.HasPrefix(line[i:], triple) {
				delim = triple
				i += 2
			} else {
				quote = c
			}
		case '(', '[', '{':
			balance++
		case ')', ']', '}':
			balance--
		}
	}

	cont := delim == "" && quote == 0 && strings.HasSuffix(strings.TrimRight(line, " \t"), "\\")
	return delim, balance, cont
}

// matchingClose returns the index of the bracket closing the one at open, or -1.
func matchingClose(s string, open int) int {
	depth := 0
	var quote byte
	for i := open; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// stripComment removes a trailing # comment that is not inside a string.
func stripComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '#':
			return strings.TrimRight(line[:i], " \t")
		}
	}
	return line
}
