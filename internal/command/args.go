package command

import "strings"

// Args is a tokenized command line. Args[0] is the command name.
type Args []string

// Argc returns the number of tokens, the command name included.
func (a Args) Argc() int {
	return len(a)
}

// Argv returns token i, or "" if there is none.
func (a Args) Argv(i int) string {
	if i < 0 || i >= len(a) {
		return ""
	}
	return a[i]
}

// From joins the tokens from i onward with single spaces.
func (a Args) From(i int) string {
	if i >= len(a) {
		return ""
	}
	if i < 0 {
		i = 0
	}
	return strings.Join(a[i:], " ")
}

// Split breaks text into command lines at newlines and semicolons that
// are not inside quotes, dropping comments and blank lines.
func Split(text string) []string {
	var lines []string
	var cur strings.Builder
	quoted := false

	flush := func() {
		if line := strings.TrimSpace(cur.String()); line != "" {
			lines = append(lines, line)
		}
		cur.Reset()
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			quoted = !quoted
			cur.WriteByte(c)
		case quoted && c != '\n':
			cur.WriteByte(c)
		case c == '\n' || c == '\r':
			quoted = false
			flush()
		case c == ';':
			flush()
		case c == '/' && i+1 < len(text) && text[i+1] == '/':
			for i < len(text) && text[i] != '\n' {
				i++
			}
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return lines
}

// Tokenize splits one command line into arguments.
// An unterminated quote runs to the end of the line.
func Tokenize(line string) Args {
	var args Args
	i := 0
	for {
		for i < len(line) && isSpace(line[i]) {
			i++
		}
		if i >= len(line) {
			return args
		}
		if line[i] == '/' && i+1 < len(line) && line[i+1] == '/' {
			return args
		}

		if line[i] == '"' {
			end := strings.IndexByte(line[i+1:], '"')
			if end < 0 {
				args = append(args, line[i+1:])
				return args
			}
			args = append(args, line[i+1:i+1+end])
			i += end + 2
			continue
		}

		start := i
		for i < len(line) && !isSpace(line[i]) && line[i] != '"' {
			i++
		}
		args = append(args, line[start:i])
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
