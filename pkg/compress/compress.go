package compress

import (
	"strings"
)

const (
	BlockCommentOpen  = "/*"
	BlockCommentClose = "*/"
	LineComment       = "//"

	// NewlineEscape replaces every newline in the compressed output.
	NewlineEscape = `\n`
)

// Compress returns the minified, escaped, single-line form of src.
//
// The reductions are applied in order: block comments, line comments,
// newline escaping, tab removal, quote escaping, space collapsing and
// newline-escape collapsing. The pipeline is repeated until the output is
// stable, so Compress(Compress(s)) == Compress(s).
func Compress(src string) string {
	out := compressOnce(src)
	for {
		next := compressOnce(out)
		if next == out {
			return out
		}

		out = next
	}
}

func compressOnce(code string) string {
	code = StripComments(code)
	code = strings.ReplaceAll(code, "\n", NewlineEscape)
	code = strings.ReplaceAll(code, "\t", "")
	code = EscapeQuotes(code)
	code = ClearRepeating(code, " ")
	code = ClearRepeating(code, NewlineEscape)

	return code
}

// StripComments removes block comments and then line comments (including
// their terminating newline) until neither pass changes the text.
func StripComments(code string) string {
	for {
		cleared := ClearAll(code, BlockCommentOpen, BlockCommentClose)
		cleared = ClearAll(cleared, LineComment, "\n")

		if cleared == code {
			return code
		}

		code = cleared
	}
}

// ClearAll removes every substring of s that starts with open and ends with
// the first closing delimiter following it, scanning left to right.
// Delimiters do not nest. An open delimiter without a following closing
// delimiter leaves the rest of s untouched.
func ClearAll(s, open, closing string) string {
	if open == "" || closing == "" {
		return s
	}

	var b strings.Builder

	rest := s
	for {
		i := strings.Index(rest, open)
		if i < 0 {
			break
		}

		j := strings.Index(rest[i+len(open):], closing)
		if j < 0 {
			break
		}

		b.WriteString(rest[:i])
		rest = rest[i+len(open)+j+len(closing):]
	}

	b.WriteString(rest)

	return b.String()
}

// ClearRepeating collapses every run of tok repeated two or more times into a
// single tok, to a fixed point.
func ClearRepeating(s, tok string) string {
	if tok == "" {
		return s
	}

	double := tok + tok
	for {
		cleared := strings.ReplaceAll(s, double, tok)
		if cleared == s {
			return s
		}

		s = cleared
	}
}

// EscapeQuotes prefixes every double quote in s with a backslash. Quotes that
// are already preceded by an odd number of backslashes are left as they are.
func EscapeQuotes(s string) string {
	if !strings.Contains(s, `"`) {
		return s
	}

	var b strings.Builder

	b.Grow(len(s) + strings.Count(s, `"`))

	backslashes := 0
	for i := range len(s) {
		c := s[i]
		switch c {
		case '\\':
			backslashes++
		case '"':
			if backslashes%2 == 0 {
				b.WriteByte('\\')
			}

			backslashes = 0
		default:
			backslashes = 0
		}

		b.WriteByte(c)
	}

	return b.String()
}
