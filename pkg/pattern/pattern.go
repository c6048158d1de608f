package pattern

import (
	"path"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

const (
	SyntaxGlob   = "glob"
	SyntaxRegexp = "regexp"
)

// Pattern decides whether a file name belongs to a mask.
type Pattern interface {
	Matches(name string) bool
}

// Glob matches with fnmatch semantics: '*', '?', '[...]' and '[!...]'.
// Backslash is an ordinary character. A Glob holds the expression already
// translated to path.Match syntax, see Compile.
type Glob string

func (g Glob) Matches(name string) bool {
	ok, err := path.Match(string(g), name)
	return err == nil && ok
}

// Regexp matches when the expression matches the whole name.
type Regexp struct {
	re *regexp.Regexp
}

func (r *Regexp) Matches(name string) bool {
	return r.re.MatchString(name)
}

func Compile(syntax, expr string) (Pattern, error) {
	switch syntax {
	case "", SyntaxGlob:
		glob := Glob(translateGlob(expr))

		if _, err := path.Match(string(glob), ""); err != nil {
			return nil, errors.Wrapf(err, "invalid glob mask \"%s\"", expr)
		}

		return glob, nil
	case SyntaxRegexp:
		re, err := regexp.Compile(`^(?:` + expr + `)$`)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid regexp mask \"%s\"", expr)
		}

		return &Regexp{re: re}, nil
	default:
		return nil, errors.Errorf("unknown mask syntax \"%s\"", syntax)
	}
}

func CompileAll(syntax string, exprs []string) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(exprs))

	for _, expr := range exprs {
		p, err := Compile(syntax, expr)
		if err != nil {
			return nil, err
		}

		patterns = append(patterns, p)
	}

	return patterns, nil
}

// Any reports whether at least one of patterns matches name.
func Any(patterns []Pattern, name string) bool {
	for _, p := range patterns {
		if p.Matches(name) {
			return true
		}
	}

	return false
}

// translateGlob rewrites an fnmatch expression into path.Match syntax.
func translateGlob(expr string) string {
	var b strings.Builder

	for i := 0; i < len(expr); i++ {
		c := expr[i]

		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '[':
			end := classEnd(expr, i)
			if end < 0 {
				// unterminated class is a literal bracket
				b.WriteString(`\[`)
				continue
			}

			writeClass(&b, expr[i+1:end])
			i = end
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// classEnd returns the index of the bracket closing the class opened at
// start, or -1. A ']' right after '[' or '[!' belongs to the class.
func classEnd(expr string, start int) int {
	j := start + 1
	if j < len(expr) && expr[j] == '!' {
		j++
	}
	if j < len(expr) && expr[j] == ']' {
		j++
	}

	end := strings.IndexByte(expr[j:], ']')
	if end < 0 {
		return -1
	}

	return j + end
}

func writeClass(b *strings.Builder, class string) {
	b.WriteByte('[')

	if strings.HasPrefix(class, "!") {
		b.WriteByte('^')
		class = class[1:]
	} else if strings.HasPrefix(class, "^") {
		b.WriteString(`\^`)
		class = class[1:]
	}

	for k := 0; k < len(class); k++ {
		c := class[k]

		switch {
		case c == '\\' || c == ']':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '-' && (k == 0 || k == len(class)-1):
			b.WriteString(`\-`)
		default:
			b.WriteByte(c)
		}
	}

	b.WriteByte(']')
}
