package rotation

import (
	"strconv"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
	"github.com/pkg/errors"
)

// Directives beyond the library defaults that C and Python strftime accept.
var extraDirectives = []strftime.Option{
	strftime.WithUnixSeconds('s'),
	strftime.WithMicroseconds('f'),
	strftime.WithSpecification('G', strftime.AppendFunc(func(b []byte, t time.Time) []byte {
		year, _ := t.ISOWeek()
		return strconv.AppendInt(b, int64(year), 10)
	})),
}

// ComposeTarget renders a target template. strftime directives are
// expanded first, then {{path}}, {{name}} and {{ext}} are substituted
// literally, so the directory and file name never go through strftime.
func ComposeTarget(now time.Time, dir, filename, template string) (string, error) {
	if template == "" {
		return "", nil
	}

	timed, err := strftime.Format(template, now, extraDirectives...)
	if err != nil {
		return "", errors.Wrapf(err, "invalid target template \"%s\"", template)
	}

	name, ext := splitExt(filename)

	return strings.NewReplacer(
		"{{path}}", dir,
		"{{name}}", name,
		"{{ext}}", ext,
	).Replace(timed), nil
}

// splitExt splits at the last dot. Leading dots are part of the name, so
// ".bashrc" has no extension.
func splitExt(filename string) (name, ext string) {
	dot := strings.LastIndex(filename, ".")
	if dot <= 0 || strings.TrimLeft(filename[:dot], ".") == "" {
		return filename, ""
	}

	return filename[:dot], filename[dot+1:]
}
