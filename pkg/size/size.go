package size

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Each group is a run of digits followed by an optional unit label.
var groupRegex = regexp.MustCompile(`(\d*)(\D*)`)

var exponents = map[string]int{
	"":  0,
	"K": 1,
	"M": 2,
	"G": 3,
	"T": 4,
}

type ParseError struct {
	Unit  string
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bad unit \"%s\" in size parameter \"%s\"", e.Unit, e.Input)
}

// Parse converts human readable sizes like "10M", "1KiB 1b" or "2T" to
// bytes. Several groups in one string are summed up.
func Parse(input string) (int64, error) {
	compact := strings.Join(strings.Fields(input), "")

	var total int64

	for _, group := range groupRegex.FindAllStringSubmatch(compact, -1) {
		if group[0] == "" {
			continue
		}

		multiplier, err := unitMultiplier(group[2])
		if err != nil {
			return 0, &ParseError{Unit: group[2], Input: input}
		}

		var amount int64
		if group[1] != "" {
			amount, err = strconv.ParseInt(group[1], 10, 64)
			if err != nil {
				return 0, errors.Wrapf(err, "bad amount in size parameter \"%s\"", input)
			}
		}

		if amount != 0 && multiplier > math.MaxInt64/amount {
			return 0, errors.Errorf("size parameter \"%s\" overflows", input)
		}

		if total > math.MaxInt64-amount*multiplier {
			return 0, errors.Errorf("size parameter \"%s\" overflows", input)
		}

		total += amount * multiplier
	}

	return total, nil
}

func unitMultiplier(unit string) (int64, error) {
	label := strings.TrimSuffix(strings.ToUpper(unit), "B")

	var base int64 = 1000
	if strings.HasSuffix(label, "I") {
		base = 1024
		label = strings.TrimSuffix(label, "I")
	}

	exponent, ok := exponents[label]
	if !ok {
		return 0, errors.New("unknown unit")
	}

	multiplier := int64(1)
	for i := 0; i < exponent; i++ {
		multiplier *= base
	}

	return multiplier, nil
}
