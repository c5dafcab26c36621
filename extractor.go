package pact

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	paramLineRegexp = regexp.MustCompile(`(?:^|[^\w@])@param[ \t]+([a-zA-Z]+)[ \t]+\$?([a-zA-Z_]\w*)`)
	preLineRegexp   = regexp.MustCompile(`(?:^|[^\w@])@pre[ \t]+([a-zA-Z_]+)[ \t]+([0-9]+)`)

	// checkNameRegexp accepts the names an @pre line can refer to.
	checkNameRegexp = regexp.MustCompile(`^[a-zA-Z_]+$`)
)

// ExtractPreconditions scans a documentation block line by line and
// returns the preconditions it declares, in the order they appear.
//
// Two annotation forms are recognized, each at most once per line:
//
//	@param <Type> <name>   condition on the next positional parameter
//	@pre <check> <index>   named custom check on parameter <index>
//
// Comment decoration in front of an annotation is ignored. Lines that
// match neither form are skipped.
func ExtractPreconditions(doc string) []Condition {
	var (
		conditions []Condition
		paramCount = 1
	)

	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSuffix(line, "\r")

		if matches := paramLineRegexp.FindStringSubmatch(line); matches != nil {
			var (
				typename = matches[1]
				check    = ClassCheck
			)
			if IsBaseType(typename) {
				check = BasicCheck
			}

			conditions = append(conditions, Condition{
				Check: check,
				Type:  typename,
				Param: paramCount,
				Name:  matches[2],
			})
			paramCount++
		}

		if matches := preLineRegexp.FindStringSubmatch(line); matches != nil {
			index, err := strconv.Atoi(matches[2])
			if err != nil {
				// out of int range
				continue
			}

			conditions = append(conditions, Condition{
				Check: CustomCheck,
				Type:  matches[1],
				Param: index,
			})
		}
	}
	return conditions
}
