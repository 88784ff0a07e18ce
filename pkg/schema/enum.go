package schema

import (
	"regexp"
	"strings"
)

// literalPattern matches a single-quoted literal, the empty one included so
// quote pairs stay aligned. Literals containing a single quote are not
// supported.
var literalPattern = regexp.MustCompile(`'([^']*)'`)

// enumValues extracts the literals of a CHECK (... IN (...)) clause. The
// clause must be a CHECK token followed, at some later position, by an IN
// token; every non-empty literal after the IN token is returned in order.
// Any other shape yields nil.
func enumValues(tokens []string) []string {
	check := indexKeyword(tokens, 0, "CHECK")
	if check < 0 {
		return nil
	}
	in := indexKeyword(tokens, check+1, "IN")
	if in < 0 {
		return nil
	}

	rest := tokens[in][len("IN"):]
	if in+1 < len(tokens) {
		rest += " " + strings.Join(tokens[in+1:], " ")
	}

	var values []string
	for _, match := range literalPattern.FindAllStringSubmatch(rest, -1) {
		if match[1] == "" {
			continue
		}
		values = append(values, match[1])
	}
	return values
}

// indexKeyword finds keyword (case-insensitive) starting at from. A token
// matches when it is the keyword alone or the keyword glued to an opening
// parenthesis, e.g. "CHECK(" or "IN('a',".
func indexKeyword(tokens []string, from int, keyword string) int {
	for i := from; i < len(tokens); i++ {
		upper := strings.ToUpper(tokens[i])
		if upper == keyword || strings.HasPrefix(upper, keyword+"(") {
			return i
		}
	}
	return -1
}
