package memory

import (
	"regexp"
	"strings"
)

// Filter applies include/exclude pattern rules to text before it is handed to
// the memory store.
//
// When includes is set, only the non-overlapping spans matching it are
// retained, joined by a single space in order of occurrence; no matches yields
// an empty string. When excludes is set, every span matching it is removed
// from whatever remains. Both patterns run in dot-matches-newline mode so a
// rule can span lines.
//
// A malformed pattern fails with a ValidationError naming the parameter
// before any transformation happens, so a partially filtered text can never
// leak out. Filtering is pure and idempotent: re-applying the same rules to
// an already filtered text yields the same result.
func Filter(text, includes, excludes string) (string, error) {
	incRe, err := compilePattern("includes", includes)
	if err != nil {
		return "", err
	}
	excRe, err := compilePattern("excludes", excludes)
	if err != nil {
		return "", err
	}

	out := text

	if incRe != nil {
		matches := incRe.FindAllString(out, -1)
		if len(matches) == 0 {
			return "", nil
		}
		out = strings.Join(matches, " ")
	}

	if excRe != nil {
		out = excRe.ReplaceAllString(out, "")
	}

	return out, nil
}

func compilePattern(param, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile("(?s)" + pattern)
	if err != nil {
		return nil, &ValidationError{Param: param, Reason: "invalid pattern: " + err.Error()}
	}
	return re, nil
}
