package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// PatternType selects the matching semantics for a condition pattern
type PatternType int

const (
	PatternRegex PatternType = iota
	PatternExact
	PatternContains
	PatternLike // SQL LIKE wildcards: % and _
	PatternGlob // shell wildcards: * and ?, fully anchored
)

// String returns the external name of the pattern type
func (t PatternType) String() string {
	switch t {
	case PatternRegex:
		return "regex"
	case PatternExact:
		return "exact"
	case PatternContains:
		return "contains"
	case PatternLike:
		return "like"
	case PatternGlob:
		return "glob"
	default:
		return "unknown"
	}
}

// ParsePatternType parses the external name of a pattern type
func ParsePatternType(s string) (PatternType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "regex", "re":
		return PatternRegex, nil
	case "exact", "is":
		return PatternExact, nil
	case "contains", "":
		return PatternContains, nil
	case "like", "sql":
		return PatternLike, nil
	case "glob":
		return PatternGlob, nil
	default:
		return PatternRegex, fmt.Errorf("unknown pattern type: %q", s)
	}
}

// MatchOutcome is the result of testing one value against one pattern.
// MatchIndex and MatchLength are -1 when the position is not meaningful
// (no match, or set-valued fields like tags).
type MatchOutcome struct {
	Matched     bool
	MatchText   string
	MatchIndex  int
	MatchLength int
}

// Matcher tests string values against one pre-compiled pattern.
// Regex, like, and glob patterns are compiled once at construction so a
// malformed pattern fails before any record is scanned.
type Matcher struct {
	pattern       string
	typ           PatternType
	caseSensitive bool
	re            *regexp.Regexp
	folded        string
	emptyCheck    bool
}

// CompileMatcher builds a Matcher for the given pattern and semantics.
// An invalid regex (or wildcard translation) returns an error here, never
// a matcher that silently matches nothing.
func CompileMatcher(pattern string, typ PatternType, caseSensitive bool) (*Matcher, error) {
	m := &Matcher{
		pattern:       pattern,
		typ:           typ,
		caseSensitive: caseSensitive,
	}

	var expr string
	switch typ {
	case PatternRegex:
		expr = pattern
		m.emptyCheck = pattern == "^$" || pattern == `^\s*$`
	case PatternLike:
		expr = likeToRegexp(pattern)
	case PatternGlob:
		expr = "^" + globToRegexp(pattern) + "$"
	case PatternExact, PatternContains:
		if caseSensitive {
			m.folded = pattern
		} else {
			m.folded = strings.ToLower(pattern)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown pattern type: %d", typ)
	}

	if !caseSensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	m.re = re
	return m, nil
}

// Pattern returns the original pattern text
func (m *Matcher) Pattern() string { return m.pattern }

// Type returns the pattern semantics
func (m *Matcher) Type() PatternType { return m.typ }

// CaseSensitive reports whether matching is case sensitive
func (m *Matcher) CaseSensitive() bool { return m.caseSensitive }

// EmptyCheck reports whether the pattern is the reserved empty-field
// idiom (^$ or ^\s*$ as a regex), which matches empty values that would
// otherwise be skipped.
func (m *Matcher) EmptyCheck() bool { return m.emptyCheck }

// Test checks one value against the pattern
func (m *Matcher) Test(value string) MatchOutcome {
	switch m.typ {
	case PatternExact:
		var eq bool
		if m.caseSensitive {
			eq = value == m.folded
		} else {
			eq = strings.ToLower(value) == m.folded
		}
		if !eq {
			return noMatch()
		}
		return MatchOutcome{
			Matched:     true,
			MatchText:   value,
			MatchIndex:  0,
			MatchLength: len(value),
		}

	case PatternContains:
		var idx, length int
		if m.caseSensitive {
			idx = strings.Index(value, m.pattern)
			length = len(m.pattern)
		} else {
			idx, length = FoldIndex(value, m.pattern)
		}
		if idx < 0 {
			return noMatch()
		}
		return MatchOutcome{
			Matched:     true,
			MatchText:   value[idx : idx+length],
			MatchIndex:  idx,
			MatchLength: length,
		}

	default:
		loc := m.re.FindStringIndex(value)
		if loc == nil {
			return noMatch()
		}
		return MatchOutcome{
			Matched:     true,
			MatchText:   value[loc[0]:loc[1]],
			MatchIndex:  loc[0],
			MatchLength: loc[1] - loc[0],
		}
	}
}

func noMatch() MatchOutcome {
	return MatchOutcome{MatchIndex: -1, MatchLength: -1}
}

// FoldIndex reports the byte offset and length in value of the first
// case-insensitive occurrence of needle, or (-1, 0). Runes are compared
// via unicode.ToLower and both offset and length index the original
// string, which keeps slices valid when folding changes a rune's byte
// width (e.g. Ⱥ, 2 bytes, folds to ⱥ, 3 bytes).
func FoldIndex(value, needle string) (start, length int) {
	if needle == "" {
		return 0, 0
	}
	for i := range value {
		if n, ok := foldPrefixLen(value[i:], needle); ok {
			return i, n
		}
	}
	return -1, 0
}

// foldPrefixLen reports how many bytes of s a case-insensitive match of
// needle covers from the start of s.
func foldPrefixLen(s, needle string) (int, bool) {
	rest := s
	for _, nr := range needle {
		sr, size := utf8.DecodeRuneInString(rest)
		if size == 0 || unicode.ToLower(sr) != unicode.ToLower(nr) {
			return 0, false
		}
		rest = rest[size:]
	}
	return len(s) - len(rest), true
}

// likeToRegexp translates a SQL LIKE pattern to an unanchored regex.
// Backslash escapes a literal %, _, or \; unescaped % becomes .* and
// unescaped _ becomes . — the result behaves like LIKE '%pattern%'.
func likeToRegexp(pattern string) string {
	var sb strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c == '\\' && i+1 < len(runes) {
			next := runes[i+1]
			if next == '%' || next == '_' || next == '\\' {
				sb.WriteString(regexp.QuoteMeta(string(next)))
				i++
				continue
			}
		}
		switch c {
		case '%':
			sb.WriteString(".*")
		case '_':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	return sb.String()
}

// globToRegexp translates a shell glob pattern (* and ?) to a regex body
func globToRegexp(pattern string) string {
	var sb strings.Builder
	for _, c := range pattern {
		switch c {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	return sb.String()
}
