package commands

import (
	"regexp"
	"strconv"
	"strings"
)

// Match is one regex match handed to a Replacer: the full matched text,
// the ordered capture groups, the match offset, and the source string.
// Capture groups that did not take part in the match are present as
// empty strings.
type Match struct {
	Text   string
	Groups []string
	Index  int
	Input  string
}

// Replacer turns one match into its replacement text. A caller-supplied
// Replacer is used as-is by the replace engine; string specs are turned
// into one by CompileReplacer.
type Replacer func(Match) string

var placeholderRe = regexp.MustCompile(`\$([1-9])|\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// CompileReplacer compiles a replacement template into a Replacer.
//
// Placeholder forms, in strict precedence order (the highest present
// wins and the rest are ignored):
//
//	$&   the full matched text
//	$'   the source text following the match
//	$+   the last capture group, or the full match without groups
//	$1..$9 and ${name}
//
// Numbered references beyond the pattern's group count stay literal
// rather than being erased. Every ${name} placeholder, regardless of
// name, resolves to the SECOND capture group: groups are threaded
// positionally, there is no per-name binding.
func CompileReplacer(spec string) Replacer {
	switch {
	case strings.Contains(spec, "$&"):
		return func(m Match) string { return m.Text }

	case strings.Contains(spec, "$'"):
		return func(m Match) string {
			end := m.Index + len(m.Text)
			if end > len(m.Input) {
				return ""
			}
			return m.Input[end:]
		}

	case strings.Contains(spec, "$+"):
		return func(m Match) string {
			if len(m.Groups) == 0 {
				return m.Text
			}
			return m.Groups[len(m.Groups)-1]
		}

	case placeholderRe.MatchString(spec):
		return func(m Match) string {
			return placeholderRe.ReplaceAllStringFunc(spec, func(ph string) string {
				if strings.HasPrefix(ph, "${") {
					if len(m.Groups) >= 2 {
						return m.Groups[1]
					}
					return ph
				}
				n, _ := strconv.Atoi(ph[1:])
				if n > len(m.Groups) {
					return ph
				}
				return m.Groups[n-1]
			})
		}

	default:
		// No placeholders: the replacement is the literal spec text.
		return func(Match) string { return spec }
	}
}
