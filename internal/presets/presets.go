// Package presets carries the preloaded catalog of cleanup patterns.
// Pure data: the engine never depends on this package.
package presets

import "refield/internal/domain"

// Preset is one named search/replace recipe
type Preset struct {
	Name          string
	Description   string
	Field         string
	Find          string
	FindType      domain.PatternType
	CaseSensitive bool
	ReplaceWith   string
}

var catalog = []Preset{
	{
		Name:        "trim-title-whitespace",
		Description: "Collapse runs of whitespace in titles to a single space",
		Field:       "title",
		Find:        `\s{2,}`,
		FindType:    domain.PatternRegex,
		ReplaceWith: " ",
	},
	{
		Name:        "strip-trailing-period",
		Description: "Remove a trailing period from titles",
		Field:       "title",
		Find:        `\.\s*$`,
		FindType:    domain.PatternRegex,
		ReplaceWith: "",
	},
	{
		Name:        "http-to-https",
		Description: "Upgrade http:// URLs to https://",
		Field:       "url",
		Find:        `^http://`,
		FindType:    domain.PatternRegex,
		ReplaceWith: "https://",
	},
	{
		Name:        "doi-url-to-bare",
		Description: "Reduce DOI URLs to the bare identifier",
		Field:       "DOI",
		Find:        `^https?://(dx\.)?doi\.org/`,
		FindType:    domain.PatternRegex,
		ReplaceWith: "",
	},
	{
		Name:        "fix-name-comma-spacing",
		Description: "Fix a stray space before the comma in last names",
		Field:       "creator.lastName",
		Find:        `\s+,`,
		FindType:    domain.PatternRegex,
		ReplaceWith: ",",
	},
	{
		Name:        "collapse-creator-spaces",
		Description: "Collapse doubled spaces inside first names",
		Field:       "creator.firstName",
		Find:        `\s{2,}`,
		FindType:    domain.PatternRegex,
		ReplaceWith: " ",
	},
	{
		Name:        "strip-publisher-place",
		Description: "Remove a trailing place suffix like ', NJ' from publishers",
		Field:       "publisher",
		Find:        `,\s*[A-Z]{2}\s*$`,
		FindType:    domain.PatternRegex,
		ReplaceWith: "",
	},
	{
		Name:        "normalize-page-dash",
		Description: "Replace hyphenated page ranges with an en dash",
		Field:       "pages",
		Find:        `(\d+)\s*-\s*(\d+)`,
		FindType:    domain.PatternRegex,
		ReplaceWith: "$1–$2",
	},
	{
		Name:        "strip-abstract-copyright",
		Description: "Remove a copyright tail from abstracts",
		Field:       "abstractNote",
		Find:        `\s*(©|\(c\)|Copyright).*$`,
		FindType:    domain.PatternRegex,
		ReplaceWith: "",
	},
	{
		Name:          "accessed-via-proxy",
		Description:   "Strip a library proxy prefix from URLs",
		Field:         "url",
		Find:          `\.proxy\.library\.`,
		FindType:      domain.PatternContains,
		CaseSensitive: true,
		ReplaceWith:   ".",
	},
}

// All returns the full catalog in declaration order
func All() []Preset {
	out := make([]Preset, len(catalog))
	copy(out, catalog)
	return out
}

// Find looks a preset up by name
func Find(name string) (Preset, bool) {
	for _, p := range catalog {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
