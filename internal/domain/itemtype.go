package domain

import "strings"

// Canonical display names for the common item types. Unknown types fall
// back to a camelCase split of the raw classifier.
var itemTypeNames = map[string]string{
	"artwork":         "Artwork",
	"audioRecording":  "Audio Recording",
	"blogPost":        "Blog Post",
	"book":            "Book",
	"bookSection":     "Book Section",
	"conferencePaper": "Conference Paper",
	"dataset":         "Dataset",
	"document":        "Document",
	"journalArticle":  "Journal Article",
	"letter":          "Letter",
	"magazineArticle": "Magazine Article",
	"manuscript":      "Manuscript",
	"map":             "Map",
	"newspaperArticle": "Newspaper Article",
	"patent":          "Patent",
	"preprint":        "Preprint",
	"presentation":    "Presentation",
	"report":          "Report",
	"thesis":          "Thesis",
	"webpage":         "Web Page",
}

// ItemTypeName resolves an item-type classifier to its display name
func ItemTypeName(itemType string) string {
	if name, ok := itemTypeNames[itemType]; ok {
		return name
	}
	return splitCamel(itemType)
}

func splitCamel(s string) string {
	if s == "" {
		return s
	}
	var sb strings.Builder
	for i, r := range s {
		if i == 0 {
			sb.WriteString(strings.ToUpper(string(r)))
			continue
		}
		if r >= 'A' && r <= 'Z' {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
