// Package convention derives presentation defaults from raw schema names.
// It applies naming conventions so that minimally-configured resources
// still render with sensible labels and icons.
package convention

import (
	"strings"
	"unicode"
)

// DefaultDatabaseIcon is the sidebar icon used when a resource's
// database type is unknown.
const DefaultDatabaseIcon = "icon-database"

// DatabaseIcon returns the sidebar icon name for a database type.
// Follows the "icon-<type>" convention used by the front end.
func DatabaseIcon(databaseType string) string {
	if databaseType == "" {
		return DefaultDatabaseIcon
	}
	return "icon-" + databaseType
}

// Humanize converts a raw property or resource name into a display label.
// Snake case, kebab case, and camel case inputs all become Title Case:
// "created_at" → "Created At", "blogPost" → "Blog Post".
func Humanize(name string) string {
	if name == "" {
		return ""
	}

	words := splitWords(name)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// splitWords breaks a name on underscores, hyphens, dots, and
// lower-to-upper camel case boundaries.
func splitWords(name string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == '.' || r == ' ':
			flush()
		case unicode.IsUpper(r) && i > 0 && unicode.IsLower(runes[i-1]):
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return words
}

// capitalize upper-cases the first rune of a word.
func capitalize(word string) string {
	if word == "" {
		return ""
	}
	r := []rune(word)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
