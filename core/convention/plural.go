package convention

import "strings"

// PluralLabel converts a raw table name into a plural display label.
// The last word is normalized, so singular and plural table names agree:
// "user", "users" and "user_account" become "Users", "Users" and
// "User Accounts".
func PluralLabel(name string) string {
	words := splitWords(name)
	if len(words) == 0 {
		return ""
	}
	last := len(words) - 1
	words[last] = Pluralize(Singularize(words[last]))
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// Pluralize returns the plural form of a word using simple English rules.
func Pluralize(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	if plural, ok := irregularPlurals[lower]; ok {
		return matchCase(word, plural)
	}

	switch {
	case hasAnySuffix(lower, "s", "x", "z", "ch", "sh"):
		return word + "es"
	case strings.HasSuffix(lower, "y") && len(lower) > 1 && !isVowel(rune(lower[len(lower)-2])):
		return word[:len(word)-1] + "ies"
	case strings.HasSuffix(lower, "fe"):
		return word[:len(word)-2] + "ves"
	case strings.HasSuffix(lower, "f"):
		return word[:len(word)-1] + "ves"
	default:
		return word + "s"
	}
}

// Singularize returns the singular form of a word. Words not recognized
// as plural come back unchanged, so Pluralize(Singularize(w)) is a
// plural normal form.
func Singularize(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	for singular, plural := range irregularPlurals {
		if plural == lower {
			return matchCase(word, singular)
		}
	}

	switch {
	case strings.HasSuffix(lower, "ies"):
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(lower, "ves"):
		return word[:len(word)-3] + "f"
	case hasAnySuffix(lower, "ses", "xes", "zes", "ches", "shes"):
		return word[:len(word)-2]
	case strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss"):
		return word[:len(word)-1]
	default:
		return word
	}
}

// matchCase copies the case of src's first letter onto word.
func matchCase(src, word string) string {
	if src[0] >= 'A' && src[0] <= 'Z' {
		return strings.ToUpper(word[:1]) + word[1:]
	}
	return word
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// isVowel returns true if the rune is a vowel.
func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	default:
		return false
	}
}

// Common irregular plurals.
var irregularPlurals = map[string]string{
	"person": "people",
	"man":    "men",
	"woman":  "women",
	"child":  "children",
	"mouse":  "mice",
	"index":  "indices",
	"status": "statuses",
	"datum":  "data",
	"medium": "media",
	"schema": "schemas",
}
