// Package langdetect classifies short texts as Russian or English.
//
// The heuristic is deliberately crude: any Cyrillic letter wins, otherwise
// the text (Latin letters, digits, punctuation, empty input) counts as
// English. Precise enough for titles and descriptions; not a general-purpose
// language classifier.
package langdetect

// Supported language tags.
const (
	Russian = "ru"
	English = "en"
)

// Detect returns the language tag for text. It never fails: texts without
// Cyrillic letters default to English.
func Detect(text string) string {
	for _, r := range text {
		if isCyrillic(r) {
			return Russian
		}
	}
	return English
}

// Opposite returns the other supported language. Unknown tags map to Russian
// so that a detected "en" always has a translation direction.
func Opposite(lang string) string {
	if lang == Russian {
		return English
	}
	return Russian
}

func isCyrillic(r rune) bool {
	// Basic Cyrillic letters plus ё/Ё, which live outside the а-я range.
	return (r >= 'а' && r <= 'я') || (r >= 'А' && r <= 'Я') || r == 'ё' || r == 'Ё'
}
