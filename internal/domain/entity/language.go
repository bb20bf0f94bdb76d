package entity

// LanguageNames maps supported short codes to the display names the
// translation provider expects. Codes missing from the table are passed to
// the translator verbatim (documented fallback, not an error).
var LanguageNames = map[string]string{
	"en": "English",
	"fr": "French",
	// Planned: yo (Yoruba), ar (Arabic), sw (Swahili), am (Amharic).
}

const EnglishName = "English"

// DisplayName resolves a language code to its provider-facing name,
// falling back to the raw code.
func DisplayName(code string) string {
	if name, ok := LanguageNames[code]; ok {
		return name
	}
	return code
}

// IsEnglish reports whether a caller-supplied language tag means English.
// Callers send either the short code or the display name.
func IsEnglish(code string) bool {
	return code == "" || code == "en" || code == EnglishName
}
