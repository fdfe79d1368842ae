package domain

import "strings"

// Language is a supported locale tag.
type Language string

// Supported languages. English is the default.
const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

// DefaultLanguage is used when a caller supplies no or an unknown tag.
const DefaultLanguage = LanguageEnglish

// ParseLanguage normalizes a tag such as "AR" or "ar-EG" to a supported
// Language, falling back to DefaultLanguage.
func ParseLanguage(tag string) Language {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	switch Language(tag) {
	case LanguageArabic:
		return LanguageArabic
	default:
		return DefaultLanguage
	}
}

// IsAlternate reports whether l is the non-default locale.
func (l Language) IsAlternate() bool {
	return l == LanguageArabic
}
