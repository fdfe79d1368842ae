package tutor

import "github.com/phrazzld/lumina-api/internal/domain"

// sentinels holds the fixed replies returned in place of failures.
type sentinels struct {
	chatOffline    string
	chatFailure    string
	chatEmpty      string
	personaOffline string
	personaEmpty   string
}

var sentinelsByLanguage = map[domain.Language]sentinels{
	domain.LanguageEnglish: {
		chatOffline:    "API Key missing.",
		chatFailure:    "I'm having trouble connecting right now.",
		chatEmpty:      "I didn't catch that.",
		personaOffline: "Offline",
		personaEmpty:   "...",
	},
	domain.LanguageArabic: {
		chatOffline:    "مفتاح API مفقود.",
		chatFailure:    "أواجه مشكلة في الاتصال حالياً.",
		chatEmpty:      "لم أفهم ذلك.",
		personaOffline: "غير متصل",
		personaEmpty:   "...",
	},
}

func sentinelsFor(lang domain.Language) sentinels {
	if s, ok := sentinelsByLanguage[lang]; ok {
		return s
	}
	return sentinelsByLanguage[domain.DefaultLanguage]
}
