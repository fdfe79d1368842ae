package api

import (
	"net/http"

	"github.com/phrazzld/lumina-api/internal/domain"
)

// requestLanguage picks the locale from the explicit value, then the
// language query parameter, then Accept-Language.
func requestLanguage(r *http.Request, explicit string) domain.Language {
	for _, tag := range []string{explicit, r.URL.Query().Get("language"), r.Header.Get("Accept-Language")} {
		if tag != "" {
			return domain.ParseLanguage(tag)
		}
	}
	return domain.DefaultLanguage
}
