// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/packscan/packscan-backend/internal/i18n"
)

// I18nMiddleware picks the first Accept-Language tag, e.g. "pt-BR,pt;q=0.9,en;q=0.8".
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.DefaultLang

		if header := c.GetHeader("Accept-Language"); header != "" {
			first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
			lang = i18n.Normalize(first)
		}

		c.Set("lang", lang)
		c.Next()
	}
}
