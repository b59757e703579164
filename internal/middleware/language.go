// internal/middleware/language.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// LanguageMiddleware resolves the response language for the request from
// the Accept-Language header. An explicit language form field, when
// present, overrides this in the handler.
func LanguageMiddleware(defaultLang string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := defaultLang

		if header := c.GetHeader("Accept-Language"); header != "" {
			// Handle cases like "zh-CN,zh;q=0.9,en;q=0.8"
			first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
			switch {
			case strings.HasPrefix(first, "zh"):
				lang = "zh"
			case strings.HasPrefix(first, "ja"):
				lang = "ja"
			case strings.HasPrefix(first, "ko"):
				lang = "ko"
			case strings.HasPrefix(first, "en"):
				lang = "en"
			}
		}

		c.Set("lang", lang)
		c.Next()
	}
}
