package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityHeaders 安全 HTTP 头中间件
// frameAncestors 为允许以 iframe 嵌入看板的来源；为空时禁止嵌入
func SecurityHeaders(frameAncestors []string) gin.HandlerFunc {
	ancestors := "'none'"
	if len(frameAncestors) > 0 {
		ancestors = strings.Join(frameAncestors, " ")
	}
	csp := "default-src 'none'; frame-ancestors " + ancestors

	return func(c *gin.Context) {
		// X-Frame-Options 无法表达来源列表，仅在禁止嵌入时设置
		if len(frameAncestors) == 0 {
			c.Header("X-Frame-Options", "DENY")
		}
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", csp)
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

		c.Next()
	}
}
