package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// ホスト型決済フォームのSDKとiframeの配信元
const zuoraSources = "https://*.zuora.com"

// SecurityHeadersMiddleware セキュリティヘッダーを設定するミドルウェア
func SecurityHeadersMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			h.Set("X-XSS-Protection", "1; mode=block")
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Content-Security-Policy", contentSecurityPolicy(c.Request().URL.Path))

			if c.Scheme() == "https" {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

			return next(c)
		}
	}
}

// contentSecurityPolicy パスごとのCSP
func contentSecurityPolicy(path string) string {
	if isSwaggerPath(path) {
		// Swagger UI用: unpkg.comとcdn.jsdelivr.netを許可
		return "default-src 'self'; script-src 'self' 'unsafe-inline' https://unpkg.com https://cdn.jsdelivr.net; style-src 'self' 'unsafe-inline' https://unpkg.com https://fonts.googleapis.com; font-src 'self' https://fonts.gstatic.com; img-src 'self' data: https:;"
	}
	// チェックアウトページ: 決済フォームのSDKとiframeを許可
	return "default-src 'self'; script-src 'self' 'unsafe-inline' " + zuoraSources +
		"; style-src 'self' 'unsafe-inline' " + zuoraSources +
		"; frame-src " + zuoraSources +
		"; connect-src 'self' " + zuoraSources +
		"; img-src 'self' data: " + zuoraSources
}

// isSwaggerPath Swagger関連のパスかどうかを判定
func isSwaggerPath(path string) bool {
	return path == "/redoc" || path == "/openapi.yaml" || strings.HasPrefix(path, "/swagger")
}
