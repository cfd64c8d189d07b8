// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"zakatconnect_backend/internals/configs"
)

// CorsMiddleware: origin diambil dari CORS_ALLOW_ORIGINS (dipisah koma).
func CorsMiddleware(cfg configs.CORSConfig) fiber.Handler {
	origins := make([]string, 0)
	for _, o := range strings.Split(cfg.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	allowCredentials := true
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		// wildcard tidak boleh dipasangkan dengan credentials
		origins = []string{"*"}
		allowCredentials = false
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ", "),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "X-Request-ID, Content-Disposition",
		AllowCredentials: allowCredentials,
	})
}
