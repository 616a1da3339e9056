package httpx

import (
	"time"

	"github.com/Gunvolt24/kafka_consumer/internal/ports"
	"github.com/Gunvolt24/kafka_consumer/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

var quietPaths = map[string]struct{}{
	"/metrics": {},
	"/ping":    {},
	"/healthz": {},
}

// RequestLogger — middleware для логирования HTTP-запросов.
// Служебные пути (метрики, пробы) не логируются.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if _, skip := quietPaths[c.FullPath()]; skip {
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		rid, _ := ctxmeta.RequestIDFromContext(c.Request.Context())
		tr, _ := ctxmeta.TraceIDFromContext(c.Request.Context())
		sp, _ := ctxmeta.SpanIDFromContext(c.Request.Context())

		log.Infof(
			c.Request.Context(),
			"request id=%s trace=%s span=%s method=%s path=%s status=%d ip=%s duration=%s size=%d",
			rid, tr, sp,
			c.Request.Method,
			path,
			c.Writer.Status(),
			c.ClientIP(),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}
