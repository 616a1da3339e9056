// Package httpx — gin-middleware служебного HTTP.
package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Gunvolt24/kafka_consumer/pkg/ctxmeta"
)

// HeaderRequestID — заголовок запроса/ответа с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLen = 128

// RequestIDMiddleware — берёт X-Request-ID клиента (если он пригоден) или генерирует UUID,
// кладёт его в контекст, в атрибуты активного спана и в ответный заголовок.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if !validRequestID(requestID) {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)

		ctx := ctxmeta.WithRequestID(c.Request.Context(), requestID)
		trace.SpanFromContext(ctx).SetAttributes(attribute.String("http.request_id", requestID))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// validRequestID — непустой, не длиннее maxRequestIDLen, только печатные ASCII.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
