// Package rest — служебный HTTP: проверка живости, состояние консьюмера и метрики.
package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/kafka_consumer/internal/consumer"
	"github.com/Gunvolt24/kafka_consumer/internal/ports"
	"github.com/Gunvolt24/kafka_consumer/pkg/httpx"
)

// stateReporter — то, что роутер знает о консьюмере.
type stateReporter interface {
	State() consumer.State
	Running() bool
}

type Handler struct {
	consumer stateReporter
	log      ports.Logger
}

func NewHandler(c stateReporter, log ports.Logger) *Handler {
	return &Handler{consumer: c, log: log}
}

// NewRouter — gin-роутер служебных эндпоинтов.
// otelServiceName != "" включает otelgin.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", h.health)

	return r
}

// health — 200, пока цикл подписан или работает; иначе 503.
func (h *Handler) health(c *gin.Context) {
	state := h.consumer.State()
	body := gin.H{"state": state.String(), "running": h.consumer.Running()}

	switch state {
	case consumer.StateSubscribed, consumer.StateRunning:
		c.JSON(http.StatusOK, body)
	default:
		c.JSON(http.StatusServiceUnavailable, body)
	}
}
