package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/kafka_consumer/internal/consumer"
	rest "github.com/Gunvolt24/kafka_consumer/internal/transport/http"
	"github.com/Gunvolt24/kafka_consumer/pkg/metrics"
)

type noopLogger struct{}

func (noopLogger) Debugf(context.Context, string, ...any)  {}
func (noopLogger) Infof(context.Context, string, ...any)   {}
func (noopLogger) Noticef(context.Context, string, ...any) {}
func (noopLogger) Warnf(context.Context, string, ...any)   {}
func (noopLogger) Errorf(context.Context, string, ...any)  {}
func (noopLogger) Errorw(context.Context, string, ...any)  {}

type fakeState struct {
	state   consumer.State
	running bool
}

func (f fakeState) State() consumer.State { return f.state }
func (f fakeState) Running() bool         { return f.running }

func newRouter(st fakeState) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return rest.NewRouter(rest.NewHandler(st, noopLogger{}), "")
}

func get(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	return w
}

func TestPing(t *testing.T) {
	w := get(t, newRouter(fakeState{}), "/ping")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHealth_Running(t *testing.T) {
	w := get(t, newRouter(fakeState{state: consumer.StateRunning, running: true}), "/healthz")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "running", body["state"])
	assert.Equal(t, true, body["running"])
}

func TestHealth_Subscribed(t *testing.T) {
	w := get(t, newRouter(fakeState{state: consumer.StateSubscribed, running: true}), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealth_NotServing(t *testing.T) {
	for _, st := range []consumer.State{consumer.StateIdle, consumer.StateStopping, consumer.StateStopped} {
		t.Run(st.String(), func(t *testing.T) {
			w := get(t, newRouter(fakeState{state: st}), "/healthz")

			require.Equal(t, http.StatusServiceUnavailable, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, st.String(), body["state"])
		})
	}
}

func TestMetrics_Exposed(t *testing.T) {
	metrics.MustRegister()
	metrics.KafkaMessagesConsumed.WithLabelValues("router-test").Inc()

	w := get(t, newRouter(fakeState{}), "/metrics")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "router-test")
}

func TestUnknownPath_NotFound(t *testing.T) {
	w := get(t, newRouter(fakeState{}), "/order/1")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
