package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContextRoundTrip(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	scoped := zap.New(core).With(zap.String("request_id", "abc"))

	ctx := WithContext(context.Background(), scoped)
	FromContext(ctx).Info("hello")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "abc", entries[0].ContextMap()["request_id"])
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	assert.Same(t, GetLogger(), FromContext(context.Background()))
}

func TestFromEcho(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	// No scoped logger attached yet.
	assert.Same(t, GetLogger(), FromEcho(c))

	scoped := zap.NewNop().With(zap.String("request_id", "abc"))
	c.Set(EchoKey, scoped)
	assert.Same(t, scoped, FromEcho(c))
}
